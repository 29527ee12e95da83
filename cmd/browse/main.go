package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"txnledger/internal/client"
	"txnledger/internal/listview"

	"github.com/shopspring/decimal"
)

// browse is an interactive terminal view over the transaction API. It keeps
// all list state in a listview.Controller and re-renders on every change.
func main() {
	baseURL := "http://localhost:8080"
	if len(os.Args) > 1 {
		baseURL = os.Args[1]
	}

	api := client.New(baseURL)

	updates := make(chan listview.State, 16)
	ctl := listview.NewController(api, func(s listview.State) {
		select {
		case updates <- s:
		default:
		}
	})

	go func() {
		for s := range updates {
			render(s)
		}
	}()

	ctl.Refetch()

	scanner := bufio.NewScanner(os.Stdin)
	printHelp()

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "n", "next":
			ctl.NextPage()
		case "p", "prev":
			ctl.PrevPage()
		case "page":
			if len(fields) < 2 {
				fmt.Println("usage: page <n>")
				continue
			}
			page, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("page must be a number")
				continue
			}
			ctl.SetPage(page)
		case "limit":
			if len(fields) < 2 {
				fmt.Println("usage: limit <n>")
				continue
			}
			limit, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("limit must be a number")
				continue
			}
			ctl.SetLimit(limit)
		case "sort":
			if len(fields) < 2 {
				fmt.Println("usage: sort <amount|type|timestamp>")
				continue
			}
			ctl.ToggleSort(fields[1])
		case "type":
			f := ctl.State().Filters
			if len(fields) < 2 {
				f.Type = ""
			} else {
				f.Type = fields[1]
			}
			ctl.SetFilters(f)
		case "min":
			f := ctl.State().Filters
			if len(fields) < 2 {
				f.MinAmount = nil
			} else {
				amount, err := decimal.NewFromString(fields[1])
				if err != nil {
					fmt.Println("min must be a number")
					continue
				}
				f.MinAmount = &amount
			}
			ctl.SetFilters(f)
		case "max":
			f := ctl.State().Filters
			if len(fields) < 2 {
				f.MaxAmount = nil
			} else {
				amount, err := decimal.NewFromString(fields[1])
				if err != nil {
					fmt.Println("max must be a number")
					continue
				}
				f.MaxAmount = &amount
			}
			ctl.SetFilters(f)
		case "reset":
			ctl.ResetFilters()
		case "r", "refresh":
			ctl.Refetch()
		case "add":
			if len(fields) < 3 {
				fmt.Println("usage: add <amount> <credit|debit>")
				continue
			}
			amount, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				fmt.Println("amount must be a number")
				continue
			}
			ctl.CreateTransaction(client.CreateTransactionInput{
				Amount: amount,
				Type:   fields[2],
			})
		case "h", "help":
			printHelp()
		case "q", "quit", "exit":
			ctl.Wait()
			return
		default:
			fmt.Printf("unknown command %q, type help\n", fields[0])
		}
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("input error: %v", err)
	}
}

func render(s listview.State) {
	fmt.Println()

	switch s.Phase {
	case listview.PhaseLoading:
		fmt.Println("loading...")
		return
	case listview.PhaseError:
		fmt.Printf("error: %s\n", s.ErrorMessage)
		return
	case listview.PhaseIdle:
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAMOUNT\tTYPE\tTIMESTAMP")
	for _, t := range s.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			t.ID, t.Amount, t.Type, t.Timestamp.Format(time.RFC3339))
	}
	w.Flush()

	fmt.Printf("page %d/%d (%d items) sort=%s %s\n",
		s.Page, s.TotalPages, s.TotalItems, s.SortBy, s.SortOrder)

	if s.Warning != "" {
		fmt.Printf("warning: %s\n", s.Warning)
	}
}

func printHelp() {
	fmt.Println(`commands:
  n / p            next / previous page
  page <n>         jump to page
  limit <n>        set page size
  sort <column>    sort by amount, type, or timestamp (repeat to flip)
  type [t]         filter by credit/debit (no argument clears)
  min [x] / max [x]  amount bounds (no argument clears)
  reset            clear all filters
  r                refresh
  add <amt> <type> create a transaction
  q                quit`)
}
