package listview

import (
	"fmt"
	"time"

	"txnledger/internal/client"

	"github.com/shopspring/decimal"
)

// Phase is the lifecycle phase of the list view
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// WarningCreateFailed is shown when an optimistic create fails to persist.
// The provisional row stays on screen.
const WarningCreateFailed = "Transaction saved locally but failed to sync with server. Please refresh to see the latest state."

// Filters are the optional listing constraints applied by the view
type Filters struct {
	Type      string
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// State is an immutable snapshot of the list view. Transitions return a new
// State and never mutate the receiver, so snapshots can be held across
// goroutines without locking.
type State struct {
	Phase        Phase
	Rows         []client.Transaction
	Page         int
	Limit        int
	TotalItems   int64
	TotalPages   int
	SortBy       string
	SortOrder    string
	Filters      Filters
	ErrorMessage string
	Warning      string

	// HasData reports whether at least one fetch has succeeded; page math
	// and optimistic inserts are meaningless before that.
	HasData bool

	// Seq identifies the most recent fetch. Settlements carrying an older
	// sequence are discarded.
	Seq uint64
}

// NewState returns the initial view state with default pagination and sorting
func NewState() State {
	return State{
		Phase:     PhaseIdle,
		Page:      1,
		Limit:     10,
		SortBy:    "timestamp",
		SortOrder: "desc",
	}
}

// StartFetch begins a new fetch, superseding any fetch still in flight
func (s State) StartFetch() State {
	s.Seq++
	s.Phase = PhaseLoading
	s.ErrorMessage = ""
	return s
}

// FetchSucceeded installs a fetched page. Results from a superseded fetch
// are ignored.
func (s State) FetchSucceeded(seq uint64, page *client.Page) State {
	if seq != s.Seq {
		return s
	}

	s.Phase = PhaseSuccess
	s.Rows = page.Transactions
	s.Page = page.Page
	s.Limit = page.Limit
	s.TotalItems = page.TotalItems
	s.TotalPages = page.TotalPages
	s.HasData = true
	return s
}

// FetchFailed records a fetch error. Results from a superseded fetch are
// ignored.
func (s State) FetchFailed(seq uint64, message string) State {
	if seq != s.Seq {
		return s
	}

	s.Phase = PhaseError
	s.ErrorMessage = message
	return s
}

// WithPage moves to the given page without clamping; the server answers
// past-the-end pages with an empty row set.
func (s State) WithPage(page int) State {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}

// PageForward advances one page, clamped to the last known page
func (s State) PageForward() State {
	if !s.HasData || s.Page >= s.TotalPages {
		return s
	}
	s.Page++
	return s
}

// PageBackward goes back one page, clamped to the first page
func (s State) PageBackward() State {
	if !s.HasData || s.Page <= 1 {
		return s
	}
	s.Page--
	return s
}

// WithLimit changes the page size
func (s State) WithLimit(limit int) State {
	if limit < 1 {
		limit = 1
	}
	s.Limit = limit
	return s
}

// WithFilters replaces the active filters. The current page is kept; an
// out-of-range page simply comes back empty.
func (s State) WithFilters(f Filters) State {
	s.Filters = f
	return s
}

// ResetFilters clears all filters
func (s State) ResetFilters() State {
	s.Filters = Filters{}
	return s
}

// ToggleSort sorts by the given column. Re-selecting the current column
// flips the direction; selecting a new column starts ascending.
func (s State) ToggleSort(column string) State {
	if s.SortBy == column {
		if s.SortOrder == "asc" {
			s.SortOrder = "desc"
		} else {
			s.SortOrder = "asc"
		}
		return s
	}

	s.SortBy = column
	s.SortOrder = "asc"
	return s
}

// ApplyOptimisticCreate inserts a provisional row at the top of the current
// page, truncates to the page size, and bumps the totals as if the server
// had already accepted the transaction.
func (s State) ApplyOptimisticCreate(t client.Transaction) State {
	if !s.HasData {
		return s
	}

	rows := make([]client.Transaction, 0, len(s.Rows)+1)
	rows = append(rows, t)
	rows = append(rows, s.Rows...)
	if len(rows) > s.Limit {
		rows = rows[:s.Limit]
	}

	s.Rows = rows
	s.TotalItems++
	s.TotalPages = int((s.TotalItems + int64(s.Limit) - 1) / int64(s.Limit))
	return s
}

// ReconcileCreated replaces the provisional row carrying tempID with the
// server-assigned transaction. A no-op if the row has already scrolled off
// the page.
func (s State) ReconcileCreated(tempID string, actual client.Transaction) State {
	for i := range s.Rows {
		if s.Rows[i].ID == tempID {
			rows := make([]client.Transaction, len(s.Rows))
			copy(rows, s.Rows)
			rows[i] = actual
			s.Rows = rows
			return s
		}
	}
	return s
}

// CreateFailed keeps the provisional row and surfaces a warning
func (s State) CreateFailed() State {
	s.Warning = WarningCreateFailed
	return s
}

// ClearWarning dismisses the current warning
func (s State) ClearWarning() State {
	s.Warning = ""
	return s
}

// NewTempID returns a provisional transaction id for optimistic inserts
func NewTempID() string {
	return fmt.Sprintf("temp-%d", time.Now().UnixMilli())
}
