package listview

import (
	"context"
	"strconv"
	"sync"
	"time"

	"txnledger/internal/client"
)

// TransactionAPI is the slice of the API client the controller needs
type TransactionAPI interface {
	ListTransactions(ctx context.Context, query client.ListQuery) (*client.Page, error)
	CreateTransaction(ctx context.Context, input client.CreateTransactionInput) (*client.Transaction, error)
}

// Controller owns the list view state and drives fetches against the API.
// Every page, filter, or sort change cancels the fetch in flight and starts
// a new one; the sequence number in State makes stale settlements no-ops
// even if cancellation races with delivery.
type Controller struct {
	mu       sync.Mutex
	state    State
	api      TransactionAPI
	cancel   context.CancelFunc
	onChange func(State)
	wg       sync.WaitGroup
}

// NewController creates a controller over the given API. onChange, if not
// nil, is invoked with a state snapshot after every visible change.
func NewController(api TransactionAPI, onChange func(State)) *Controller {
	return &Controller{
		state:    NewState(),
		api:      api,
		onChange: onChange,
	}
}

// State returns a snapshot of the current view state
func (ctl *Controller) State() State {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.state
}

// Refetch reloads the current page with the current filters and sort
func (ctl *Controller) Refetch() {
	ctl.transition(func(s State) State { return s })
}

// SetPage jumps to the given page
func (ctl *Controller) SetPage(page int) {
	ctl.transition(func(s State) State { return s.WithPage(page) })
}

// NextPage advances one page if one exists
func (ctl *Controller) NextPage() {
	ctl.transition(func(s State) State { return s.PageForward() })
}

// PrevPage goes back one page if possible
func (ctl *Controller) PrevPage() {
	ctl.transition(func(s State) State { return s.PageBackward() })
}

// SetLimit changes the page size
func (ctl *Controller) SetLimit(limit int) {
	ctl.transition(func(s State) State { return s.WithLimit(limit) })
}

// SetFilters replaces the active filters
func (ctl *Controller) SetFilters(f Filters) {
	ctl.transition(func(s State) State { return s.WithFilters(f) })
}

// ResetFilters clears all filters
func (ctl *Controller) ResetFilters() {
	ctl.transition(func(s State) State { return s.ResetFilters() })
}

// ToggleSort changes the sort column or flips the direction
func (ctl *Controller) ToggleSort(column string) {
	ctl.transition(func(s State) State { return s.ToggleSort(column) })
}

// ClearWarning dismisses the current warning
func (ctl *Controller) ClearWarning() {
	ctl.mu.Lock()
	ctl.state = ctl.state.ClearWarning()
	snapshot := ctl.state
	ctl.mu.Unlock()

	ctl.notify(snapshot)
}

// CreateTransaction inserts a provisional row synchronously, then persists
// the transaction in the background. On success the provisional row is
// swapped for the server's; on failure it stays and a warning is surfaced.
func (ctl *Controller) CreateTransaction(input client.CreateTransactionInput) {
	tempID := NewTempID()
	timestamp := time.Now().UTC()
	if input.Timestamp != nil {
		timestamp = *input.Timestamp
	}

	provisional := client.Transaction{
		ID:        tempID,
		Amount:    strconv.FormatFloat(input.Amount, 'f', 2, 64),
		Type:      input.Type,
		Timestamp: timestamp,
	}

	ctl.mu.Lock()
	ctl.state = ctl.state.ApplyOptimisticCreate(provisional)
	snapshot := ctl.state
	ctl.mu.Unlock()

	ctl.notify(snapshot)

	ctl.wg.Add(1)
	go func() {
		defer ctl.wg.Done()

		created, err := ctl.api.CreateTransaction(context.Background(), input)

		ctl.mu.Lock()
		if err != nil {
			ctl.state = ctl.state.CreateFailed()
		} else {
			ctl.state = ctl.state.ReconcileCreated(tempID, *created)
		}
		snapshot := ctl.state
		ctl.mu.Unlock()

		ctl.notify(snapshot)
	}()
}

// Wait blocks until all background work has settled
func (ctl *Controller) Wait() {
	ctl.wg.Wait()
}

// transition applies a state change and starts a fetch for the resulting
// page, cancelling any fetch still in flight.
func (ctl *Controller) transition(apply func(State) State) {
	ctl.mu.Lock()

	if ctl.cancel != nil {
		ctl.cancel()
	}

	ctl.state = apply(ctl.state).StartFetch()
	seq := ctl.state.Seq
	query := buildQuery(ctl.state)
	snapshot := ctl.state

	ctx, cancel := context.WithCancel(context.Background())
	ctl.cancel = cancel
	ctl.mu.Unlock()

	ctl.notify(snapshot)

	ctl.wg.Add(1)
	go func() {
		defer ctl.wg.Done()
		defer cancel()

		page, err := ctl.api.ListTransactions(ctx, query)

		ctl.mu.Lock()
		if seq != ctl.state.Seq {
			ctl.mu.Unlock()
			return
		}
		if err != nil {
			ctl.state = ctl.state.FetchFailed(seq, err.Error())
		} else {
			ctl.state = ctl.state.FetchSucceeded(seq, page)
		}
		snapshot := ctl.state
		ctl.mu.Unlock()

		ctl.notify(snapshot)
	}()
}

func (ctl *Controller) notify(s State) {
	if ctl.onChange != nil {
		ctl.onChange(s)
	}
}

// buildQuery translates view state into API list parameters
func buildQuery(s State) client.ListQuery {
	return client.ListQuery{
		Page:      s.Page,
		Limit:     s.Limit,
		SortBy:    s.SortBy,
		SortOrder: s.SortOrder,
		Type:      s.Filters.Type,
		StartDate: s.Filters.StartDate,
		EndDate:   s.Filters.EndDate,
		MinAmount: s.Filters.MinAmount,
		MaxAmount: s.Filters.MaxAmount,
	}
}
