package listview

import (
	"context"
	"errors"
	"sync"
)

// State is the per-view lifecycle: Idle -> Loading -> {Ready, Failed}.
// Ready goes back to Loading on any filter/page change or refresh; Failed
// re-enters Loading only on an explicit retry. Closed is terminal.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Failed
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	case Closed:
		return "closed"
	}
	return "unknown"
}

var ErrClosed = errors.New("listview: view is closed")

// FetchFunc loads one page worth of items. Server-filtered views receive
// the live filter/query/pager state and return the page plus the
// server-reported total; client-filtered views ignore the inputs, return
// the full list and a negative total.
type FetchFunc[T any] func(ctx context.Context, filters Filters, query string, pager Pager) (items []T, total int, err error)

// View is the shared list pipeline every listing screen used to
// re-implement by hand: one in-memory cache of the last fetched list,
// filter + query + pager state, and a fetch path that is safe against
// out-of-order responses.
//
// Every load is stamped with a generation; a response that arrives after
// a newer load started is discarded instead of overwriting fresh data,
// and the superseded request's context is cancelled.
type View[T any] struct {
	mu sync.Mutex

	schema     Schema[T]
	fetch      FetchFunc[T]
	serverSide bool

	state   State
	items   []T // full replacement on every successful fetch
	filters Filters
	query   string
	pager   Pager

	gen     uint64
	cancel  context.CancelFunc
	lastErr error
}

// NewClientView builds a view whose filtering runs in memory over the
// whole fetched list (blogs-style screens).
func NewClientView[T any](schema Schema[T], fetch FetchFunc[T]) *View[T] {
	return &View[T]{
		schema:  schema,
		fetch:   fetch,
		filters: Filters{},
		pager:   NewPager(10),
	}
}

// NewServerView builds a view that trusts the upstream to filter and
// paginate (jobs-style screens). No client-side slicing happens.
func NewServerView[T any](fetch FetchFunc[T], pageSize int) *View[T] {
	return &View[T]{
		fetch:      fetch,
		serverSide: true,
		filters:    Filters{},
		pager:      NewPager(pageSize),
	}
}

// SetFilter selects a single value on one dimension ("" clears it) and
// resets to page 1, matching the radio-chip behavior of every screen.
func (v *View[T]) SetFilter(dim, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters[dim] = value
	v.pager.ResetPage()
}

func (v *View[T]) SetQuery(q string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = q
	v.pager.ResetPage()
}

// ClearFilters resets every dimension, the query and the page. The cached
// list stays; client views immediately show the unfiltered data again.
func (v *View[T]) ClearFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters = Filters{}
	v.query = ""
	v.pager.ResetPage()
}

func (v *View[T]) SetPage(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pager.SetPage(n)
}

func (v *View[T]) SetSize(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pager.SetSize(n)
}

// Load runs one fetch with the current state. Concurrent loads are
// allowed; only the newest one may publish its result.
func (v *View[T]) Load(ctx context.Context) error {
	v.mu.Lock()
	if v.state == Closed {
		v.mu.Unlock()
		return ErrClosed
	}
	if v.cancel != nil {
		v.cancel() // supersede any in-flight request
	}
	ctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.gen++
	gen := v.gen
	v.state = Loading
	filters := v.filters.Clone()
	query := v.query
	pager := v.pager
	v.mu.Unlock()

	items, total, err := v.fetch(ctx, filters, query, pager)
	cancel()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == Closed {
		return ErrClosed
	}
	if gen != v.gen {
		// A newer request was issued while this one was in flight;
		// its response owns the view now.
		return nil
	}
	if err != nil {
		v.state = Failed
		v.lastErr = err
		return err
	}
	v.items = items
	if total >= 0 {
		v.pager.ApplyTotal(total)
	} else {
		v.pager.ApplyTotal(len(items))
	}
	v.state = Ready
	v.lastErr = nil
	return nil
}

// Items returns the displayed subset: server views hand back the page the
// upstream returned, client views derive it from the cache on every call.
func (v *View[T]) Items() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.serverSide {
		return v.items
	}
	return v.schema.Filter(v.items, v.filters, v.query)
}

// Cache exposes the raw fetched list (client views only need this for
// derived chrome like the distinct-category chips).
func (v *View[T]) Cache() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.items
}

func (v *View[T]) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *View[T]) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}

func (v *View[T]) Pager() Pager {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pager
}

func (v *View[T]) Filters() Filters {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filters.Clone()
}

func (v *View[T]) Query() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

// Mutate lets write-through actions patch the cached list in place (an
// applicant status change, say) without paying for a refetch.
func (v *View[T]) Mutate(fn func(items []T) []T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == Closed {
		return
	}
	v.items = fn(v.items)
}

// Close cancels any in-flight fetch and makes the view terminal, so a
// late response can never touch state after unmount.
func (v *View[T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.state = Closed
}
