package client

import (
	"context"
	"errors"
	"sync"
)

// ErrStale reports a fetch whose response arrived after a newer fetch had
// already started; its result was discarded.
var ErrStale = errors.New("client: fetch superseded")

// PageRequest is the query snapshot handed to a list loader.
type PageRequest struct {
	Page     int
	PageSize int
	Search   string
	Filters  map[string]string
}

// Offset converts the 1-based page to the API's offset.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// Loader fetches one page of rows plus the total match count.
type Loader[T any] func(ctx context.Context, req PageRequest) ([]T, int, error)

// ListController drives a paged, searchable, filterable listing. Changing
// the search text, any filter, or the page size snaps back to page one;
// only explicit page navigation keeps the position. Responses from
// superseded fetches are discarded, so a slow page-2 response can never
// clobber the page-1 rows the user is already looking at.
type ListController[T any] struct {
	mu       sync.Mutex
	loader   Loader[T]
	page     int
	pageSize int
	search   string
	filters  map[string]string
	seq      uint64
	items    []T
	total    int
}

const defaultPageSize = 20

func NewListController[T any](loader Loader[T], pageSize int) *ListController[T] {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &ListController[T]{
		loader:   loader,
		page:     1,
		pageSize: pageSize,
		filters:  map[string]string{},
	}
}

// SetSearch updates the search text. Any change resets to page one.
func (lc *ListController[T]) SetSearch(q string) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if lc.search != q {
		lc.search = q
		lc.page = 1
	}
}

// SetFilter sets one filter value; an empty value removes the filter.
// Any change resets to page one.
func (lc *ListController[T]) SetFilter(key, value string) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if lc.filters[key] == value {
		return
	}
	if value == "" {
		delete(lc.filters, key)
	} else {
		lc.filters[key] = value
	}
	lc.page = 1
}

// SetPageSize changes the page size and resets to page one.
func (lc *ListController[T]) SetPageSize(n int) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if n > 0 && n != lc.pageSize {
		lc.pageSize = n
		lc.page = 1
	}
}

// SetPage navigates to a page, clamped to one at the low end. The high end
// is only known after a fetch, so it is clamped against the last total.
func (lc *ListController[T]) SetPage(n int) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if n < 1 {
		n = 1
	}
	if tp := lc.totalPagesLocked(); tp > 0 && n > tp {
		n = tp
	}
	lc.page = n
}

// Fetch loads the current page through the loader. If another Fetch starts
// before this one returns, the late result is dropped and Fetch reports
// ErrStale so callers can tell nothing was applied.
func (lc *ListController[T]) Fetch(ctx context.Context) error {
	lc.mu.Lock()
	lc.seq++
	seq := lc.seq
	req := PageRequest{
		Page:     lc.page,
		PageSize: lc.pageSize,
		Search:   lc.search,
		Filters:  copyFilters(lc.filters),
	}
	lc.mu.Unlock()

	items, total, err := lc.loader(ctx, req)

	lc.mu.Lock()
	defer lc.mu.Unlock()
	if seq != lc.seq {
		return ErrStale
	}
	if err != nil {
		return err
	}
	lc.items = items
	lc.total = total
	return nil
}

// Items returns the rows of the last applied fetch.
func (lc *ListController[T]) Items() []T {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.items
}

func (lc *ListController[T]) Total() int {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.total
}

func (lc *ListController[T]) Page() int {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.page
}

func (lc *ListController[T]) PageSize() int {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.pageSize
}

// TotalPages is ceil(total/pageSize); zero until something was fetched.
func (lc *ListController[T]) TotalPages() int {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.totalPagesLocked()
}

func (lc *ListController[T]) totalPagesLocked() int {
	if lc.total <= 0 {
		return 0
	}
	return (lc.total + lc.pageSize - 1) / lc.pageSize
}

func copyFilters(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
