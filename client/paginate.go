package client

// Window is a bounded run of page numbers plus the nav-button states a
// pager renders around it.
type Window struct {
	Pages       []int
	HasPrev     bool
	HasNext     bool
	CanGoFirst  bool
	CanGoLast   bool
	CurrentPage int
	TotalPages  int
}

// DefaultWindowSize is how many page buttons a pager shows at once.
const DefaultWindowSize = 5

// PageWindow computes the run of page numbers centered on current, clamped
// to [1,totalPages]. A size below one falls back to DefaultWindowSize.
// With zero pages the window is empty and every control is disabled.
func PageWindow(current, totalPages, size int) Window {
	if size < 1 {
		size = DefaultWindowSize
	}
	w := Window{TotalPages: totalPages}
	if totalPages < 1 {
		w.CurrentPage = 1
		return w
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}
	w.CurrentPage = current

	if size > totalPages {
		size = totalPages
	}
	start := current - size/2
	if start < 1 {
		start = 1
	}
	if start+size-1 > totalPages {
		start = totalPages - size + 1
	}
	for p := start; p < start+size; p++ {
		w.Pages = append(w.Pages, p)
	}

	w.HasPrev = current > 1
	w.CanGoFirst = current > 1
	w.HasNext = current < totalPages
	w.CanGoLast = current < totalPages
	return w
}
