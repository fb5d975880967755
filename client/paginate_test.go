package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageWindow(t *testing.T) {
	cases := []struct {
		name       string
		current    int
		totalPages int
		size       int
		wantPages  []int
		wantPrev   bool
		wantNext   bool
	}{
		{"centered", 10, 20, 5, []int{8, 9, 10, 11, 12}, true, true},
		{"clamped at start", 1, 20, 5, []int{1, 2, 3, 4, 5}, false, true},
		{"near start", 2, 20, 5, []int{1, 2, 3, 4, 5}, true, true},
		{"clamped at end", 20, 20, 5, []int{16, 17, 18, 19, 20}, true, false},
		{"near end", 19, 20, 5, []int{16, 17, 18, 19, 20}, true, true},
		{"fewer pages than window", 2, 3, 5, []int{1, 2, 3}, true, true},
		{"single page", 1, 1, 5, []int{1}, false, false},
		{"default size", 6, 10, 0, []int{4, 5, 6, 7, 8}, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := PageWindow(tc.current, tc.totalPages, tc.size)
			assert.Equal(t, tc.wantPages, w.Pages)
			assert.Equal(t, tc.wantPrev, w.HasPrev)
			assert.Equal(t, tc.wantPrev, w.CanGoFirst)
			assert.Equal(t, tc.wantNext, w.HasNext)
			assert.Equal(t, tc.wantNext, w.CanGoLast)
		})
	}
}

func TestPageWindowNoPages(t *testing.T) {
	w := PageWindow(3, 0, 5)
	assert.Empty(t, w.Pages)
	assert.Equal(t, 1, w.CurrentPage)
	assert.False(t, w.HasPrev)
	assert.False(t, w.HasNext)
	assert.False(t, w.CanGoFirst)
	assert.False(t, w.CanGoLast)
}

func TestPageWindowClampsCurrent(t *testing.T) {
	w := PageWindow(50, 8, 5)
	assert.Equal(t, 8, w.CurrentPage)
	assert.Equal(t, []int{4, 5, 6, 7, 8}, w.Pages)

	w = PageWindow(-2, 8, 5)
	assert.Equal(t, 1, w.CurrentPage)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, w.Pages)
}
