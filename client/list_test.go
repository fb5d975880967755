package client

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticLoader(items []string, total int) Loader[string] {
	return func(ctx context.Context, req PageRequest) ([]string, int, error) {
		return items, total, nil
	}
}

func TestListControllerFetch(t *testing.T) {
	var got PageRequest
	lc := NewListController(func(ctx context.Context, req PageRequest) ([]string, int, error) {
		got = req
		return []string{"a", "b"}, 12, nil
	}, 0)

	require.NoError(t, lc.Fetch(context.Background()))
	assert.Equal(t, []string{"a", "b"}, lc.Items())
	assert.Equal(t, 12, lc.Total())
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, defaultPageSize, got.PageSize)
	assert.Equal(t, 0, got.Offset())
}

func TestSearchChangeResetsPage(t *testing.T) {
	lc := NewListController(staticLoader([]string{"x"}, 100), 0)
	require.NoError(t, lc.Fetch(context.Background()))

	lc.SetPage(3)
	assert.Equal(t, 3, lc.Page())

	lc.SetSearch("library")
	assert.Equal(t, 1, lc.Page())

	// Same search again is a no-op.
	lc.SetPage(2)
	lc.SetSearch("library")
	assert.Equal(t, 2, lc.Page())
}

func TestFilterChangeResetsPage(t *testing.T) {
	lc := NewListController(staticLoader([]string{"x"}, 100), 0)
	require.NoError(t, lc.Fetch(context.Background()))

	lc.SetPage(4)
	lc.SetFilter("status", "approved")
	assert.Equal(t, 1, lc.Page())

	lc.SetPage(4)
	lc.SetFilter("status", "approved")
	assert.Equal(t, 4, lc.Page(), "unchanged filter keeps the page")

	lc.SetPage(4)
	lc.SetFilter("status", "")
	assert.Equal(t, 1, lc.Page(), "removing a filter resets the page")
}

func TestPageSizeChangeResetsPage(t *testing.T) {
	lc := NewListController(staticLoader([]string{"x"}, 100), 0)
	require.NoError(t, lc.Fetch(context.Background()))

	lc.SetPage(5)
	lc.SetPageSize(50)
	assert.Equal(t, 1, lc.Page())
	assert.Equal(t, 50, lc.PageSize())
}

func TestSetPageClamped(t *testing.T) {
	lc := NewListController(staticLoader(make([]string, 20), 45), 0)
	require.NoError(t, lc.Fetch(context.Background()))
	assert.Equal(t, 3, lc.TotalPages())

	lc.SetPage(99)
	assert.Equal(t, 3, lc.Page())
	lc.SetPage(0)
	assert.Equal(t, 1, lc.Page())
}

func TestStaleFetchDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 2)
	call := 0
	var mu sync.Mutex

	lc := NewListController(func(ctx context.Context, req PageRequest) ([]string, int, error) {
		mu.Lock()
		call++
		n := call
		mu.Unlock()
		started <- struct{}{}
		if n == 1 {
			<-release
			return []string{"stale"}, 1, nil
		}
		return []string{"fresh"}, 1, nil
	}, 0)

	errCh := make(chan error, 1)
	go func() { errCh <- lc.Fetch(context.Background()) }()
	<-started

	// A second fetch supersedes the in-flight one.
	require.NoError(t, lc.Fetch(context.Background()))
	<-started
	close(release)

	assert.ErrorIs(t, <-errCh, ErrStale)
	assert.Equal(t, []string{"fresh"}, lc.Items())
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, size, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 20, 5},
	}
	for _, tc := range cases {
		lc := NewListController(staticLoader(nil, tc.total), tc.size)
		require.NoError(t, lc.Fetch(context.Background()))
		assert.Equal(t, tc.want, lc.TotalPages(), "total=%d size=%d", tc.total, tc.size)
	}
}
