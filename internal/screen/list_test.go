package screen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderlink/admin-gateway/internal/upstream"
)

const testDebounce = 15 * time.Millisecond

func pageFor(page, total int) *upstream.Page {
	return &upstream.Page{
		Meta:  upstream.Meta{Page: page, Limit: 10, Total: total},
		Items: []json.RawMessage{json.RawMessage(fmt.Sprintf(`{"page":%d}`, page))},
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, limit, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TotalPages(tc.total, tc.limit), "total=%d limit=%d", tc.total, tc.limit)
	}
}

func TestItemRange(t *testing.T) {
	start, end := ItemRange(1, 10, 25)
	assert.Equal(t, 1, start)
	assert.Equal(t, 10, end)

	start, end = ItemRange(3, 10, 25)
	assert.Equal(t, 21, start)
	assert.Equal(t, 25, end)

	start, end = ItemRange(1, 10, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestSetSearch_DebouncesToOneFetch(t *testing.T) {
	var calls int32
	var mu sync.Mutex
	var lastSearch string
	fetch := func(ctx context.Context, page int, search, status string) (*upstream.Page, error) {
		atomic.AddInt32(&calls, 1)
		mu.Lock()
		lastSearch = search
		mu.Unlock()
		return pageFor(page, 3), nil
	}

	l := NewList(10, testDebounce, fetch)
	for _, s := range []string{"b", "ba", "bal", "bali"} {
		l.SetSearch(s)
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 1
	}, time.Second, time.Millisecond)

	// No further fetch after the window has long passed.
	time.Sleep(3 * testDebounce)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	mu.Lock()
	assert.Equal(t, "bali", lastSearch)
	mu.Unlock()

	state := l.State()
	assert.Equal(t, "bali", state.Search)
	assert.Equal(t, "bali", state.DebouncedSearch)
	assert.Equal(t, 1, state.Page)
}

func TestSetSearch_UnchangedCommittedValueDoesNotRefetch(t *testing.T) {
	var calls int32
	fetch := func(ctx context.Context, page int, search, status string) (*upstream.Page, error) {
		atomic.AddInt32(&calls, 1)
		return pageFor(page, 3), nil
	}

	l := NewList(10, testDebounce, fetch)
	l.SetSearch("bali")
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 1
	}, time.Second, time.Millisecond)

	l.SetSearch("bali")
	time.Sleep(3 * testDebounce)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSetStatusFilter_ResetsToPageOne(t *testing.T) {
	var mu sync.Mutex
	var gotPage int
	var gotStatus string
	fetch := func(ctx context.Context, page int, search, status string) (*upstream.Page, error) {
		mu.Lock()
		gotPage, gotStatus = page, status
		mu.Unlock()
		return pageFor(page, 25), nil
	}

	l := NewList(10, testDebounce, fetch)
	l.Refresh()
	require.Eventually(t, func() bool { return len(l.State().Items) > 0 }, time.Second, time.Millisecond)

	require.True(t, l.SetPage(3))
	require.Eventually(t, func() bool { return l.State().Page == 3 && !l.State().Loading }, time.Second, time.Millisecond)

	l.SetStatusFilter("pending")
	require.Eventually(t, func() bool { return !l.State().Loading }, time.Second, time.Millisecond)

	mu.Lock()
	assert.Equal(t, 1, gotPage)
	assert.Equal(t, "pending", gotStatus)
	mu.Unlock()
	assert.Equal(t, 1, l.State().Page)

	// Same filter again is a no-op.
	before := l.State()
	l.SetStatusFilter("pending")
	assert.Equal(t, before.Page, l.State().Page)
}

func TestSetPage_RejectsOutOfRange(t *testing.T) {
	fetch := func(ctx context.Context, page int, search, status string) (*upstream.Page, error) {
		return pageFor(page, 25), nil
	}

	l := NewList(10, testDebounce, fetch)
	l.Refresh()
	require.Eventually(t, func() bool { return l.State().TotalPages == 3 }, time.Second, time.Millisecond)

	assert.False(t, l.SetPage(0))
	assert.False(t, l.SetPage(4))
	assert.True(t, l.SetPage(3))
	assert.True(t, l.SetPage(3), "current page is in range")
}

func TestStaleResponseIsDropped(t *testing.T) {
	var block atomic.Bool
	gate := make(chan struct{})
	fetch := func(ctx context.Context, page int, search, status string) (*upstream.Page, error) {
		if page == 1 && block.Load() {
			<-gate
		}
		return pageFor(page, 25), nil
	}

	l := NewList(10, testDebounce, fetch)
	l.Refresh()
	require.Eventually(t, func() bool { return len(l.State().Items) > 0 }, time.Second, time.Millisecond)

	block.Store(true)
	l.Refresh() // page-1 refetch, stalled
	require.True(t, l.SetPage(2))
	require.Eventually(t, func() bool {
		s := l.State()
		return s.Page == 2 && !s.Loading
	}, time.Second, time.Millisecond)

	close(gate) // the stalled page-1 response lands now
	time.Sleep(3 * testDebounce)

	state := l.State()
	assert.Equal(t, 2, state.Page)
	require.Len(t, state.Items, 1)
	assert.JSONEq(t, `{"page":2}`, string(state.Items[0]), "stale page-1 payload must not clobber page 2")
}

func TestFetchFailureSetsFailedAndRecovers(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	fetch := func(ctx context.Context, page int, search, status string) (*upstream.Page, error) {
		if fail.Load() {
			return nil, errors.New("upstream down")
		}
		return pageFor(page, 3), nil
	}

	l := NewList(10, testDebounce, fetch)
	l.Refresh()
	require.Eventually(t, func() bool { return l.State().Failed }, time.Second, time.Millisecond)
	assert.Empty(t, l.State().Items)

	fail.Store(false)
	l.Refresh()
	require.Eventually(t, func() bool {
		s := l.State()
		return !s.Failed && len(s.Items) == 1
	}, time.Second, time.Millisecond)
}

func TestShowPagination(t *testing.T) {
	total := 10
	fetch := func(ctx context.Context, page int, search, status string) (*upstream.Page, error) {
		return pageFor(page, total), nil
	}

	l := NewList(10, testDebounce, fetch)
	l.Refresh()
	require.Eventually(t, func() bool { return len(l.State().Items) > 0 }, time.Second, time.Millisecond)
	assert.False(t, l.State().ShowPagination, "a single full page needs no pager")

	total = 11
	l.Refresh()
	require.Eventually(t, func() bool { return l.State().ShowPagination }, time.Second, time.Millisecond)
	assert.Equal(t, 2, l.State().TotalPages)
}
