// Package screen hosts the server-side state machines behind each
// dashboard screen: a paginated list, a create/edit modal and a delete
// confirmation flow per resource, held per session and driven by the
// browser through the event API.
package screen

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/wanderlink/admin-gateway/internal/upstream"
)

// DefaultDebounce is the quiet period a search box must settle for before
// its value is committed.
const DefaultDebounce = 500 * time.Millisecond

// ListFetch retrieves one page for the given query state.
type ListFetch func(ctx context.Context, page int, search, status string) (*upstream.Page, error)

// ListState is a render-ready snapshot of a list screen.
type ListState struct {
	Page            int               `json:"page"`
	Search          string            `json:"search"`
	DebouncedSearch string            `json:"debouncedSearch"`
	StatusFilter    string            `json:"statusFilter"`
	Items           []json.RawMessage `json:"items"`
	Meta            upstream.Meta     `json:"meta"`
	TotalPages      int               `json:"totalPages"`
	StartItem       int               `json:"startItem"`
	EndItem         int               `json:"endItem"`
	ShowPagination  bool              `json:"showPagination"`
	Loading         bool              `json:"loading"`
	Failed          bool              `json:"failed"`
}

type ListScreen struct {
	mu       sync.Mutex
	fetch    ListFetch
	pageSize int
	debounce time.Duration

	page      int
	search    string
	debounced string
	status    string

	items   []json.RawMessage
	meta    upstream.Meta
	loading bool
	failed  bool

	// seq tags each fetch with the query state it was issued under; a
	// resolution whose tag no longer matches is dropped so a stale page-1
	// response can never clobber a newer page-2 render.
	seq   uint64
	timer *time.Timer
}

func NewList(pageSize int, debounce time.Duration, fetch ListFetch) *ListScreen {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &ListScreen{
		fetch:    fetch,
		pageSize: pageSize,
		debounce: debounce,
		page:     1,
		status:   "all",
	}
}

// SetSearch updates the visible input value immediately and schedules the
// committed value after the quiet period. Further calls before the period
// elapses restart the timer, so exactly one fetch fires per settled value.
func (l *ListScreen) SetSearch(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.search = s
	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = time.AfterFunc(l.debounce, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.search != s {
			// A later keystroke restarted the debounce window.
			return
		}
		if l.debounced == s && l.page == 1 {
			return
		}
		l.debounced = s
		l.page = 1
		l.kickLocked()
	})
}

// SetStatusFilter switches the status filter and resets to page 1; the
// meaning of "page N" does not survive a filter change.
func (l *ListScreen) SetStatusFilter(f string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if f == l.status {
		return
	}
	l.status = f
	l.page = 1
	l.kickLocked()
}

// SetPage moves to page n. Out-of-range values are rejected.
func (l *ListScreen) SetPage(n int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n < 1 || n > l.totalPagesLocked() {
		return false
	}
	if n == l.page {
		return true
	}
	l.page = n
	l.kickLocked()
	return true
}

// Refresh refetches the current query key.
func (l *ListScreen) Refresh() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.kickLocked()
}

func (l *ListScreen) kickLocked() {
	l.seq++
	seq := l.seq
	page, search, status := l.page, l.debounced, l.status
	l.loading = true

	go func() {
		p, err := l.fetch(context.Background(), page, search, status)

		l.mu.Lock()
		defer l.mu.Unlock()
		if seq != l.seq {
			// Superseded while in flight; drop silently.
			return
		}
		l.loading = false
		if err != nil {
			l.failed = true
			l.items = nil
			l.meta = upstream.Meta{}
			return
		}
		l.failed = false
		l.items = p.Items
		l.meta = p.Meta
	}()
}

func (l *ListScreen) State() ListState {
	l.mu.Lock()
	defer l.mu.Unlock()

	limit := l.limitLocked()
	start, end := ItemRange(l.page, limit, l.meta.Total)
	return ListState{
		Page:            l.page,
		Search:          l.search,
		DebouncedSearch: l.debounced,
		StatusFilter:    l.status,
		Items:           l.items,
		Meta:            l.meta,
		TotalPages:      l.totalPagesLocked(),
		StartItem:       start,
		EndItem:         end,
		ShowPagination:  l.meta.Total > limit,
		Loading:         l.loading,
		Failed:          l.failed,
	}
}

func (l *ListScreen) limitLocked() int {
	if l.meta.Limit > 0 {
		return l.meta.Limit
	}
	return l.pageSize
}

func (l *ListScreen) totalPagesLocked() int {
	return TotalPages(l.meta.Total, l.limitLocked())
}

// TotalPages is ceil(total/limit), never below 1 so the UI never shows
// zero pages.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 1
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		return 1
	}
	return pages
}

// ItemRange returns the 1-based index range shown for the page.
func ItemRange(page, limit, total int) (start, end int) {
	if total == 0 {
		return 0, 0
	}
	start = (page-1)*limit + 1
	end = page * limit
	if end > total {
		end = total
	}
	return start, end
}
