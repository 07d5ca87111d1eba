// Package querycache memoizes resource list pages keyed by
// (resource, page, search, status). It de-duplicates concurrent identical
// fetches and supports invalidation by resource prefix; there is no retry
// or expiry beyond explicit invalidation.
package querycache

import (
	"context"
	"fmt"
	"sync"

	"github.com/wanderlink/admin-gateway/internal/upstream"
)

// Key identifies one cacheable list fetch. Identical keys resolve to the
// same cached page until the resource is invalidated.
type Key struct {
	Resource string
	Page     int
	Search   string
	Status   string
}

func (k Key) String() string {
	return fmt.Sprintf("%s|p=%d|q=%s|s=%s", k.Resource, k.Page, k.Search, k.Status)
}

type FetchFunc func(ctx context.Context) (*upstream.Page, error)

type entry struct {
	ready chan struct{}
	page  *upstream.Page
	err   error
}

type Cache struct {
	mu sync.Mutex
	// generations bumps per resource on invalidation; entries created under
	// an older generation are unreachable and an in-flight stale fetch
	// cannot repopulate a newer one.
	generations map[string]uint64
	entries     map[string]*entry
}

func New() *Cache {
	return &Cache{
		generations: make(map[string]uint64),
		entries:     make(map[string]*entry),
	}
}

// Get returns the cached page for key, starting fetch if nothing is cached
// or in flight. Concurrent callers with the same key share one fetch.
// Failed fetches are not cached; the next Get retries.
func (c *Cache) Get(ctx context.Context, key Key, fetch FetchFunc) (*upstream.Page, error) {
	c.mu.Lock()
	gen := c.generations[key.Resource]
	ck := c.entryKey(key, gen)

	if e, ok := c.entries[ck]; ok {
		c.mu.Unlock()
		select {
		case <-e.ready:
			return e.page, e.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	e := &entry{ready: make(chan struct{})}
	c.entries[ck] = e
	c.mu.Unlock()

	page, err := fetch(ctx)

	c.mu.Lock()
	e.page, e.err = page, err
	if err != nil || c.generations[key.Resource] != gen {
		// Errors are never cached, and a page fetched under a stale
		// generation must not serve reads issued after the invalidation.
		delete(c.entries, ck)
	}
	c.mu.Unlock()
	close(e.ready)

	return page, err
}

// Invalidate drops every cached page of the given resource. The next Get
// for any page of that resource refetches.
func (c *Cache) Invalidate(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen := c.generations[resource]
	c.generations[resource] = gen + 1
	for ck, e := range c.entries {
		if keyResource(ck) == resource {
			select {
			case <-e.ready:
				delete(c.entries, ck)
			default:
				// In flight; the generation check on completion drops it.
			}
		}
	}
}

func (c *Cache) entryKey(key Key, gen uint64) string {
	return fmt.Sprintf("%s#%d", key.String(), gen)
}

func keyResource(ck string) string {
	for i := 0; i < len(ck); i++ {
		if ck[i] == '|' {
			return ck[:i]
		}
	}
	return ck
}
