package screen

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wanderlink/admin-gateway/internal/resources"
	"github.com/wanderlink/admin-gateway/internal/upstream"
)

var ErrUnknownResource = errors.New("unknown resource")

// Screen bundles the three controllers of one resource screen.
type Screen struct {
	List   *ListScreen
	Modal  *ModalScreen
	Delete *DeleteFlow
}

// State is the full snapshot the browser renders from.
type State struct {
	List   ListState   `json:"list"`
	Modal  ModalState  `json:"modal"`
	Delete DeleteState `json:"delete"`
}

func (s *Screen) State() State {
	return State{
		List:   s.List.State(),
		Modal:  s.Modal.State(),
		Delete: s.Delete.State(),
	}
}

// Registry holds screens per authenticated session. Screens are created
// lazily on first use and dropped with the session.
type Registry struct {
	mu       sync.Mutex
	svc      *resources.Service
	debounce time.Duration
	sessions map[string]map[string]*Screen
}

func NewRegistry(svc *resources.Service, debounce time.Duration) *Registry {
	return &Registry{
		svc:      svc,
		debounce: debounce,
		sessions: make(map[string]map[string]*Screen),
	}
}

// Screen returns the session's screen for the resource, creating it (and
// firing the initial list fetch) on first use. Screens only exist for
// authenticated sessions, so an absent token never triggers a fetch.
func (r *Registry) Screen(sessionID, token, resource string) (*Screen, error) {
	def, ok := resources.Lookup(resource)
	if !ok {
		return nil, ErrUnknownResource
	}

	r.mu.Lock()
	screens, ok := r.sessions[sessionID]
	if !ok {
		screens = make(map[string]*Screen)
		r.sessions[sessionID] = screens
	}
	if sc, ok := screens[resource]; ok {
		r.mu.Unlock()
		return sc, nil
	}

	list := NewList(def.PageSize, r.debounce, func(ctx context.Context, page int, search, status string) (*upstream.Page, error) {
		return r.svc.ListPage(ctx, def, token, page, search, status)
	})
	sc := &Screen{
		List:   list,
		Modal:  NewModal(r.svc, def, token, list.Refresh),
		Delete: NewDelete(r.svc, def, token, list.Refresh),
	}
	screens[resource] = sc
	r.mu.Unlock()

	list.Refresh()
	return sc, nil
}

// Drop forgets every screen of a session (logout or expiry).
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}
