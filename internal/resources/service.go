package resources

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/wanderlink/admin-gateway/internal/querycache"
	"github.com/wanderlink/admin-gateway/internal/upstream"
)

var (
	ErrNotSupported = errors.New("operation not supported for this resource")
	ErrBadStatus    = errors.New("unknown status value")
)

// Service executes catalog operations against the upstream API. List reads
// go through the query cache; every successful mutation invalidates the
// resource's cache prefix so the next read reflects it.
type Service struct {
	client *upstream.Client
	cache  *querycache.Cache
}

func NewService(client *upstream.Client, cache *querycache.Cache) *Service {
	return &Service{client: client, cache: cache}
}

func (s *Service) Cache() *querycache.Cache {
	return s.cache
}

// ListPage fetches one page of the resource collection, deduplicated and
// memoized by (resource, page, search, status).
func (s *Service) ListPage(ctx context.Context, def *Definition, token string, page int, search, status string) (*upstream.Page, error) {
	key := querycache.Key{Resource: def.Name, Page: page, Search: search, Status: status}
	if def.PublicList {
		// Public collections are served unauthenticated upstream; dropping
		// the bearer keeps the request identical across sessions, matching
		// the shared cache key.
		token = ""
	}
	return s.cache.Get(ctx, key, func(ctx context.Context) (*upstream.Page, error) {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("limit", strconv.Itoa(def.PageSize))
		if def.Searchable {
			q.Set("searchTerm", search)
		}
		if status != "" && status != "all" {
			q.Set("status", status)
		}

		env, err := s.client.Do(ctx, http.MethodGet, def.Path, upstream.Options{
			Query: q,
			Token: token,
		})
		if err != nil {
			return nil, err
		}
		return env.Page()
	})
}

// Get fetches a single record by id.
func (s *Service) Get(ctx context.Context, def *Definition, token, id string) (json.RawMessage, error) {
	env, err := s.client.Do(ctx, http.MethodGet, def.Path+"/"+id, upstream.Options{Token: token})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Create validates the draft and submits it. File-bearing resources go up
// as multipart in the resource's style; the rest as JSON.
func (s *Service) Create(ctx context.Context, def *Definition, token string, draft map[string]any, files []upstream.File) (string, error) {
	if def.ReadOnly {
		return "", ErrNotSupported
	}
	if err := s.validate(def, draft); err != nil {
		return "", err
	}

	opts := s.mutationOptions(def, token, draft, files)
	env, err := s.client.Do(ctx, http.MethodPost, def.CreatePath(), opts)
	if err != nil {
		return "", err
	}

	s.cache.Invalidate(def.Name)
	return env.Message, nil
}

// Update validates the draft and submits it for an existing record.
func (s *Service) Update(ctx context.Context, def *Definition, token, id string, draft map[string]any, files []upstream.File) (string, error) {
	if def.ReadOnly || def.NoUpdate {
		return "", ErrNotSupported
	}
	if err := s.validate(def, draft); err != nil {
		return "", err
	}

	opts := s.mutationOptions(def, token, draft, files)
	env, err := s.client.Do(ctx, http.MethodPut, def.Path+"/"+id, opts)
	if err != nil {
		return "", err
	}

	s.cache.Invalidate(def.Name)
	return env.Message, nil
}

// Delete removes a record.
func (s *Service) Delete(ctx context.Context, def *Definition, token, id string) (string, error) {
	env, err := s.client.Do(ctx, http.MethodDelete, def.Path+"/"+id, upstream.Options{Token: token})
	if err != nil {
		return "", err
	}

	s.cache.Invalidate(def.Name)
	return env.Message, nil
}

// UpdateStatus moves a record to one of the resource's status values.
func (s *Service) UpdateStatus(ctx context.Context, def *Definition, token, id, status string) (string, error) {
	if !def.HasStatus {
		return "", ErrNotSupported
	}
	if !def.HasStatusValue(status) {
		return "", ErrBadStatus
	}

	env, err := s.client.Do(ctx, http.MethodPut, def.Path+"/status/"+id, upstream.Options{
		JSON:  map[string]string{"status": status},
		Token: token,
	})
	if err != nil {
		return "", err
	}

	s.cache.Invalidate(def.Name)
	return env.Message, nil
}

func (s *Service) validate(def *Definition, draft map[string]any) error {
	if def.Form == nil {
		return nil
	}
	return def.Form.Validate(draft)
}

func (s *Service) mutationOptions(def *Definition, token string, draft map[string]any, files []upstream.File) upstream.Options {
	if len(def.FileParts) == 0 && len(files) == 0 {
		return upstream.Options{JSON: draft, Token: token}
	}
	return upstream.Options{
		Form: &upstream.Form{
			Style:  def.Style,
			Fields: draft,
			Files:  files,
		},
		Token: token,
	}
}
