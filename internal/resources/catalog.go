// Package resources describes every backend-managed entity type the
// dashboard works with. Each Definition carries the upstream path, form
// schema, multipart convention and status model for one resource; the
// generic handlers and screen controllers are parameterized by it instead
// of duplicating per-resource code.
package resources

import (
	"github.com/wanderlink/admin-gateway/internal/forms"
	"github.com/wanderlink/admin-gateway/internal/upstream"
)

type Definition struct {
	// Name is the dashboard-facing resource name.
	Name string
	// Path is the upstream collection path; it can differ from Name
	// (media lives at /event).
	Path       string
	PageSize   int
	Searchable bool
	// Statuses are the accepted values for the list status filter and for
	// status updates. Empty means the resource has no status model.
	Statuses []string
	// HasStatus marks resources exposing PUT <path>/status/:id.
	HasStatus bool
	// ReadOnly resources (contact inbox) support list, get and delete only.
	ReadOnly bool
	// NoUpdate resources (media) support create and delete but not update.
	NoUpdate bool
	// PublicList marks collections readable without a bearer token.
	PublicList bool
	Form       *forms.Form
	Style      upstream.Style
	// FileParts are the binary part names accepted on mutation.
	FileParts []string
}

func (d *Definition) CreatePath() string {
	return d.Path + "/create"
}

// HasStatusValue reports whether status is one of the definition's values.
func (d *Definition) HasStatusValue(status string) bool {
	for _, s := range d.Statuses {
		if s == status {
			return true
		}
	}
	return false
}

const defaultPageSize = 10

var reviewStatuses = []string{"pending", "accepted", "rejected"}

var catalog = map[string]*Definition{
	"creator": {
		Name:       "creator",
		Path:       "/creator",
		PageSize:   defaultPageSize,
		Searchable: true,
		Statuses:   reviewStatuses,
		HasStatus:  true,
		PublicList: true,
		Form:       creatorForm(),
		Style:      upstream.StyleFlat,
		FileParts:  []string{"image"},
	},
	"agent": {
		Name:       "agent",
		Path:       "/agent",
		PageSize:   defaultPageSize,
		Searchable: true,
		Statuses:   reviewStatuses,
		HasStatus:  true,
		Form:       agentForm(),
		Style:      upstream.StyleFlat,
		FileParts:  []string{"image"},
	},
	"trip": {
		Name:       "trip",
		Path:       "/trip",
		PageSize:   defaultPageSize,
		Searchable: true,
		Form:       tripForm(),
		Style:      upstream.StyleDataField,
		FileParts:  []string{"image"},
	},
	"partnership": {
		Name:      "partnership",
		Path:      "/partnership",
		PageSize:  defaultPageSize,
		Form:      partnershipForm(),
		Style:     upstream.StyleFlat,
		FileParts: []string{"image"},
	},
	"contact": {
		Name:     "contact",
		Path:     "/contact",
		PageSize: defaultPageSize,
		ReadOnly: true,
	},
	"media": {
		Name:      "media",
		Path:      "/event",
		PageSize:  defaultPageSize,
		NoUpdate:  true,
		Form:      mediaForm(),
		Style:     upstream.StyleDataField,
		FileParts: []string{"image", "video"},
	},
}

// Lookup resolves a resource by its dashboard-facing name.
func Lookup(name string) (*Definition, bool) {
	def, ok := catalog[name]
	return def, ok
}

// Names lists the catalog in a stable order for overview reporting.
func Names() []string {
	return []string{"creator", "agent", "trip", "partnership", "contact", "media"}
}

func creatorForm() *forms.Form {
	return forms.New(map[string]any{
		"type":     "object",
		"required": []string{"fullName", "email", "phoneNumber"},
		"properties": map[string]any{
			"fullName":    map[string]any{"type": "string", "minLength": 2},
			"email":       map[string]any{"type": "string", "format": "email"},
			"phoneNumber": map[string]any{"type": "string", "minLength": 5},
			"bio":         map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"socialMedia": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"platform", "link"},
					"properties": map[string]any{
						"platform":  map[string]any{"type": "string", "minLength": 1},
						"link":      map[string]any{"type": "string", "minLength": 1},
						"followers": map[string]any{"type": "integer", "minimum": 0},
					},
				},
			},
			"interests": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	})
}

func agentForm() *forms.Form {
	return forms.New(map[string]any{
		"type":     "object",
		"required": []string{"fullName", "email", "phoneNumber", "country", "designation", "brandName", "workingFrom"},
		"properties": map[string]any{
			"fullName":    map[string]any{"type": "string", "minLength": 2},
			"email":       map[string]any{"type": "string", "format": "email"},
			"phoneNumber": map[string]any{"type": "string", "minLength": 5},
			"country":     map[string]any{"type": "string", "minLength": 2},
			"designation": map[string]any{"type": "string", "minLength": 2},
			"brandName":   map[string]any{"type": "string", "minLength": 2},
			"workingFrom": map[string]any{"type": "string", "minLength": 2},
		},
	})
}

func tripForm() *forms.Form {
	return forms.New(map[string]any{
		"type":     "object",
		"required": []string{"title", "description", "startDate", "endDate"},
		"properties": map[string]any{
			"title":       map[string]any{"type": "string", "minLength": 1},
			"description": map[string]any{"type": "string", "minLength": 1},
			"location":    map[string]any{"type": "string"},
			"startDate":   map[string]any{"type": "string", "minLength": 1},
			"endDate":     map[string]any{"type": "string", "minLength": 1},
		},
	},
		forms.DateNotPast("startDate", "Start date cannot be in the past"),
		forms.DateNotBefore("endDate", "startDate", "End date cannot be before start date"),
	)
}

func partnershipForm() *forms.Form {
	return forms.New(map[string]any{
		"type":     "object",
		"required": []string{"title", "description"},
		"properties": map[string]any{
			"title":       map[string]any{"type": "string", "minLength": 1},
			"description": map[string]any{"type": "string", "minLength": 1},
		},
	})
}

func mediaForm() *forms.Form {
	return forms.New(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{"type": "string"},
		},
	})
}
