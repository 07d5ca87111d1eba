package upstream

import (
	"encoding/json"
	"errors"
)

var ErrNoData = errors.New("upstream response carried no data")

// Envelope is the common wrapper the platform API puts around every
// response body.
type Envelope struct {
	StatusCode int             `json:"statusCode"`
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

type Meta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Page is one normalized page of a resource collection.
type Page struct {
	Meta  Meta              `json:"meta"`
	Items []json.RawMessage `json:"data"`
}

type pageEnvelope struct {
	Meta *Meta           `json:"meta"`
	Data json.RawMessage `json:"data"`
}

// Page decodes the envelope data as a collection page. Some endpoints nest
// the page one level deeper than others ({meta,data} vs {data:{meta,data}});
// both shapes normalize to the same Page. A bare array is tolerated too and
// gets a synthesized meta.
func (e *Envelope) Page() (*Page, error) {
	if len(e.Data) == 0 {
		return nil, ErrNoData
	}

	raw := e.Data
	for depth := 0; depth < 2; depth++ {
		var pe pageEnvelope
		if err := json.Unmarshal(raw, &pe); err != nil {
			break
		}
		if pe.Meta != nil {
			var items []json.RawMessage
			if len(pe.Data) > 0 {
				if err := json.Unmarshal(pe.Data, &items); err != nil {
					return nil, err
				}
			}
			return &Page{Meta: *pe.Meta, Items: items}, nil
		}
		if len(pe.Data) == 0 {
			break
		}
		raw = pe.Data
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return &Page{
		Meta:  Meta{Page: 1, Limit: len(items), Total: len(items)},
		Items: items,
	}, nil
}

// Record decodes the envelope data as a single resource record into v.
func (e *Envelope) Record(v any) error {
	if len(e.Data) == 0 {
		return ErrNoData
	}
	return json.Unmarshal(e.Data, v)
}
