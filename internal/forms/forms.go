// Package forms validates form drafts before they are submitted upstream.
// Validation is synchronous and pure: structural checks are JSON-Schema
// driven, cross-field rules are whole-draft refinements attached to a
// specific field so the error renders next to the relevant input.
package forms

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Errors struct {
	Errors []Error `json:"errors"`
}

func (e *Errors) Error() string {
	var msgs []string
	for _, err := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(msgs, "; ")
}

// ByField maps each error to its input field, one message per field.
func (e *Errors) ByField() map[string]string {
	out := make(map[string]string, len(e.Errors))
	for _, err := range e.Errors {
		if _, ok := out[err.Field]; !ok {
			out[err.Field] = err.Message
		}
	}
	return out
}

// Refinement is a whole-draft rule. It returns the field to attach the
// error to and a message, or an empty field when the draft passes. Rules
// guard themselves against missing inputs so structural errors stay the
// structural validator's job.
type Refinement func(draft map[string]any) (field, message string)

type Form struct {
	schema      map[string]any
	refinements []Refinement
}

func New(schema map[string]any, refinements ...Refinement) *Form {
	return &Form{schema: schema, refinements: refinements}
}

// Validate checks draft against the form's schema and refinements.
// It returns nil when the draft is valid and *Errors otherwise.
func (f *Form) Validate(draft map[string]any) error {
	var errs []Error

	if len(f.schema) > 0 {
		schemaJSON, err := json.Marshal(f.schema)
		if err != nil {
			return err
		}
		draftJSON, err := json.Marshal(draft)
		if err != nil {
			return err
		}

		result, err := gojsonschema.Validate(
			gojsonschema.NewBytesLoader(schemaJSON),
			gojsonschema.NewBytesLoader(draftJSON),
		)
		if err != nil {
			return err
		}

		for _, desc := range result.Errors() {
			errs = append(errs, Error{
				Field:   errorField(desc),
				Message: desc.Description(),
			})
		}
	}

	for _, refine := range f.refinements {
		if field, message := refine(draft); field != "" {
			errs = append(errs, Error{Field: field, Message: message})
		}
	}

	if len(errs) > 0 {
		return &Errors{Errors: errs}
	}
	return nil
}

// errorField resolves the input field an error belongs to. Required-property
// violations report "(root)" as their field, so the missing property name is
// taken from the error details instead.
func errorField(desc gojsonschema.ResultError) string {
	if desc.Type() == "required" {
		if prop, ok := desc.Details()["property"].(string); ok {
			return prop
		}
	}
	return desc.Field()
}

func IsValidationError(err error) bool {
	var ve *Errors
	return errors.As(err, &ve)
}

func GetValidationErrors(err error) *Errors {
	var ve *Errors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
