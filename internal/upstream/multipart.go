package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
)

// Style selects how scalar fields are laid out in a multipart body. The
// platform API uses both conventions depending on the resource.
type Style int

const (
	// StyleFlat writes each scalar as its own form field.
	StyleFlat Style = iota
	// StyleDataField writes all scalars JSON-encoded under a single "data"
	// field.
	StyleDataField
)

// File is one binary part of a multipart submission.
type File struct {
	// Field is the part name, e.g. "image" or "video".
	Field string
	// Name is the client-side filename.
	Name    string
	Content []byte
}

// Form is a multipart request body: scalar fields plus binary parts.
// JSON metadata and file parts share one multipart body; the request is
// never sent as application/json when files are present.
type Form struct {
	Style  Style
	Fields map[string]any
	Files  []File
}

func (f *Form) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	switch f.Style {
	case StyleDataField:
		payload, err := json.Marshal(f.Fields)
		if err != nil {
			return nil, "", err
		}
		if err := w.WriteField("data", string(payload)); err != nil {
			return nil, "", err
		}
	default:
		for key, val := range f.Fields {
			if err := w.WriteField(key, flatValue(val)); err != nil {
				return nil, "", err
			}
		}
	}

	for _, file := range f.Files {
		part, err := w.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func flatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		// Nested values (arrays, objects) travel JSON-encoded, matching how
		// the dashboard serialized creator social links.
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
