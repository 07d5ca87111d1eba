package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wanderlink/admin-gateway/internal/forms"
	"github.com/wanderlink/admin-gateway/internal/resources"
	"github.com/wanderlink/admin-gateway/internal/upstream"
)

// maxUploadMemory bounds in-memory multipart parsing; larger parts spill
// to temp files.
const maxUploadMemory = 32 << 20

// respondError maps the error taxonomy onto HTTP responses: field-scoped
// validation errors stay structured for inline rendering, upstream
// failures carry the server message through, transport failures collapse
// to a generic 502.
func respondError(c *gin.Context, err error) {
	var ve *forms.Errors
	if errors.As(err, &ve) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": ve})
		return
	}

	var rf *upstream.RequestFailed
	if errors.As(err, &rf) {
		c.JSON(rf.Status, gin.H{"error": rf.Message})
		return
	}

	var ne *upstream.NetworkError
	if errors.As(err, &ne) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream unavailable"})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// parseDraft reads a mutation body as a form draft plus file parts. JSON
// bodies are the draft object itself; multipart bodies carry either a
// JSON-encoded "data" field or flat fields, plus the binary parts named by
// the resource definition.
func parseDraft(c *gin.Context, def *resources.Definition) (map[string]any, []upstream.File, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		var draft map[string]any
		if err := c.ShouldBindJSON(&draft); err != nil {
			return nil, nil, err
		}
		return draft, nil, nil
	}

	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, nil, err
	}
	form := c.Request.MultipartForm

	draft := map[string]any{}
	if data, ok := form.Value["data"]; ok && len(data) > 0 {
		if err := json.Unmarshal([]byte(data[0]), &draft); err != nil {
			return nil, nil, err
		}
	} else {
		for key, vals := range form.Value {
			if len(vals) == 0 {
				continue
			}
			draft[key] = flatDraftValue(vals[0])
		}
	}

	var files []upstream.File
	for _, part := range def.FileParts {
		for _, fh := range form.File[part] {
			f, err := fh.Open()
			if err != nil {
				return nil, nil, err
			}
			content, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, nil, err
			}
			files = append(files, upstream.File{Field: part, Name: fh.Filename, Content: content})
		}
	}
	return draft, files, nil
}

// flatDraftValue recovers structure from flat fields: values the dashboard
// JSON-encodes (social links, interests) decode back into arrays/objects,
// everything else stays a string.
func flatDraftValue(v string) any {
	trimmed := strings.TrimSpace(v)
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		var decoded any
		if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
			return decoded
		}
	}
	return v
}
