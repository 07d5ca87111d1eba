package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client issues authenticated JSON and multipart requests against the
// platform REST API. It performs no retries; callers re-issue on user
// action.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Options describes one request. At most one of JSON and Form may be set.
type Options struct {
	// Query parameters; empty values are omitted from the URL rather than
	// sent as empty strings, which would over-filter on the server.
	Query url.Values
	// JSON body, marshalled with Content-Type: application/json.
	JSON any
	// Form is a multipart body (scalar fields plus binary parts).
	Form *Form
	// Token, when non-empty, is attached as "Authorization: Bearer <token>".
	// The header is omitted entirely otherwise; some read endpoints are
	// public.
	Token string
}

// Do performs the request and decodes the response envelope. Non-2xx
// responses come back as *RequestFailed, transport failures as
// *NetworkError.
func (c *Client) Do(ctx context.Context, method, path string, opts Options) (*Envelope, error) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if q := encodeQuery(opts.Query); q != "" {
		u += "?" + q
	}

	var body io.Reader
	contentType := ""
	switch {
	case opts.Form != nil:
		buf, ct, err := opts.Form.encode()
		if err != nil {
			return nil, err
		}
		body = buf
		contentType = ct
	case opts.JSON != nil:
		data, err := json.Marshal(opts.JSON)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestFailed{
			Status:  resp.StatusCode,
			Message: failureMessage(raw, resp.StatusCode),
		}
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decoding upstream response: %w", err)
	}
	return &env, nil
}

func encodeQuery(q url.Values) string {
	if len(q) == 0 {
		return ""
	}
	filtered := url.Values{}
	for key, vals := range q {
		for _, v := range vals {
			if v != "" {
				filtered.Add(key, v)
			}
		}
	}
	return filtered.Encode()
}

func failureMessage(body []byte, status int) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return fmt.Sprintf("request failed with status %d", status)
}
