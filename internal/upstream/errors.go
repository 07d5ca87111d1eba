package upstream

import "fmt"

// RequestFailed is returned for any non-2xx response from the platform API.
// Message carries the server-provided "message" field when the body could be
// parsed, and a generic fallback otherwise.
type RequestFailed struct {
	Status  int
	Message string
}

func (e *RequestFailed) Error() string {
	return fmt.Sprintf("upstream request failed (%d): %s", e.Status, e.Message)
}

// NetworkError is returned when the request never produced an HTTP response
// (DNS failure, connection refused, timeout).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("upstream unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
