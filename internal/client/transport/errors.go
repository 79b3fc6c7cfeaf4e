package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the status classes the rest of the client reacts to.
// A *RemoteError matches these through errors.Is, so callers never inspect
// raw status codes.
var (
	// ErrUnauthenticated: the server saw no usable credential (401).
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden: credential present but rejected, identity mismatch or
	// expired token (403).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound: the addressed entity does not exist (404).
	ErrNotFound = errors.New("not found")
)

// RemoteError is a request the server rejected with a non-success status.
// Body holds the raw JSON error payload, typically {"error": "..."}.
type RemoteError struct {
	Status int
	Body   json.RawMessage
}

func (e *RemoteError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("server rejected request: %d: %s", e.Status, msg)
	}
	return fmt.Sprintf("server rejected request: %d", e.Status)
}

// Message extracts the human-readable error from the response body, if any.
func (e *RemoteError) Message() string {
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(e.Body, &payload) != nil {
		return ""
	}
	return payload.Error
}

// Is maps status codes onto the sentinel errors above.
func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrUnauthenticated:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// MalformedResponseError is a non-success response whose body could not be
// parsed as JSON. Success responses with unparsable bodies are tolerated
// instead (not every endpoint returns a body).
type MalformedResponseError struct {
	Status int
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: status %d", e.Status)
}
