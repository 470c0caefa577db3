package eventsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorKind classifies an API failure so the presentation layer can pick
// the right surface for it without matching on message strings.
type ErrorKind int

const (
	// KindTransport covers network failures, malformed responses, and
	// 5xx statuses. The action may be retried manually.
	KindTransport ErrorKind = iota
	// KindValidation is a rejected request body (400).
	KindValidation
	// KindPermissionDenied is 401/403: not signed in, or not allowed.
	KindPermissionDenied
	// KindNotFound is a stale or deleted entity (404). Callers should
	// refetch the list the entity came from.
	KindNotFound
	// KindConflict is a business-rule rejection (409): already a member,
	// at capacity, main admin removal. Message is user-displayable.
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindPermissionDenied:
		return "permission_denied"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "transport"
	}
}

// APIError is a failed API call. Message comes verbatim from the server's
// envelope when present, so conflicts read the way the server phrased them.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, http.StatusText(e.Status))
}

// kindForStatus maps an HTTP status to an ErrorKind.
func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusBadRequest:
		return KindValidation
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindPermissionDenied
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	default:
		return KindTransport
	}
}

// parseAPIError builds an APIError from a non-success response body. The
// envelope's message is used when it parses; otherwise the status text
// stands in.
func parseAPIError(status int, body []byte) *APIError {
	var env envelope
	msg := ""
	if err := json.Unmarshal(body, &env); err == nil {
		msg = env.Message
	}
	return &APIError{
		Kind:    kindForStatus(status),
		Status:  status,
		Message: msg,
	}
}
