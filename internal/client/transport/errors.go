package transport

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/zheye/internal/common"
	"github.com/tidwall/gjson"
)

// ErrUnavailable wraps network-level failures (DNS, refused connection,
// timeouts): nothing structured came back from the server.
var ErrUnavailable = errors.New("server unavailable")

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Unauthorized reports whether the server rejected the credential. A 403 is
// a permission error for a valid session and does not count.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// Unwrap maps well-known statuses onto the shared sentinel errors so callers
// can use errors.Is(err, common.ErrorNotFound) and friends.
func (e *APIError) Unwrap() error {
	switch {
	case e.Unauthorized():
		return common.ErrorUnauthorized
	case e.StatusCode == http.StatusNotFound:
		return common.ErrorNotFound
	}
	return nil
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{StatusCode: status, Message: messageFromBody(body, status), Body: body}
}

// messageFromBody picks the human-readable message out of an error body:
// "error" first, then the envelope "msg", then the HTTP status text.
func messageFromBody(body []byte, status int) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"error", "msg", "message"} {
			if v := gjson.GetBytes(body, path); v.Exists() && v.String() != "" {
				return v.String()
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", status)
}

// Message returns the text to show a user for err: the server message of an
// *APIError, or the error text otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// IsUnauthorized reports whether err is an *APIError for a rejected credential.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}
