package restapi

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// APIError carries the backend's error message verbatim so it can be shown
// to the user as-is.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed (%d %s)", e.StatusCode, http.StatusText(e.StatusCode))
}

// AsAPIError unwraps err down to an *APIError if there is one.
func AsAPIError(err error) (*APIError, bool) {
	aErr, ok := errors.Cause(err).(*APIError)
	return aErr, ok
}

// IsNotFound reports whether err is a backend 404; edits can race a delete
// from another session.
func IsNotFound(err error) bool {
	aErr, ok := AsAPIError(err)
	return ok && aErr.StatusCode == http.StatusNotFound
}

// apiErrorBody matches the backend's error envelope; some endpoints use
// "error", older ones "message".
type apiErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
