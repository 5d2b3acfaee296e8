package llm

import (
	"errors"
	"fmt"
)

// BackendError op kinds. They distinguish transport failures from a reachable
// backend returning something unusable.
const (
	OpRequest = "request" // network / transport failure
	OpStatus  = "status"  // non-2xx HTTP status
	OpDecode  = "decode"  // malformed response body
	OpEmpty   = "empty"   // response missing the expected text field
)

// BackendError is any failure talking to the generative-text backend.
type BackendError struct {
	Op    string
	Cause error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("llm backend %s error: %v", e.Op, e.Cause)
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

// IsBackendError reports whether err is (or wraps) a *BackendError.
func IsBackendError(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}
