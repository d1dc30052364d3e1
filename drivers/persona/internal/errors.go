package driver

import (
	"fmt"

	"github.com/datazip-inc/tap-persona/constants"
)

type ErrorClass string

const (
	// invalid or expired credential; the run aborts
	ErrorClassAuth ErrorClass = "auth"
	// the identical request should be retried after backing off
	ErrorClassRateLimit ErrorClass = "rate_limit"
	// network or 5xx failure, retried with backoff
	ErrorClassTransient ErrorClass = "transient"
	// response cannot be trusted for pagination or cursor state
	ErrorClassMalformed ErrorClass = "malformed_response"
	// any other 4xx; the request itself is wrong, retrying cannot help
	ErrorClassClient ErrorClass = "client"
)

// APIError carries the classification of a failed Persona API call.
type APIError struct {
	StatusCode int
	Class      ErrorClass
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("persona %s error (status %d): %s", e.Class, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("persona %s error: %s", e.Class, e.Message)
}

// Unwrap exposes constants.ErrNonRetryable for fatal classes so the
// retry wrapper aborts instead of re-issuing a doomed request.
func (e *APIError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}

	switch e.Class {
	case ErrorClassAuth, ErrorClassMalformed, ErrorClassClient:
		return constants.ErrNonRetryable
	default:
		return nil
	}
}

func classifyStatus(statusCode int) ErrorClass {
	switch {
	case statusCode == 401 || statusCode == 403:
		return ErrorClassAuth
	case statusCode == 429:
		return ErrorClassRateLimit
	case statusCode >= 500:
		return ErrorClassTransient
	default:
		return ErrorClassClient
	}
}
