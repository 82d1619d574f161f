package remote

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("backend request timed out")

	// ErrStatus indicates the backend answered with a non-2xx status.
	ErrStatus = errors.New("backend returned error status")

	// ErrRetryExhausted indicates all attempts failed for another reason.
	ErrRetryExhausted = errors.New("backend retry attempts exhausted")
)

// StatusError carries the status code and body of a rejected request.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return ErrStatus.Error() + ": " + httpStatusText(e.Code)
	}
	return ErrStatus.Error() + ": " + httpStatusText(e.Code) + ": " + e.Body
}

func (e *StatusError) Is(target error) bool { return target == ErrStatus }

func httpStatusText(code int) string {
	return fmt.Sprintf("%d %s", code, http.StatusText(code))
}
