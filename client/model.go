package client

import (
	"errors"
	"fmt"
	"net/http"
)

// maxErrBodySize caps the amount of response body read when
// building an error for a status code outside the success range.
// This prevents unbounded memory usage when a large response
// arrives with a failure status.
const maxErrBodySize = 4 << 10 // 4KB

// execFn represents a func to operate on a response.
type execFn func(response *http.Response) error

var (
	// ErrUnexpectedStatusCode is the sentinel error wrapped by [UnexpectedStatusError].
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	// ErrAuthFailure is joined with [ErrUnexpectedStatusCode] when the server
	// responds with 401 Unauthorized or 403 Forbidden.
	ErrAuthFailure = errors.New("auth failure")
)

// UnexpectedStatusError is returned when a response is received
// with a status code outside 200-299.
//
// Body holds the raw (capped) response body. Value holds the body
// decoded as JSON, or nil when the body is empty or not valid JSON.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
	Value      any
	Err        error
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%v: %d, body: %s", e.Err, e.StatusCode, e.Body)
}

func (e *UnexpectedStatusError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the status code from an [UnexpectedStatusError]
// anywhere in err's chain. ok is false for transport failures.
func StatusCode(err error) (code int, ok bool) {
	var se *UnexpectedStatusError
	if !errors.As(err, &se) {
		return 0, false
	}

	return se.StatusCode, true
}

// IsSuccess reports whether code lies in the inclusive 200-299 range.
func IsSuccess(code int) bool {
	return code >= http.StatusOK && code <= 299
}
