package api

import (
	"errors"
	"fmt"
)

// TransportError reports a failed network call or a non-2xx response.
// Status is zero when no response was received.
type TransportError struct {
	Endpoint string
	Status   int
	Body     string
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("call to %s failed: %v", e.Endpoint, e.Err)
	}

	return fmt.Sprintf("call to %s failed with status %d: %s", e.Endpoint, e.Status, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

var (
	ErrEmptyResponse     = errors.New("response body is empty")
	ErrMalformedResponse = errors.New("response body is not a JSON object")
)
