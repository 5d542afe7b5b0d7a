package task

import (
	"errors"
	"fmt"
)

// RemoteTaskError is a terminal application code reported by the remote service.
type RemoteTaskError struct {
	Endpoint  string
	RequestID string
	Attempt   int
	Code      int
	Message   string
	ErrorCode string
}

func (e *RemoteTaskError) Error() string {
	return fmt.Sprintf(
		"task %s failed at %s (attempt %d): code %d: %s, ErrorCode: %s",
		e.RequestID, e.Endpoint, e.Attempt, e.Code, e.Message, e.ErrorCode,
	)
}

// DataIntegrityError means the remote service reported success without the
// payload the task kind requires.
type DataIntegrityError struct {
	Endpoint  string
	RequestID string
	Attempt   int
	Field     string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf(
		"task %s reported success at %s (attempt %d) without a usable %s field",
		e.RequestID, e.Endpoint, e.Attempt, e.Field,
	)
}

type TimeoutError struct {
	Endpoint  string
	RequestID string
	Attempts  int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("task %s still pending at %s after %d attempts", e.RequestID, e.Endpoint, e.Attempts)
}

// LocalIOError wraps a failure of the post-success side effect.
type LocalIOError struct {
	RequestID string
	Err       error
}

func (e *LocalIOError) Error() string {
	return fmt.Sprintf("task %s succeeded but its result could not be materialized: %v", e.RequestID, e.Err)
}

func (e *LocalIOError) Unwrap() error {
	return e.Err
}

var errStillPending = errors.New("task still pending")
