package task

import (
	"context"
	"errors"
	"time"

	"github.com/thebartekbanach/pictech/pkg/api"
)

type State int

const (
	Submitted State = iota
	Polling
	Succeeded
	Failed
	TimedOut
)

func (s State) String() string {
	switch s {
	case Submitted:
		return "submitted"
	case Polling:
		return "polling"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case TimedOut:
		return "timed-out"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s State) IsTerminal() bool {
	return s == Succeeded || s == Failed || s == TimedOut
}

// Handle correlates queries with the task created by a submit call.
type Handle struct {
	RequestID string `json:"requestId"`
}

type PollingPolicy struct {
	MaxAttempts int
	Interval    time.Duration
}

func DefaultPollingPolicy() PollingPolicy {
	return PollingPolicy{
		MaxAttempts: 15,
		Interval:    1500 * time.Millisecond,
	}
}

func (p PollingPolicy) Validate() error {
	if p.MaxAttempts < 1 || p.Interval <= 0 {
		return ErrInvalidPollingPolicy
	}

	return nil
}

// Result is the terminal outcome of a flow. Data holds only the fields that
// resolved to a value.
type Result struct {
	State     State             `json:"state"`
	RequestID string            `json:"requestId"`
	Attempts  int               `json:"attempts"`
	Data      map[string]string `json:"data,omitempty"`
}

type QueryResult struct {
	Code      int               `json:"code"`
	Message   string            `json:"message"`
	RequestID string            `json:"requestId"`
	Data      map[string]string `json:"data"`
}

// SideEffect materializes a succeeded result, e.g. by persisting its output asset.
type SideEffect func(ctx context.Context, result Result) error

type Poller interface {
	Submit(ctx context.Context, kind Kind, fields api.Fields) (Handle, error)
	Query(ctx context.Context, kind Kind, requestID string) (QueryResult, error)
	Poll(ctx context.Context, kind Kind, handle Handle) (Result, error)
	Run(ctx context.Context, kind Kind, fields api.Fields) (Result, error)
	RunAndMaterialize(ctx context.Context, kind Kind, fields api.Fields, effect SideEffect) (Result, error)
}

var (
	ErrInvalidPollingPolicy = errors.New("polling policy needs at least one attempt and a positive interval")
	ErrRequestIDRequired    = errors.New("request id is required")
)
