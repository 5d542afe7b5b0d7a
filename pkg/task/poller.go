package task

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sethvargo/go-retry"
	"github.com/thebartekbanach/pictech/pkg/api"
	"github.com/thebartekbanach/pictech/pkg/normalizer"
)

const requestIDField = "RequestId"

type poller struct {
	transport api.Transport
	policy    PollingPolicy
	logger    *log.Logger
}

var _ Poller = (*poller)(nil)

func NewPoller(transport api.Transport, policy PollingPolicy, logger *log.Logger) (Poller, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	return &poller{
		transport: transport,
		policy:    policy,
		logger:    logger.With("component", "task"),
	}, nil
}

func (p *poller) Submit(ctx context.Context, kind Kind, fields api.Fields) (Handle, error) {
	response, err := p.transport.CallJSON(ctx, kind.SubmitEndpoint, fields)
	if err != nil {
		return Handle{}, err
	}

	if !response.IsSuccess() {
		return Handle{}, &RemoteTaskError{
			Endpoint:  kind.SubmitEndpoint,
			RequestID: response.RequestID,
			Code:      response.Code,
			Message:   response.Message,
			ErrorCode: response.ErrorCode,
		}
	}

	if response.RequestID == "" {
		return Handle{}, &DataIntegrityError{Endpoint: kind.SubmitEndpoint, Field: requestIDField}
	}

	p.logger.Info("task submitted", "kind", kind.Name, "requestId", response.RequestID)
	return Handle{RequestID: response.RequestID}, nil
}

func (p *poller) Query(ctx context.Context, kind Kind, requestID string) (QueryResult, error) {
	if requestID == "" {
		return QueryResult{}, ErrRequestIDRequired
	}

	response, err := p.query(ctx, kind, requestID)
	if err != nil {
		return QueryResult{}, err
	}

	result := QueryResult{
		Code:      response.Code,
		Message:   response.Message,
		RequestID: response.RequestID,
		Data:      normalizer.Normalize(response.Data, kind.ResultFields()...),
	}

	if result.RequestID == "" {
		result.RequestID = requestID
	}

	return result, nil
}

func (p *poller) Run(ctx context.Context, kind Kind, fields api.Fields) (Result, error) {
	handle, err := p.Submit(ctx, kind, fields)
	if err != nil {
		p.logger.Error("task submission failed", "kind", kind.Name, "err", err)
		return Result{State: Failed}, err
	}

	return p.Poll(ctx, kind, handle)
}

func (p *poller) RunAndMaterialize(ctx context.Context, kind Kind, fields api.Fields, effect SideEffect) (Result, error) {
	result, err := p.Run(ctx, kind, fields)
	if err != nil {
		return result, err
	}

	if err := effect(ctx, result); err != nil {
		result.State = Failed
		ioErr := &LocalIOError{RequestID: result.RequestID, Err: err}
		p.logger.Error("materializing task result failed", "kind", kind.Name, "requestId", result.RequestID, "err", err)
		return result, ioErr
	}

	return result, nil
}

// Poll queries the task until it reaches a terminal state. Queries are strictly
// sequential and the wait between them yields to the scheduler.
func (p *poller) Poll(ctx context.Context, kind Kind, handle Handle) (Result, error) {
	result := Result{State: Polling, RequestID: handle.RequestID}
	if handle.RequestID == "" {
		result.State = Failed
		return result, ErrRequestIDRequired
	}

	backoff := retry.WithMaxRetries(
		uint64(p.policy.MaxAttempts-1),
		retry.NewConstant(p.policy.Interval),
	)

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		result.Attempts++
		return p.attempt(ctx, kind, &result)
	})

	switch {
	case err == nil:
		result.State = Succeeded
		p.logger.Info("task succeeded", "kind", kind.Name, "requestId", handle.RequestID, "attempts", result.Attempts)
		return result, nil

	case errors.Is(err, errStillPending):
		result.State = TimedOut
		timeoutErr := &TimeoutError{Endpoint: kind.QueryEndpoint, RequestID: handle.RequestID, Attempts: result.Attempts}
		p.logger.Error("task timed out", "kind", kind.Name, "requestId", handle.RequestID, "attempts", result.Attempts)
		return result, timeoutErr

	default:
		result.State = Failed
		p.logger.Error("task failed", "kind", kind.Name, "requestId", handle.RequestID, "attempts", result.Attempts, "err", err)
		return result, p.describe(err, handle, result.Attempts)
	}
}

func (p *poller) attempt(ctx context.Context, kind Kind, result *Result) error {
	response, err := p.query(ctx, kind, result.RequestID)
	if err != nil {
		return err
	}

	switch {
	case response.IsSuccess():
		data := normalizer.Normalize(response.Data, kind.ResultFields()...)
		for _, field := range kind.RequiredFields {
			if value, ok := data[field]; !ok || strings.TrimSpace(value) == "" {
				return &DataIntegrityError{
					Endpoint:  kind.QueryEndpoint,
					RequestID: result.RequestID,
					Attempt:   result.Attempts,
					Field:     field,
				}
			}
		}

		result.Data = data
		return nil

	case response.IsPending():
		if result.Attempts < p.policy.MaxAttempts {
			p.logger.Info("task still processing",
				"requestId", result.RequestID,
				"attempt", result.Attempts,
				"maxAttempts", p.policy.MaxAttempts,
				"retryIn", p.policy.Interval,
			)
		}
		return retry.RetryableError(errStillPending)

	default:
		return &RemoteTaskError{
			Endpoint:  kind.QueryEndpoint,
			RequestID: result.RequestID,
			Attempt:   result.Attempts,
			Code:      response.Code,
			Message:   response.Message,
			ErrorCode: response.ErrorCode,
		}
	}
}

func (p *poller) query(ctx context.Context, kind Kind, requestID string) (api.Response, error) {
	return p.transport.CallJSON(ctx, kind.QueryEndpoint, api.Fields{requestIDField: requestID})
}

// describe adds the task context to errors that do not carry it already.
func (p *poller) describe(err error, handle Handle, attempts int) error {
	var remoteErr *RemoteTaskError
	var integrityErr *DataIntegrityError
	if errors.As(err, &remoteErr) || errors.As(err, &integrityErr) {
		return err
	}

	return fmt.Errorf("polling task %s (attempt %d): %w", handle.RequestID, attempts, err)
}
