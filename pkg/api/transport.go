package api

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"github.com/thebartekbanach/pictech/pkg/signer"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/thebartekbanach/pictech/pkg/api"

type nowFunc func() time.Time

type transport struct {
	config Config
	client *resty.Client
	logger *log.Logger
	tracer trace.Tracer
	now    nowFunc
}

var _ Transport = (*transport)(nil)

// NewTransport wraps the shared client. The client is expected to carry the
// service base URL and is never modified here. Every call is recorded as a
// client span of tracerProvider.
func NewTransport(config Config, client *resty.Client, tracerProvider trace.TracerProvider, logger *log.Logger) Transport {
	return &transport{
		config: config,
		client: client,
		logger: logger.With("component", "api"),
		tracer: tracerProvider.Tracer(tracerName),
		now:    time.Now,
	}
}

func (t *transport) CallJSON(ctx context.Context, endpoint string, fields Fields) (Response, error) {
	ctx, span := t.startSpan(ctx, endpoint, "json")
	defer span.End()

	resp, err := t.newRequest(ctx, endpoint, fields).
		SetHeader("Accept", "application/json").
		Post(endpoint)
	if err != nil {
		return Response{}, t.fail(span, &TransportError{Endpoint: endpoint, Err: err})
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode()))
	if !resp.IsSuccess() {
		return Response{}, t.fail(span, &TransportError{
			Endpoint: endpoint,
			Status:   resp.StatusCode(),
			Body:     resp.String(),
		})
	}

	response, err := ParseResponse(resp.Body())
	if err != nil {
		return Response{}, t.fail(span, fmt.Errorf("%s: %w", endpoint, err))
	}

	span.SetAttributes(attribute.Int("pictech.response.code", response.Code))
	return response, nil
}

func (t *transport) CallBinary(ctx context.Context, endpoint string, fields Fields) ([]byte, error) {
	ctx, span := t.startSpan(ctx, endpoint, "binary")
	defer span.End()

	resp, err := t.newRequest(ctx, endpoint, fields).
		SetHeader("Accept", "*/*").
		Post(endpoint)
	if err != nil {
		return nil, t.fail(span, &TransportError{Endpoint: endpoint, Err: err})
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode()))
	if !resp.IsSuccess() {
		return nil, t.fail(span, &TransportError{
			Endpoint: endpoint,
			Status:   resp.StatusCode(),
			Body:     resp.String(),
		})
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, t.fail(span, fmt.Errorf("%s: %w", endpoint, ErrEmptyResponse))
	}

	return body, nil
}

func (t *transport) newRequest(ctx context.Context, endpoint string, fields Fields) *resty.Request {
	signed := t.sign(fields)
	t.logger.Debug("sending request", "endpoint", endpoint, "fields", fieldNames(signed))

	return t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string(signed))
}

// sign returns a signed copy of fields, the caller's map stays untouched.
func (t *transport) sign(fields Fields) Fields {
	signed := make(Fields, len(fields)+3)
	for key, value := range fields {
		signed[key] = value
	}

	delete(signed, SignatureField)
	signed[AccountIDField] = t.config.Credentials.AccountID
	signed[TimestampField] = strconv.FormatInt(t.now().Unix(), 10)

	signature := signer.Sign(signed, t.config.Credentials.SecretKey)
	signed[SignatureField] = signature

	return signed
}

func (t *transport) startSpan(ctx context.Context, endpoint, mode string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "pictech.api "+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("pictech.endpoint", endpoint),
			attribute.String("pictech.mode", mode),
		),
	)
}

func (t *transport) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	t.logger.Error("call failed", "err", err)
	return err
}

func fieldNames(fields Fields) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
