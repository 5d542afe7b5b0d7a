package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/franela/goblin"
	"github.com/phayes/freeport"
	"github.com/thebartekbanach/pictech/pkg/logger"
	"github.com/thebartekbanach/pictech/pkg/signer"
	testutils "github.com/thebartekbanach/pictech/test/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var testingCredentials = Credentials{AccountID: "account-1", SecretKey: "secret-1"}

type recordedRequest struct {
	header http.Header
	fields map[string]string
}

type recordingHandler struct {
	lock     sync.Mutex
	requests []recordedRequest

	status      int
	contentType string
	body        []byte
}

func (h *recordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := map[string]string{}
	json.NewDecoder(r.Body).Decode(&fields)

	h.lock.Lock()
	h.requests = append(h.requests, recordedRequest{r.Header.Clone(), fields})
	h.lock.Unlock()

	if h.contentType != "" {
		w.Header().Set("Content-Type", h.contentType)
	}
	w.WriteHeader(h.status)
	w.Write(h.body)
}

func (h *recordingHandler) lastRequest() recordedRequest {
	h.lock.Lock()
	defer h.lock.Unlock()

	return h.requests[len(h.requests)-1]
}

func (h *recordingHandler) requestsCount() int {
	h.lock.Lock()
	defer h.lock.Unlock()

	return len(h.requests)
}

func startTestingServer(t *testing.T, endpoint string, handler http.Handler) string {
	server := testutils.NewTestHttpServer()
	server.Handle(endpoint, handler)
	return server.StartURL(t)
}

func newTestingTransport(baseURL string, now nowFunc) *transport {
	return &transport{
		config: Config{Credentials: testingCredentials},
		client: NewHTTPClient(baseURL, 5*time.Second),
		logger: logger.Discard(),
		tracer: noop.NewTracerProvider().Tracer(tracerName),
		now:    now,
	}
}

// traceWith records spans of target in memory.
func traceWith(target *transport) *tracetest.SpanRecorder {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	target.tracer = provider.Tracer(tracerName)
	return recorder
}

func spanAttribute(span sdktrace.ReadOnlySpan, key attribute.Key) string {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value.Emit()
		}
	}

	return ""
}

func fixedNow(unix int64) nowFunc {
	return func() time.Time { return time.Unix(unix, 0) }
}

func TestTransport(t *testing.T) {
	g := goblin.Goblin(t)

	g.Describe("Transport", func() {
		g.Describe("CallJSON", func() {
			g.It("Should inject account, timestamp and a signature over all other fields", func() {
				handler := &recordingHandler{status: 200, body: []byte(`{"Code":200,"RequestId":"r-1"}`)}
				url := startTestingServer(t, "/submit_task", handler)
				transport := newTestingTransport(url, fixedNow(1700000000))

				fields := Fields{"ImageUrl": "http://img/a.png", "SourceLanguage": "zh", "TargetLanguage": "en"}
				_, err := transport.CallJSON(context.Background(), "/submit_task", fields)
				g.Assert(err).IsNil()

				sent := handler.lastRequest().fields
				g.Assert(sent[AccountIDField]).Equal("account-1")
				g.Assert(sent[TimestampField]).Equal("1700000000")
				g.Assert(sent["ImageUrl"]).Equal("http://img/a.png")

				unsigned := map[string]string{}
				for key, value := range sent {
					if key != SignatureField {
						unsigned[key] = value
					}
				}
				g.Assert(sent[SignatureField]).Equal(signer.Sign(unsigned, "secret-1"))
			})

			g.It("Should not modify fields passed by the caller", func() {
				handler := &recordingHandler{status: 200, body: []byte(`{"Code":200}`)}
				url := startTestingServer(t, "/query_result", handler)
				transport := newTestingTransport(url, fixedNow(1700000000))

				fields := Fields{"RequestId": "r-1"}
				transport.CallJSON(context.Background(), "/query_result", fields)

				g.Assert(fields).Equal(Fields{"RequestId": "r-1"})
			})

			g.It("Should recompute timestamp for every call", func() {
				handler := &recordingHandler{status: 200, body: []byte(`{"Code":202}`)}
				url := startTestingServer(t, "/query_result", handler)

				current := int64(1700000000)
				transport := newTestingTransport(url, func() time.Time {
					current++
					return time.Unix(current, 0)
				})

				transport.CallJSON(context.Background(), "/query_result", Fields{"RequestId": "r-1"})
				first := handler.lastRequest().fields
				transport.CallJSON(context.Background(), "/query_result", Fields{"RequestId": "r-1"})
				second := handler.lastRequest().fields

				g.Assert(first[TimestampField] != second[TimestampField]).IsTrue()
				g.Assert(first[SignatureField] != second[SignatureField]).IsTrue()
			})

			g.It("Should decode response envelope", func() {
				handler := &recordingHandler{
					status: 200,
					body:   []byte(`{"Code":202,"Message":"processing","RequestId":"r-9","Data":{"OutputUrl":[]}}`),
				}
				url := startTestingServer(t, "/query_remove_background_result", handler)
				transport := newTestingTransport(url, time.Now)

				response, err := transport.CallJSON(context.Background(), "/query_remove_background_result", Fields{"RequestId": "r-9"})

				g.Assert(err).IsNil()
				g.Assert(response.Code).Equal(202)
				g.Assert(response.IsPending()).IsTrue()
				g.Assert(response.Message).Equal("processing")
				g.Assert(response.RequestID).Equal("r-9")
				g.Assert(response.Data.IsObject()).IsTrue()
			})

			g.It("Should return transport error with status and body on non-2xx response", func() {
				handler := &recordingHandler{status: 403, body: []byte("signature mismatch")}
				url := startTestingServer(t, "/submit_task", handler)
				transport := newTestingTransport(url, time.Now)

				_, err := transport.CallJSON(context.Background(), "/submit_task", Fields{})

				var transportErr *TransportError
				g.Assert(errors.As(err, &transportErr)).IsTrue()
				g.Assert(transportErr.Status).Equal(403)
				g.Assert(transportErr.Body).Equal("signature mismatch")
				g.Assert(transportErr.Endpoint).Equal("/submit_task")
			})

			g.It("Should send exactly one request even when server fails", func() {
				handler := &recordingHandler{status: 503, body: []byte("unavailable")}
				url := startTestingServer(t, "/submit_task", handler)
				transport := newTestingTransport(url, time.Now)

				transport.CallJSON(context.Background(), "/submit_task", Fields{})

				g.Assert(handler.requestsCount()).Equal(1)
			})

			g.It("Should return malformed response error when body is not a JSON object", func() {
				handler := &recordingHandler{status: 200, body: []byte(`<html></html>`)}
				url := startTestingServer(t, "/submit_task", handler)
				transport := newTestingTransport(url, time.Now)

				_, err := transport.CallJSON(context.Background(), "/submit_task", Fields{})

				g.Assert(errors.Is(err, ErrMalformedResponse)).IsTrue()
			})

			g.It("Should return transport error without status when server is unreachable", func() {
				port, err := freeport.GetFreePort()
				if err != nil {
					g.Fail(err)
				}
				transport := newTestingTransport(fmt.Sprintf("http://127.0.0.1:%d", port), time.Now)

				_, err = transport.CallJSON(context.Background(), "/submit_task", Fields{})

				var transportErr *TransportError
				g.Assert(errors.As(err, &transportErr)).IsTrue()
				g.Assert(transportErr.Status).Equal(0)
				g.Assert(transportErr.Err).IsNotNil()
			})
		})

		g.Describe("CallBinary", func() {
			g.It("Should accept any content type and never ask for 100-continue", func() {
				image := []byte{0x89, 0x50, 0x4e, 0x47}
				handler := &recordingHandler{status: 200, contentType: "image/png", body: image}
				url := startTestingServer(t, "/inpaint_image_sync", handler)
				transport := newTestingTransport(url, time.Now)
				transport.client.SetHeader("Expect", "100-continue")

				data, err := transport.CallBinary(context.Background(), "/inpaint_image_sync", Fields{"image": "aW1n", "mask": "bWFzaw=="})

				g.Assert(err).IsNil()
				g.Assert(data).Equal(image)

				request := handler.lastRequest()
				g.Assert(request.header.Get("Accept")).Equal("*/*")
				g.Assert(request.header.Get("Expect")).Equal("")
				g.Assert(request.fields["image"]).Equal("aW1n")
				g.Assert(request.fields[SignatureField] != "").IsTrue()
			})

			g.It("Should return empty response error when 2xx body is empty", func() {
				handler := &recordingHandler{status: 200}
				url := startTestingServer(t, "/inpaint_image_sync", handler)
				transport := newTestingTransport(url, time.Now)

				_, err := transport.CallBinary(context.Background(), "/inpaint_image_sync", Fields{})

				g.Assert(errors.Is(err, ErrEmptyResponse)).IsTrue()
			})

			g.It("Should include response body text in error on non-2xx response", func() {
				handler := &recordingHandler{status: 400, body: []byte(`{"detail":"mask size mismatch"}`)}
				url := startTestingServer(t, "/inpaint_image_sync", handler)
				transport := newTestingTransport(url, time.Now)

				_, err := transport.CallBinary(context.Background(), "/inpaint_image_sync", Fields{})

				var transportErr *TransportError
				g.Assert(errors.As(err, &transportErr)).IsTrue()
				g.Assert(transportErr.Status).Equal(400)
				g.Assert(transportErr.Body).Equal(`{"detail":"mask size mismatch"}`)
			})
		})

		g.Describe("Tracing", func() {
			g.It("Should record client span of successful call", func() {
				handler := &recordingHandler{status: 200, body: []byte(`{"Code":200,"RequestId":"r-1"}`)}
				url := startTestingServer(t, "/submit_task", handler)
				transport := newTestingTransport(url, time.Now)
				recorder := traceWith(transport)

				_, err := transport.CallJSON(context.Background(), "/submit_task", Fields{})
				g.Assert(err).IsNil()

				spans := recorder.Ended()
				g.Assert(len(spans)).Equal(1)
				g.Assert(spans[0].Name()).Equal("pictech.api /submit_task")
				g.Assert(spans[0].SpanKind()).Equal(trace.SpanKindClient)
				g.Assert(spanAttribute(spans[0], "pictech.endpoint")).Equal("/submit_task")
				g.Assert(spanAttribute(spans[0], "pictech.mode")).Equal("json")
				g.Assert(spanAttribute(spans[0], "pictech.response.code")).Equal("200")
				g.Assert(spans[0].Status().Code).Equal(codes.Unset)
			})

			g.It("Should mark span as failed on non 2xx status", func() {
				handler := &recordingHandler{status: 403, body: []byte(`forbidden`)}
				url := startTestingServer(t, "/inpaint_image_sync", handler)
				transport := newTestingTransport(url, time.Now)
				recorder := traceWith(transport)

				_, err := transport.CallBinary(context.Background(), "/inpaint_image_sync", Fields{})
				g.Assert(err).IsNotNil()

				spans := recorder.Ended()
				g.Assert(len(spans)).Equal(1)
				g.Assert(spans[0].Name()).Equal("pictech.api /inpaint_image_sync")
				g.Assert(spanAttribute(spans[0], "pictech.endpoint")).Equal("/inpaint_image_sync")
				g.Assert(spanAttribute(spans[0], "pictech.mode")).Equal("binary")
				g.Assert(spanAttribute(spans[0], "http.response.status_code")).Equal("403")
				g.Assert(spans[0].Status().Code).Equal(codes.Error)
				g.Assert(spans[0].Status().Description).Equal(err.Error())
				g.Assert(len(spans[0].Events())).Equal(1)
			})

			g.It("Should take tracer from given provider", func() {
				handler := &recordingHandler{status: 200, body: []byte(`{"Code":200}`)}
				url := startTestingServer(t, "/query_task", handler)
				recorder := tracetest.NewSpanRecorder()
				provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

				transport := NewTransport(Config{Credentials: testingCredentials}, NewHTTPClient(url, 5*time.Second), provider, logger.Discard())
				_, err := transport.CallJSON(context.Background(), "/query_task", Fields{})

				g.Assert(err).IsNil()
				g.Assert(len(recorder.Ended())).Equal(1)
			})
		})
	})
}

func TestParseResponse(t *testing.T) {
	g := goblin.Goblin(t)

	g.Describe("ParseResponse", func() {
		g.It("Should report missing code as -1", func() {
			response, err := ParseResponse([]byte(`{"Message":"no code"}`))

			g.Assert(err).IsNil()
			g.Assert(response.Code).Equal(-1)
			g.Assert(response.IsSuccess()).IsFalse()
		})

		g.It("Should keep error code as text", func() {
			response, _ := ParseResponse([]byte(`{"Code":500,"Message":"boom","ErrorCode":7}`))

			g.Assert(response.ErrorCode).Equal("7")
			g.Assert(response.Message).Equal("boom")
		})

		g.It("Should reject arrays and invalid JSON", func() {
			_, err := ParseResponse([]byte(`[1,2]`))
			g.Assert(err).Equal(ErrMalformedResponse)

			_, err = ParseResponse([]byte(`{"Code":`))
			g.Assert(err).Equal(ErrMalformedResponse)
		})
	})
}
