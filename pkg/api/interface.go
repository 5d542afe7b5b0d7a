package api

import (
	"context"

	"github.com/tidwall/gjson"
)

const (
	AccountIDField = "AccountId"
	TimestampField = "Timestamp"
	SignatureField = "Signature"
)

type Credentials struct {
	AccountID string
	SecretKey string
}

type Config struct {
	Credentials Credentials
}

// Fields is the signable payload of a single call.
type Fields map[string]string

// Response is the JSON envelope every non-binary endpoint answers with.
type Response struct {
	Code      int
	Message   string
	RequestID string
	ErrorCode string
	Data      gjson.Result
	Raw       []byte
}

// Transport executes exactly one signed call per invocation. Implementations
// are safe for concurrent use.
type Transport interface {
	CallJSON(ctx context.Context, endpoint string, fields Fields) (Response, error)
	CallBinary(ctx context.Context, endpoint string, fields Fields) ([]byte, error)
}
