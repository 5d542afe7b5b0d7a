package api

import "github.com/tidwall/gjson"

const (
	CodeSuccess = 200
	CodePending = 202

	// codeMissing is reported when the envelope carries no Code at all.
	codeMissing = -1
)

func ParseResponse(body []byte) (Response, error) {
	if !gjson.ValidBytes(body) {
		return Response{}, ErrMalformedResponse
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return Response{}, ErrMalformedResponse
	}

	code := codeMissing
	if value := parsed.Get("Code"); value.Exists() {
		code = int(value.Int())
	}

	return Response{
		Code:      code,
		Message:   parsed.Get("Message").String(),
		RequestID: parsed.Get("RequestId").String(),
		ErrorCode: parsed.Get("ErrorCode").String(),
		Data:      parsed.Get("Data"),
		Raw:       body,
	}, nil
}

func (r Response) IsSuccess() bool {
	return r.Code == CodeSuccess
}

func (r Response) IsPending() bool {
	return r.Code == CodePending
}
