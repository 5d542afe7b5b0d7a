package api

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// NewHTTPClient creates the connection pool shared by every component that
// talks to the network. The returned client is safe for concurrent use and
// never retries on its own.
func NewHTTPClient(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetPreRequestHook(dropExpectContinue)
}

// dropExpectContinue runs on the outgoing request after client headers were
// merged in, so a client wide Expect is removed as well. net/http waits for
// 100-continue only when this header is present.
func dropExpectContinue(_ *resty.Client, request *http.Request) error {
	request.Header.Del("Expect")
	return nil
}
