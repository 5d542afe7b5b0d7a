package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-resty/resty/v2"
)

type httpGetFunc func(ctx context.Context, url string) (resp *http.Response, err error)

// DefaultMaxAssetSize bounds a single download when no limit is configured.
const DefaultMaxAssetSize int64 = 50 << 20

type FetcherConfig struct {
	MaxAssetSize int64
}

type httpFetcher struct {
	getter  httpGetFunc
	maxSize int64
}

var _ Fetcher = (*httpFetcher)(nil)

// NewHTTPFetcher downloads assets through the shared client. Absolute URLs
// bypass the client's base URL.
func NewHTTPFetcher(config FetcherConfig, client *resty.Client) Fetcher {
	getFunc := func(ctx context.Context, url string) (*http.Response, error) {
		resp, err := client.R().
			SetContext(ctx).
			SetDoNotParseResponse(true).
			Get(url)
		if err != nil {
			if resp != nil && resp.RawResponse != nil {
				resp.RawResponse.Body.Close()
			}
			return nil, err
		}

		return resp.RawResponse, nil
	}

	maxSize := config.MaxAssetSize
	if maxSize <= 0 {
		maxSize = DefaultMaxAssetSize
	}

	return &httpFetcher{getFunc, maxSize}
}

func (fetcher *httpFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	response, err := fetcher.getter(ctx, url)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, ErrResponseStatus404
	} else if response.StatusCode != http.StatusOK {
		return nil, ErrResponseStatusNotOK
	}

	if response.ContentLength > fetcher.maxSize {
		return nil, fmt.Errorf("%w: %d bytes announced, limit is %d", ErrAssetTooLarge, response.ContentLength, fetcher.maxSize)
	}

	data, err := io.ReadAll(io.LimitReader(response.Body, fetcher.maxSize+1))
	if err != nil {
		return nil, err
	}

	if int64(len(data)) > fetcher.maxSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrAssetTooLarge, fetcher.maxSize)
	}

	return data, nil
}

var (
	ErrResponseStatusNotOK = errors.New("response returned non-200 status code")
	ErrResponseStatus404   = errors.New("response returned 404 status code")
	ErrAssetTooLarge       = errors.New("asset exceeds maximum size")
)
