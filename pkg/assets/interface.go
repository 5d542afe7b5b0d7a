package assets

import (
	"context"

	assetsrepositories "github.com/thebartekbanach/pictech/pkg/assets/repositories"
)

type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Request names the remote output of a succeeded task that should be kept.
type Request struct {
	RequestID string
	Kind      string
	SourceURL string

	// Name of the stored object, generated when empty. The detected
	// extension is appended when Name has none.
	Name string
}

// StoreRequest carries image data that did not come from a task output url.
type StoreRequest struct {
	RequestID string
	Kind      string
	Name      string
	Data      []byte
}

type Materializer interface {
	Materialize(ctx context.Context, request Request) (assetsrepositories.AssetModel, error)
	Store(ctx context.Context, request StoreRequest) (assetsrepositories.AssetModel, error)
	AssetsOfTask(ctx context.Context, requestID string) ([]assetsrepositories.AssetModel, error)
}
