package pictech

import (
	"context"

	assetsrepositories "github.com/thebartekbanach/pictech/pkg/assets/repositories"
	"github.com/thebartekbanach/pictech/pkg/task"
)

const (
	InpaintEndpoint = "/inpaint_image_sync"

	DefaultBackgroundColor = "white"

	// asset kinds of images stored without a remote task
	UploadKind  = "upload"
	InpaintKind = "inpaint"
)

// RemoveBackgroundResult is the finished background removal task together
// with the stored output image.
type RemoveBackgroundResult struct {
	Task  task.Result                   `json:"task"`
	Asset assetsrepositories.AssetModel `json:"asset"`
}

type InpaintResult struct {
	Data     []byte `json:"-"`
	MimeType string `json:"mimeType"`

	// Asset is set when the output was stored.
	Asset *assetsrepositories.AssetModel `json:"asset,omitempty"`
}

type Service interface {
	SubmitTranslation(ctx context.Context, source ImageSource, sourceLanguage, targetLanguage string) (task.Handle, error)
	QueryTranslation(ctx context.Context, requestID string) (task.QueryResult, error)
	Translate(ctx context.Context, source ImageSource, sourceLanguage, targetLanguage string) (task.Result, error)
	Resume(ctx context.Context, kind task.Kind, requestID string) (task.Result, error)
	RemoveBackground(ctx context.Context, source ImageSource, backgroundColor, outputName string) (RemoveBackgroundResult, error)
	Inpaint(ctx context.Context, imageBase64, maskBase64 string) (InpaintResult, error)
	InpaintAndStore(ctx context.Context, imageBase64, maskBase64, name string) (InpaintResult, error)
	StoreImage(ctx context.Context, requestID, imageBase64, name string) (assetsrepositories.AssetModel, error)
	AssetsOfTask(ctx context.Context, requestID string) ([]assetsrepositories.AssetModel, error)
}
