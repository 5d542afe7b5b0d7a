package pictech

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/thebartekbanach/pictech/pkg/api"
	"github.com/thebartekbanach/pictech/pkg/assets"
	assetsrepositories "github.com/thebartekbanach/pictech/pkg/assets/repositories"
	"github.com/thebartekbanach/pictech/pkg/task"
)

type service struct {
	transport    api.Transport
	poller       task.Poller
	materializer assets.Materializer
	fs           afero.Fs
	logger       *log.Logger
}

var _ Service = (*service)(nil)

func NewService(transport api.Transport, poller task.Poller, materializer assets.Materializer, fs afero.Fs, logger *log.Logger) Service {
	return &service{
		transport:    transport,
		poller:       poller,
		materializer: materializer,
		fs:           fs,
		logger:       logger.With("component", "pictech"),
	}
}

func (s *service) SubmitTranslation(ctx context.Context, source ImageSource, sourceLanguage, targetLanguage string) (task.Handle, error) {
	fields, err := s.translationFields(source, sourceLanguage, targetLanguage)
	if err != nil {
		return task.Handle{}, err
	}

	return s.poller.Submit(ctx, task.Translation, fields)
}

func (s *service) QueryTranslation(ctx context.Context, requestID string) (task.QueryResult, error) {
	return s.poller.Query(ctx, task.Translation, requestID)
}

func (s *service) Translate(ctx context.Context, source ImageSource, sourceLanguage, targetLanguage string) (task.Result, error) {
	fields, err := s.translationFields(source, sourceLanguage, targetLanguage)
	if err != nil {
		return task.Result{State: task.Failed}, err
	}

	return s.poller.Run(ctx, task.Translation, fields)
}

func (s *service) Resume(ctx context.Context, kind task.Kind, requestID string) (task.Result, error) {
	return s.poller.Poll(ctx, kind, task.Handle{RequestID: requestID})
}

func (s *service) RemoveBackground(ctx context.Context, source ImageSource, backgroundColor, outputName string) (RemoveBackgroundResult, error) {
	fields, err := source.fields(s.fs)
	if err != nil {
		return RemoveBackgroundResult{Task: task.Result{State: task.Failed}}, err
	}

	if backgroundColor == "" {
		backgroundColor = DefaultBackgroundColor
	}
	fields["BgColor"] = backgroundColor

	var asset assetsrepositories.AssetModel
	materialize := func(ctx context.Context, result task.Result) error {
		materialized, err := s.materializer.Materialize(ctx, assets.Request{
			RequestID: result.RequestID,
			Kind:      task.BackgroundRemoval.Name,
			SourceURL: result.Data["OutputUrl"],
			Name:      outputName,
		})
		asset = materialized
		return err
	}

	result, err := s.poller.RunAndMaterialize(ctx, task.BackgroundRemoval, fields, materialize)
	return RemoveBackgroundResult{Task: result, Asset: asset}, err
}

func (s *service) Inpaint(ctx context.Context, imageBase64, maskBase64 string) (InpaintResult, error) {
	image := CleanBase64Prefix(imageBase64)
	mask := CleanBase64Prefix(maskBase64)
	if image == "" || mask == "" {
		return InpaintResult{}, ErrInpaintInputRequired
	}

	data, err := s.transport.CallBinary(ctx, InpaintEndpoint, api.Fields{"image": image, "mask": mask})
	if err != nil {
		return InpaintResult{}, err
	}

	result := InpaintResult{Data: data, MimeType: mimetype.Detect(data).String()}
	s.logger.Info("image inpainted", "mimeType", result.MimeType, "size", len(data))
	return result, nil
}

// InpaintAndStore inpaints like Inpaint and keeps the output in the asset
// storage under a generated request id.
func (s *service) InpaintAndStore(ctx context.Context, imageBase64, maskBase64, name string) (InpaintResult, error) {
	result, err := s.Inpaint(ctx, imageBase64, maskBase64)
	if err != nil {
		return result, err
	}

	requestID := uuid.New().String()
	asset, err := s.materializer.Store(ctx, assets.StoreRequest{
		RequestID: requestID,
		Kind:      InpaintKind,
		Name:      name,
		Data:      result.Data,
	})
	if err != nil {
		return result, &task.LocalIOError{RequestID: requestID, Err: err}
	}

	result.Asset = &asset
	return result, nil
}

// StoreImage decodes a base64 image, optionally prefixed with a data url
// header, and keeps it in the asset storage.
func (s *service) StoreImage(ctx context.Context, requestID, imageBase64, name string) (assetsrepositories.AssetModel, error) {
	encoded := CleanBase64Prefix(imageBase64)
	if encoded == "" {
		return assetsrepositories.AssetModel{}, ErrImageDataRequired
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return assetsrepositories.AssetModel{}, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}

	return s.materializer.Store(ctx, assets.StoreRequest{
		RequestID: requestID,
		Kind:      UploadKind,
		Name:      name,
		Data:      data,
	})
}

func (s *service) AssetsOfTask(ctx context.Context, requestID string) ([]assetsrepositories.AssetModel, error) {
	return s.materializer.AssetsOfTask(ctx, requestID)
}

func (s *service) translationFields(source ImageSource, sourceLanguage, targetLanguage string) (api.Fields, error) {
	if sourceLanguage == "" || targetLanguage == "" {
		return nil, ErrLanguageRequired
	}

	fields, err := source.fields(s.fs)
	if err != nil {
		return nil, err
	}

	fields["SourceLanguage"] = sourceLanguage
	fields["TargetLanguage"] = targetLanguage
	return fields, nil
}

var (
	ErrLanguageRequired     = errors.New("source and target language are required")
	ErrInpaintInputRequired = errors.New("image and mask are required")
	ErrImageDataRequired    = errors.New("image data is required")
	ErrInvalidBase64        = errors.New("image is not valid base64")
)
