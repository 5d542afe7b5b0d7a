package assets

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	assetsrepositories "github.com/thebartekbanach/pictech/pkg/assets/repositories"
)

type MaterializerConfig struct {
	// AllowedDomains are globs matched against the source host. An empty
	// list allows every host.
	AllowedDomains []string
}

type materializer struct {
	config  MaterializerConfig
	fetcher Fetcher
	storage assetsrepositories.AssetsStorage
	catalog assetsrepositories.AssetsRepository
	logger  *log.Logger
	now     func() time.Time
}

var _ Materializer = (*materializer)(nil)

// NewMaterializer creates a materializer. catalog may be nil, assets are then
// stored without being recorded.
func NewMaterializer(
	config MaterializerConfig,
	fetcher Fetcher,
	storage assetsrepositories.AssetsStorage,
	catalog assetsrepositories.AssetsRepository,
	logger *log.Logger,
) Materializer {
	return &materializer{
		config:  config,
		fetcher: fetcher,
		storage: storage,
		catalog: catalog,
		logger:  logger.With("component", "assets"),
		now:     time.Now,
	}
}

func (m *materializer) Materialize(ctx context.Context, request Request) (assetsrepositories.AssetModel, error) {
	if request.SourceURL == "" {
		return assetsrepositories.AssetModel{}, ErrSourceURLRequired
	}

	if !m.isAllowedSourceDomain(request.SourceURL) {
		return assetsrepositories.AssetModel{}, ErrSourceDomainNotAllowed
	}

	data, err := m.fetcher.Fetch(ctx, request.SourceURL)
	if err != nil {
		return assetsrepositories.AssetModel{}, err
	}

	mime := mimetype.Detect(data)
	asset := assetsrepositories.AssetModel{
		ObjectName: makeObjectName(request.Name, mime.Extension()),
		RequestID:  request.RequestID,
		TaskKind:   request.Kind,
		SourceURL:  request.SourceURL,
		MimeType:   mime.String(),
	}

	if err := m.save(ctx, &asset, data); err != nil {
		return assetsrepositories.AssetModel{}, err
	}

	m.logger.Info("asset materialized", "requestId", request.RequestID, "location", asset.Location, "mimeType", asset.MimeType, "size", asset.Size)
	return asset, nil
}

// Store keeps data produced locally. Object names are grouped by the day of
// storing, e.g. "2024-05-01/<uuid>.png".
func (m *materializer) Store(ctx context.Context, request StoreRequest) (assetsrepositories.AssetModel, error) {
	if len(request.Data) == 0 {
		return assetsrepositories.AssetModel{}, ErrAssetDataRequired
	}

	mime := mimetype.Detect(request.Data)
	asset := assetsrepositories.AssetModel{
		ObjectName: m.now().UTC().Format("2006-01-02") + "/" + makeObjectName(request.Name, mime.Extension()),
		RequestID:  request.RequestID,
		TaskKind:   request.Kind,
		MimeType:   mime.String(),
	}

	if err := m.save(ctx, &asset, request.Data); err != nil {
		return assetsrepositories.AssetModel{}, err
	}

	m.logger.Info("asset stored", "requestId", request.RequestID, "location", asset.Location, "mimeType", asset.MimeType, "size", asset.Size)
	return asset, nil
}

// save writes data to the storage and records the asset in the catalog. The
// stored object is removed again when it cannot be recorded.
func (m *materializer) save(ctx context.Context, asset *assetsrepositories.AssetModel, data []byte) error {
	location, err := m.storage.Save(ctx, asset.ObjectName, asset.MimeType, data)
	if err != nil {
		return err
	}

	asset.Location = location
	asset.Storage = m.storage.Name()
	asset.Size = int64(len(data))
	asset.CreatedAt = m.now().UTC()

	if m.catalog == nil {
		return nil
	}

	if err := m.catalog.CreateAssetInfo(ctx, *asset); err != nil {
		if deleteErr := m.storage.Delete(ctx, asset.ObjectName); deleteErr != nil {
			m.logger.Error("cannot remove unrecorded asset", "objectName", asset.ObjectName, "err", deleteErr)
		}
		return err
	}

	return nil
}

func (m *materializer) AssetsOfTask(ctx context.Context, requestID string) ([]assetsrepositories.AssetModel, error) {
	if m.catalog == nil {
		return nil, ErrCatalogNotConfigured
	}

	return m.catalog.GetAssetInfosOfTask(ctx, requestID)
}

func (m *materializer) isAllowedSourceDomain(sourceURL string) bool {
	if len(m.config.AllowedDomains) == 0 {
		return true
	}

	url, err := url.Parse(sourceURL)
	if err != nil {
		return false
	}

	sourceDomain := url.Hostname()
	for _, allowedDomain := range m.config.AllowedDomains {
		if glob.Glob(allowedDomain, sourceDomain) {
			return true
		}
	}

	return false
}

func makeObjectName(name, extension string) string {
	if name == "" {
		return uuid.New().String() + extension
	}

	if filepath.Ext(name) == "" {
		return name + extension
	}

	return name
}

var (
	ErrSourceURLRequired      = errors.New("asset source url is required")
	ErrSourceDomainNotAllowed = errors.New("asset source domain not allowed")
	ErrCatalogNotConfigured   = errors.New("asset catalog is not configured")
	ErrAssetDataRequired      = errors.New("asset data is required")
)
