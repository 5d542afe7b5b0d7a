package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/afero"
	"github.com/thebartekbanach/pictech/pkg/api"
	"github.com/thebartekbanach/pictech/pkg/assets"
	assetsrepositories "github.com/thebartekbanach/pictech/pkg/assets/repositories"
	dbconnections "github.com/thebartekbanach/pictech/pkg/assets/repositories/connections"
	"github.com/thebartekbanach/pictech/pkg/logger"
	"github.com/thebartekbanach/pictech/pkg/task"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const serviceName = "pictech"

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AssetsStoreConfig struct {
	Kind      string
	OutputDir string
}

const (
	fsAssetsStore    = "fs"
	minioAssetsStore = "minio"
)

func InitializeLogger() *log.Logger {
	config := logger.DefaultConfig()
	config.Level = os.Getenv("PICTECH_LOG_LEVEL")
	config.JSON = os.Getenv("PICTECH_LOG_JSON") == "true"

	return logger.New(config)
}

func InitializeAPIConfig() (api.Config, error) {
	config := api.Config{
		Credentials: api.Credentials{
			AccountID: os.Getenv("PICTECH_ACCOUNT_ID"),
			SecretKey: os.Getenv("PICTECH_SECRET_KEY"),
		},
	}

	if config.Credentials.AccountID == "" {
		return api.Config{}, requiredVariableError("PICTECH_ACCOUNT_ID")
	}

	if config.Credentials.SecretKey == "" {
		return api.Config{}, requiredVariableError("PICTECH_SECRET_KEY")
	}

	return config, nil
}

func InitializeHTTPClientConfig() (HTTPClientConfig, error) {
	config := HTTPClientConfig{
		BaseURL: os.Getenv("PICTECH_BASE_URL"),
		Timeout: 60 * time.Second,
	}

	if config.BaseURL == "" {
		return HTTPClientConfig{}, requiredVariableError("PICTECH_BASE_URL")
	}

	parsedBaseURL, err := url.Parse(config.BaseURL)
	if err != nil || parsedBaseURL.Scheme == "" || parsedBaseURL.Host == "" {
		return HTTPClientConfig{}, fmt.Errorf("PICTECH_BASE_URL must be an absolute url, got %q", config.BaseURL)
	}

	if raw := os.Getenv("PICTECH_HTTP_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return HTTPClientConfig{}, fmt.Errorf("PICTECH_HTTP_TIMEOUT must be a positive duration, got %q", raw)
		}
		config.Timeout = timeout
	}

	return config, nil
}

// InitializeTracerProvider exports spans over OTLP/HTTP when
// OTEL_EXPORTER_OTLP_TRACES_ENDPOINT is set, spans are dropped otherwise.
// The returned cleanup flushes pending spans.
func InitializeTracerProvider(ctx context.Context, logger *log.Logger) (trace.TracerProvider, func(), error) {
	if os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT") == "" {
		return noop.NewTracerProvider(), func() {}, nil
	}

	// the exporter reads the endpoint, headers and protocol options from the environment
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing otlp exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(serviceName)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing tracing resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := provider.Shutdown(ctx); err != nil {
			logger.Error("shutting down tracer provider failed", "err", err)
		}
	}

	return provider, cleanup, nil
}

// InitializeHTTPClient creates the single connection pool used by the
// transport and the asset fetcher.
func InitializeHTTPClient(config HTTPClientConfig) *resty.Client {
	return api.NewHTTPClient(config.BaseURL, config.Timeout)
}

func InitializePollingPolicy() (task.PollingPolicy, error) {
	policy := task.DefaultPollingPolicy()

	if raw := os.Getenv("PICTECH_POLL_MAX_ATTEMPTS"); raw != "" {
		maxAttempts, err := strconv.Atoi(raw)
		if err != nil {
			return task.PollingPolicy{}, fmt.Errorf("PICTECH_POLL_MAX_ATTEMPTS must be a number, got %q", raw)
		}
		policy.MaxAttempts = maxAttempts
	}

	if raw := os.Getenv("PICTECH_POLL_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return task.PollingPolicy{}, fmt.Errorf("PICTECH_POLL_INTERVAL must be a duration, got %q", raw)
		}
		policy.Interval = interval
	}

	if err := policy.Validate(); err != nil {
		return task.PollingPolicy{}, err
	}

	return policy, nil
}

func InitializeFs() afero.Fs {
	return afero.NewOsFs()
}

func InitializeMaterializerConfig() assets.MaterializerConfig {
	config := assets.MaterializerConfig{
		AllowedDomains: splitList(os.Getenv("PICTECH_ALLOWED_ASSET_DOMAINS")),
	}

	if len(config.AllowedDomains) == 0 {
		config.AllowedDomains = []string{"*"}
	}

	return config
}

func InitializeAssetsStoreConfig() (AssetsStoreConfig, error) {
	config := AssetsStoreConfig{
		Kind:      os.Getenv("PICTECH_ASSET_STORE"),
		OutputDir: os.Getenv("PICTECH_OUTPUT_DIR"),
	}

	if config.Kind == "" {
		config.Kind = fsAssetsStore
	}

	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}

	if config.Kind != fsAssetsStore && config.Kind != minioAssetsStore {
		return AssetsStoreConfig{}, fmt.Errorf("PICTECH_ASSET_STORE must be %q or %q, got %q", fsAssetsStore, minioAssetsStore, config.Kind)
	}

	return config, nil
}

func InitializeAssetsStorage(ctx context.Context, config AssetsStoreConfig, fs afero.Fs) (assetsrepositories.AssetsStorage, error) {
	if config.Kind == fsAssetsStore {
		return assetsrepositories.NewFsAssetsStorage(fs, config.OutputDir), nil
	}

	minioConfig, err := InitializeMinioConnectionConfig()
	if err != nil {
		return nil, err
	}

	conn, err := InitializeMinioConnection(ctx, minioConfig)
	if err != nil {
		return nil, err
	}

	return assetsrepositories.NewMinioAssetsStorage(conn), nil
}

func InitializeMinioConnectionConfig() (dbconnections.MinioBlockStorageProductionConnectionConfig, error) {
	config := dbconnections.MinioBlockStorageProductionConnectionConfig{
		Endpoint:  os.Getenv("PICTECH_MINIO_ENDPOINT"),
		AccessKey: os.Getenv("PICTECH_MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("PICTECH_MINIO_SECRET_KEY"),
		Location:  os.Getenv("PICTECH_MINIO_LOCATION"),
		Bucket:    os.Getenv("PICTECH_MINIO_BUCKET"),
		UseSSL:    os.Getenv("PICTECH_MINIO_SSL") == "true",
	}

	if config.Endpoint == "" {
		return config, requiredVariableError("PICTECH_MINIO_ENDPOINT")
	}

	if config.AccessKey == "" {
		return config, requiredVariableError("PICTECH_MINIO_ACCESS_KEY")
	}

	if config.SecretKey == "" {
		return config, requiredVariableError("PICTECH_MINIO_SECRET_KEY")
	}

	if config.Location == "" {
		config.Location = "us-east-1"
	}

	if config.Bucket == "" {
		return config, requiredVariableError("PICTECH_MINIO_BUCKET")
	}

	return config, nil
}

func InitializeMinioConnection(ctx context.Context, minioConfig dbconnections.MinioBlockStorageProductionConnectionConfig) (dbconnections.MinioBlockStorageConnection, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	conn, err := dbconnections.NewMinioBlockStorageProductionConnection(ctx, minioConfig)
	if err != nil {
		return nil, fmt.Errorf("initializing minio connection: %w", err)
	}

	return conn, nil
}

// InitializeAssetsCatalog returns a nil repository when no mongo connection
// string is configured. The cleanup closes the mongo client.
func InitializeAssetsCatalog(ctx context.Context, logger *log.Logger) (assetsrepositories.AssetsRepository, func(), error) {
	config := dbconnections.AssetsDBConfig{
		ConnectionString: os.Getenv("PICTECH_MONGO_CONNECTION_STRING"),
		Database:         os.Getenv("PICTECH_MONGO_DATABASE"),
	}

	if config.ConnectionString == "" {
		return nil, func() {}, nil
	}

	if _, err := url.Parse(config.ConnectionString); err != nil {
		return nil, nil, fmt.Errorf("parsing PICTECH_MONGO_CONNECTION_STRING: %w", err)
	}

	if config.Database == "" {
		config.Database = "pictech"
	}

	connectCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	conn, err := dbconnections.NewAssetsDBProductionConnection(connectCtx, config)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing mongo connection: %w", err)
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := conn.Disconnect(ctx); err != nil {
			logger.Error("disconnecting from mongo failed", "err", err)
		}
	}

	return assetsrepositories.NewAssetsRepository(conn), cleanup, nil
}

func InitializeFetcherConfig() (assets.FetcherConfig, error) {
	config := assets.FetcherConfig{MaxAssetSize: assets.DefaultMaxAssetSize}

	if raw := os.Getenv("PICTECH_MAX_ASSET_SIZE"); raw != "" {
		maxSize, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || maxSize <= 0 {
			return assets.FetcherConfig{}, fmt.Errorf("PICTECH_MAX_ASSET_SIZE must be a positive number of bytes, got %q", raw)
		}
		config.MaxAssetSize = maxSize
	}

	return config, nil
}

func splitList(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}

func requiredVariableError(name string) error {
	return fmt.Errorf("%s is required environment variable", name)
}
