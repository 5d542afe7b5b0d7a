//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/thebartekbanach/pictech/pkg/api"
	"github.com/thebartekbanach/pictech/pkg/assets"
	"github.com/thebartekbanach/pictech/pkg/pictech"
	"github.com/thebartekbanach/pictech/pkg/task"
)

func InitializeApplication(ctx context.Context) (*application, func(), error) {
	wire.Build(
		InitializeLogger,
		InitializeFs,
		InitializeTracerProvider,

		InitializeHTTPClientConfig,
		InitializeHTTPClient,
		InitializeAPIConfig,
		api.NewTransport,

		InitializePollingPolicy,
		task.NewPoller,

		InitializeFetcherConfig,
		assets.NewHTTPFetcher,
		InitializeMaterializerConfig,
		InitializeAssetsStoreConfig,
		InitializeAssetsStorage,
		InitializeAssetsCatalog,
		assets.NewMaterializer,

		pictech.NewService,
		newApplication,
	)

	return &application{}, nil, nil
}
