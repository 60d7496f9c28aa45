package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/custodia-labs/s3-importer/internal/adapters/driven/catalog/memory"
	"github.com/custodia-labs/s3-importer/internal/adapters/driven/catalog/roboto"
	"github.com/custodia-labs/s3-importer/internal/adapters/driven/config/env"
	"github.com/custodia-labs/s3-importer/internal/adapters/driven/config/file"
	"github.com/custodia-labs/s3-importer/internal/adapters/driven/extractor"
	s3source "github.com/custodia-labs/s3-importer/internal/adapters/driven/objectstore/s3"
	"github.com/custodia-labs/s3-importer/internal/adapters/driving/cli"
	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driven"
	"github.com/custodia-labs/s3-importer/internal/core/services"
)

// configPathEnv names the config file when --config is not given.
const configPathEnv = "S3_IMPORTER_CONFIG"

// newObjectMetadataSource builds the HeadObject client. Replaced in tests.
var newObjectMetadataSource = func(ctx context.Context, opts s3source.Options) (driven.ObjectMetadataSource, error) {
	return s3source.NewFromConfig(ctx, opts)
}

// buildRuntime wires settings, adapters and services.
func buildRuntime(ctx context.Context, opts cli.RuntimeOptions) (*cli.Runtime, error) {
	settings, err := loadSettings(opts)
	if err != nil {
		return nil, err
	}

	catalog, err := newCatalog(settings, opts.DryRun)
	if err != nil {
		return nil, err
	}

	var source driven.ObjectMetadataSource
	if settings.Extractor.ObjectMetadata {
		source, err = newObjectMetadataSource(ctx, s3source.Options{
			Region:       settings.Extractor.S3Region,
			Endpoint:     settings.Extractor.S3Endpoint,
			UsePathStyle: settings.Extractor.S3PathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("object metadata source: %w", err)
		}
	}

	chain, err := extractor.FromSettings(settings.Extractor, source)
	if err != nil {
		return nil, err
	}

	grouping := services.NewGroupingService(settings.Grouping.Reference)
	importer := services.NewImportOrchestrator(chain, grouping, catalog)

	return &cli.Runtime{
		Settings:   settings,
		Dispatcher: services.NewDispatcher(importer, settings.FailureMode),
		Grouping:   grouping,
	}, nil
}

// loadSettings layers the config file under the environment.
func loadSettings(opts cli.RuntimeOptions) (*domain.ImporterSettings, error) {
	path := opts.ConfigPath
	if path == "" {
		path = os.Getenv(configPathEnv)
	}

	fileStore, err := file.NewConfigStore(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: config file %s does not exist", domain.ErrInvalidConfig, path)
	}
	if err != nil {
		return nil, err
	}

	svc := services.NewSettingsService(fileStore, env.NewConfigStore())
	if opts.DryRun {
		return svc.LoadOffline()
	}
	return svc.Load()
}

func newCatalog(settings *domain.ImporterSettings, dryRun bool) (driven.CatalogService, error) {
	if dryRun {
		return memory.NewCatalog(settings.Catalog.OrgID), nil
	}
	return roboto.NewClient(roboto.Config{
		Endpoint:          settings.Catalog.Endpoint,
		APIKey:            settings.Catalog.APIKey,
		OrgID:             settings.Catalog.OrgID,
		RequestsPerSecond: settings.Catalog.RequestsPerSecond,
		Timeout:           settings.Catalog.Timeout,
	})
}
