package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driven"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driving"
	"github.com/custodia-labs/s3-importer/internal/logger"
)

// Ensure ImportOrchestrator implements the interface.
var _ driving.Importer = (*ImportOrchestrator)(nil)

// ImportOrchestrator imports one record: extract, group, ensure the
// dataset, import the file. Nothing is rolled back; a dataset created
// before a failed import stays in the catalog.
type ImportOrchestrator struct {
	extractor driven.MetadataExtractor
	grouping  driving.GroupingService
	catalog   driven.CatalogService
}

// NewImportOrchestrator creates a new import orchestrator.
func NewImportOrchestrator(
	extractor driven.MetadataExtractor,
	grouping driving.GroupingService,
	catalog driven.CatalogService,
) *ImportOrchestrator {
	return &ImportOrchestrator{
		extractor: extractor,
		grouping:  grouping,
		catalog:   catalog,
	}
}

// Import ensures the record's dataset exists and imports the file into it.
// The returned result is non-nil even on error and carries whatever was
// decided before the failure.
func (o *ImportOrchestrator) Import(
	ctx context.Context,
	record domain.ObjectRecord,
	invocation domain.InvocationContext,
) (*domain.ImportResult, error) {
	result := &domain.ImportResult{
		Record: record,
		URI:    record.URI(),
	}

	if o.extractor == nil || o.grouping == nil || o.catalog == nil {
		result.Err = errors.New("import orchestrator not configured")
		return result, result.Err
	}

	// 1. Extract argument bundles
	datasetArgs, fileArgs, err := o.extractor.Extract(ctx, record, invocation)
	if err != nil {
		result.Err = fmt.Errorf("%w: %s: %w", domain.ErrExtraction, result.URI, err)
		return result, result.Err
	}
	if err := fileArgs.Validate(); err != nil {
		result.Err = fmt.Errorf("%w: %s: %w", domain.ErrExtraction, result.URI, err)
		return result, result.Err
	}
	datasetArgs = datasetArgs.Clone()
	fileArgs = fileArgs.Clone()

	// 2. Decide the dataset
	result.Query = o.grouping.QueryFor(datasetArgs, record.EventTime)

	// 3. Ensure the dataset exists
	logger.Info("Create-if-not-existing dataset")
	dataset, err := o.catalog.EnsureDataset(ctx, driven.EnsureDatasetRequest{
		MatchQuery:            result.Query,
		Name:                  datasetArgs.Name,
		Description:           datasetArgs.Description,
		DeviceID:              datasetArgs.DeviceID,
		Metadata:              datasetArgs.Metadata,
		Tags:                  datasetArgs.Tags,
		CreateDeviceIfMissing: true,
	})
	if err != nil {
		result.Err = fmt.Errorf("ensure dataset: %w", err)
		return result, result.Err
	}
	if dataset == nil || dataset.ID == "" {
		result.Err = fmt.Errorf("ensure dataset: %w: no dataset id returned", domain.ErrCatalogUnavailable)
		return result, result.Err
	}
	result.DatasetID = dataset.ID
	logger.Info("Got dataset %s, importing file to it", dataset.ID)

	// 4. Import the file
	err = o.catalog.ImportFile(ctx, driven.ImportFileRequest{
		DatasetID:    dataset.ID,
		URI:          result.URI,
		RelativePath: fileArgs.RelativePath,
		Description:  fileArgs.Description,
		DeviceID:     fileArgs.DeviceID,
		Metadata:     fileArgs.Metadata,
		Tags:         fileArgs.Tags,
	})
	if err != nil {
		result.Err = fmt.Errorf("import file: %w", err)
		return result, result.Err
	}

	logger.Info("Successfully imported file %s to dataset %s", result.URI, dataset.ID)
	return result, nil
}
