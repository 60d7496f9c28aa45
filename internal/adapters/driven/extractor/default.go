package extractor

import (
	"context"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driven"
)

// Ensure Default implements the interface.
var _ driven.MetadataExtractor = Default{}

const (
	// DatasetDescription is set on datasets the importer creates.
	DatasetDescription = "This dataset was automatically created by s3-importer."

	// FileDescription is set on files the importer registers.
	FileDescription = "This file was automatically imported by s3-importer."

	// MetadataRequestID records the invocation that imported a file.
	MetadataRequestID = "importer_request_id"
)

// Default is the out-of-the-box hook. It leaves name, device id and tags
// unset, so every file lands in the dataset for the current day.
type Default struct{}

// Extract builds the default argument bundles. The object key is used as
// the relative path.
func (Default) Extract(
	_ context.Context,
	record domain.ObjectRecord,
	invocation domain.InvocationContext,
) (domain.DatasetCreationArgs, domain.FileImportArgs, error) {
	ds := domain.DatasetCreationArgs{
		Description: DatasetDescription,
		Metadata:    map[string]any{MetadataRequestID: invocation.RequestID},
	}
	file := domain.FileImportArgs{
		Description:  FileDescription,
		Metadata:     map[string]any{MetadataRequestID: invocation.RequestID},
		RelativePath: record.Key,
	}
	return ds, file, nil
}
