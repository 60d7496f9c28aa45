package driven

import (
	"context"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
)

// MetadataExtractor maps a notification onto the dataset and file argument
// bundles. It is the extension point for enriching imports from the
// user's own systems.
//
// Implementations should be deterministic for logically equivalent files,
// otherwise grouping proliferates datasets.
type MetadataExtractor interface {
	Extract(
		ctx context.Context,
		record domain.ObjectRecord,
		invocation domain.InvocationContext,
	) (domain.DatasetCreationArgs, domain.FileImportArgs, error)
}

// MetadataExtractorFunc adapts a function to MetadataExtractor.
type MetadataExtractorFunc func(
	ctx context.Context,
	record domain.ObjectRecord,
	invocation domain.InvocationContext,
) (domain.DatasetCreationArgs, domain.FileImportArgs, error)

// Extract calls f.
func (f MetadataExtractorFunc) Extract(
	ctx context.Context,
	record domain.ObjectRecord,
	invocation domain.InvocationContext,
) (domain.DatasetCreationArgs, domain.FileImportArgs, error) {
	return f(ctx, record, invocation)
}
