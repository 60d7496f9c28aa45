package driven

import (
	"context"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
)

// CatalogService is the remote dataset/file catalog.
// Both operations are synchronous; retries are the caller's trigger's concern.
type CatalogService interface {
	// EnsureDataset returns the dataset matching req.MatchQuery,
	// creating it from the request fields when none matches.
	EnsureDataset(ctx context.Context, req EnsureDatasetRequest) (*domain.Dataset, error)

	// ImportFile registers the object at req.URI under req.DatasetID.
	ImportFile(ctx context.Context, req ImportFileRequest) error
}

// EnsureDatasetRequest is the input to CatalogService.EnsureDataset.
type EnsureDatasetRequest struct {
	// MatchQuery is the RoboQL predicate identifying the dataset.
	MatchQuery string

	// Name, Description, DeviceID, Metadata and Tags are only used
	// when a new dataset is created.
	Name        string
	Description string
	DeviceID    string
	Metadata    map[string]any
	Tags        []string

	// CreateDeviceIfMissing registers DeviceID when the catalog does not know it.
	CreateDeviceIfMissing bool
}

// ImportFileRequest is the input to CatalogService.ImportFile.
type ImportFileRequest struct {
	DatasetID    string
	URI          string
	RelativePath string
	Description  string
	DeviceID     string
	Metadata     map[string]any
	Tags         []string
}
