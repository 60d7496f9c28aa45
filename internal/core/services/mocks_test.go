package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driven"
)

// mockCatalog implements driven.CatalogService and records every call
// in order.
type mockCatalog struct {
	calls     []string
	ensures   []driven.EnsureDatasetRequest
	imports   []driven.ImportFileRequest
	datasetID string
	ensureErr error
	importErr error
	// failImportFor fails ImportFile only for these URIs.
	failImportFor map[string]bool
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{datasetID: "ds_123"}
}

func (m *mockCatalog) EnsureDataset(_ context.Context, req driven.EnsureDatasetRequest) (*domain.Dataset, error) {
	m.calls = append(m.calls, "ensure")
	m.ensures = append(m.ensures, req)
	if m.ensureErr != nil {
		return nil, m.ensureErr
	}
	return &domain.Dataset{ID: m.datasetID}, nil
}

func (m *mockCatalog) ImportFile(_ context.Context, req driven.ImportFileRequest) error {
	m.calls = append(m.calls, "import")
	m.imports = append(m.imports, req)
	if m.failImportFor[req.URI] {
		return fmt.Errorf("%w: import of %s refused", domain.ErrCatalogRejected, req.URI)
	}
	return m.importErr
}

// defaultLikeExtractor mirrors the default hook without importing the adapter.
func defaultLikeExtractor() driven.MetadataExtractorFunc {
	return func(
		_ context.Context,
		record domain.ObjectRecord,
		invocation domain.InvocationContext,
	) (domain.DatasetCreationArgs, domain.FileImportArgs, error) {
		md := map[string]any{"importer_request_id": invocation.RequestID}
		return domain.DatasetCreationArgs{Description: "auto", Metadata: md},
			domain.FileImportArgs{Description: "auto", Metadata: md, RelativePath: record.Key},
			nil
	}
}

func staticExtractor(ds domain.DatasetCreationArgs, file domain.FileImportArgs, err error) driven.MetadataExtractorFunc {
	return func(
		_ context.Context,
		_ domain.ObjectRecord,
		_ domain.InvocationContext,
	) (domain.DatasetCreationArgs, domain.FileImportArgs, error) {
		return ds, file, err
	}
}

// fixedGrouping implements driving.GroupingService with a constant query.
type fixedGrouping struct {
	query      string
	lastArgs   domain.DatasetCreationArgs
	lastTime   time.Time
	invocation int
}

func (g *fixedGrouping) QueryFor(args domain.DatasetCreationArgs, eventTime time.Time) string {
	g.invocation++
	g.lastArgs = args
	g.lastTime = eventTime
	return g.query
}

var errBoom = errors.New("boom")

func createdRecord(bucket, key string) domain.ObjectRecord {
	return domain.ObjectRecord{EventName: "ObjectCreated:Put", Bucket: bucket, Key: key}
}

func removedRecord(bucket, key string) domain.ObjectRecord {
	return domain.ObjectRecord{EventName: "ObjectRemoved:Delete", Bucket: bucket, Key: key}
}
