// Package memory provides an in-process driven.CatalogService.
//
// Datasets are keyed by the exact match query string rather than by
// evaluating RoboQL, which is sufficient for dry runs where every query
// comes from the grouping engine.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driven"
	"github.com/custodia-labs/s3-importer/internal/logger"
)

// Ensure Catalog implements the interface.
var _ driven.CatalogService = (*Catalog)(nil)

// Import is a file registration recorded by the catalog.
type Import struct {
	DatasetID    string
	URI          string
	RelativePath string
	Description  string
	DeviceID     string
	Metadata     map[string]any
	Tags         []string
}

// Catalog is an in-memory catalog for dry runs and testing.
type Catalog struct {
	mu       sync.RWMutex
	orgID    string
	byQuery  map[string]*domain.Dataset
	datasets []*domain.Dataset
	imports  []Import
	now      func() time.Time
}

// NewCatalog creates an empty in-memory catalog.
func NewCatalog(orgID string) *Catalog {
	return &Catalog{
		orgID:   orgID,
		byQuery: make(map[string]*domain.Dataset),
		now:     time.Now,
	}
}

// EnsureDataset returns the dataset previously created for the same query,
// or creates one.
func (c *Catalog) EnsureDataset(ctx context.Context, req driven.EnsureDatasetRequest) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.MatchQuery) == "" {
		return nil, domain.ErrInvalidInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ds, ok := c.byQuery[req.MatchQuery]; ok {
		logger.Debug("dry-run: dataset %s matches %q", ds.ID, req.MatchQuery)
		copied := *ds
		return &copied, nil
	}

	ds := &domain.Dataset{
		ID:       newDatasetID(),
		OrgID:    c.orgID,
		Name:     req.Name,
		DeviceID: req.DeviceID,
		Created:  c.now().UTC(),
	}
	c.byQuery[req.MatchQuery] = ds
	c.datasets = append(c.datasets, ds)
	logger.Info("dry-run: created dataset %s for %q", ds.ID, req.MatchQuery)

	copied := *ds
	return &copied, nil
}

// ImportFile records a file registration.
func (c *Catalog) ImportFile(ctx context.Context, req driven.ImportFileRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasDataset(req.DatasetID) {
		return domain.ErrNotFound
	}

	c.imports = append(c.imports, Import{
		DatasetID:    req.DatasetID,
		URI:          req.URI,
		RelativePath: req.RelativePath,
		Description:  req.Description,
		DeviceID:     req.DeviceID,
		Metadata:     domain.CloneMetadata(req.Metadata),
		Tags:         domain.CloneTags(req.Tags),
	})
	logger.Info("dry-run: imported %s into %s", req.URI, req.DatasetID)
	return nil
}

// Datasets returns the datasets created so far, in creation order.
func (c *Catalog) Datasets() []domain.Dataset {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Dataset, 0, len(c.datasets))
	for _, ds := range c.datasets {
		out = append(out, *ds)
	}
	return out
}

// Imports returns the recorded imports, in order.
func (c *Catalog) Imports() []Import {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Import, len(c.imports))
	copy(out, c.imports)
	return out
}

func (c *Catalog) hasDataset(id string) bool {
	for _, ds := range c.datasets {
		if ds.ID == id {
			return true
		}
	}
	return false
}

func newDatasetID() string {
	return "ds_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
}
