package extractor

import (
	"context"
	"fmt"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driven"
)

// Enricher refines argument bundles produced by a base extractor.
// Enrichers receive private copies and may modify them in place.
type Enricher interface {
	// Name identifies the enricher in errors and logs.
	Name() string

	// Enrich updates ds and file for record.
	Enrich(
		ctx context.Context,
		record domain.ObjectRecord,
		invocation domain.InvocationContext,
		ds *domain.DatasetCreationArgs,
		file *domain.FileImportArgs,
	) error
}

// Ensure Chain implements the interface.
var _ driven.MetadataExtractor = (*Chain)(nil)

// Chain runs a base extractor followed by enrichers, in order.
type Chain struct {
	base      driven.MetadataExtractor
	enrichers []Enricher
}

// NewChain creates a chain. A nil base uses Default.
func NewChain(base driven.MetadataExtractor, enrichers ...Enricher) *Chain {
	if base == nil {
		base = Default{}
	}
	return &Chain{
		base:      base,
		enrichers: enrichers,
	}
}

// Extract runs the base extractor then every enricher.
func (c *Chain) Extract(
	ctx context.Context,
	record domain.ObjectRecord,
	invocation domain.InvocationContext,
) (domain.DatasetCreationArgs, domain.FileImportArgs, error) {
	ds, file, err := c.base.Extract(ctx, record, invocation)
	if err != nil {
		return domain.DatasetCreationArgs{}, domain.FileImportArgs{}, err
	}

	// The base may share maps with its caller.
	ds, file = ds.Clone(), file.Clone()

	for _, e := range c.enrichers {
		if err := e.Enrich(ctx, record, invocation, &ds, &file); err != nil {
			return domain.DatasetCreationArgs{}, domain.FileImportArgs{}, fmt.Errorf("enricher %s: %w", e.Name(), err)
		}
	}
	return ds, file, nil
}

// Add appends an enricher to the chain.
func (c *Chain) Add(e Enricher) {
	c.enrichers = append(c.enrichers, e)
}

// Len returns the number of enrichers in the chain.
func (c *Chain) Len() int {
	return len(c.enrichers)
}

// setMetadata writes key into a metadata map, allocating it if needed.
func setMetadata(m *map[string]any, key string, value any) {
	if *m == nil {
		*m = make(map[string]any)
	}
	(*m)[key] = value
}
