package extractor

import (
	"context"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
)

// StaticTags adds a fixed set of tags to every dataset and file.
type StaticTags struct {
	tags []string
}

// Ensure StaticTags implements the interface.
var _ Enricher = (*StaticTags)(nil)

// NewStaticTags creates a StaticTags enricher.
func NewStaticTags(tags ...string) *StaticTags {
	return &StaticTags{tags: domain.MergeTags(nil, tags...)}
}

// Name returns the enricher name.
func (s *StaticTags) Name() string {
	return "static-tags"
}

// Enrich appends the configured tags.
func (s *StaticTags) Enrich(
	_ context.Context,
	_ domain.ObjectRecord,
	_ domain.InvocationContext,
	ds *domain.DatasetCreationArgs,
	file *domain.FileImportArgs,
) error {
	ds.Tags = domain.MergeTags(ds.Tags, s.tags...)
	file.Tags = domain.MergeTags(file.Tags, s.tags...)
	return nil
}
