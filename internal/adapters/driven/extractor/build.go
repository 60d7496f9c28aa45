package extractor

import (
	"fmt"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driven"
)

// FromSettings assembles the extraction chain described by settings.
// Enrichers run in a fixed order: key pattern, object metadata, static
// tags, so stored object metadata overrides what the key implies.
// source is only required when object metadata enrichment is enabled.
func FromSettings(settings domain.ExtractorSettings, source driven.ObjectMetadataSource) (*Chain, error) {
	chain := NewChain(Default{})

	if settings.KeyPattern != "" {
		kp, err := NewKeyPattern(settings.KeyPattern)
		if err != nil {
			return nil, err
		}
		chain.Add(kp)
	}

	if settings.ObjectMetadata {
		om, err := NewObjectMetadata(source)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
		}
		chain.Add(om)
	}

	if len(settings.Tags) > 0 {
		chain.Add(NewStaticTags(settings.Tags...))
	}

	return chain, nil
}
