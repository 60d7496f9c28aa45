package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driven"
)

// Reserved user-metadata keys (x-amz-meta-device-id, ...).
const (
	MetaDeviceID    = "device-id"
	MetaDatasetName = "dataset-name"
	MetaTags        = "tags"
)

// ObjectMetadata enriches args from the object's stored user metadata.
type ObjectMetadata struct {
	source driven.ObjectMetadataSource
}

// Ensure ObjectMetadata implements the interface.
var _ Enricher = (*ObjectMetadata)(nil)

// NewObjectMetadata creates an enricher backed by source.
func NewObjectMetadata(source driven.ObjectMetadataSource) (*ObjectMetadata, error) {
	if source == nil {
		return nil, errors.New("object metadata source is nil")
	}
	return &ObjectMetadata{source: source}, nil
}

// Name returns the enricher name.
func (o *ObjectMetadata) Name() string {
	return "object-metadata"
}

// Enrich maps reserved keys onto the args and merges the rest into the
// file metadata.
func (o *ObjectMetadata) Enrich(
	ctx context.Context,
	record domain.ObjectRecord,
	_ domain.InvocationContext,
	ds *domain.DatasetCreationArgs,
	file *domain.FileImportArgs,
) error {
	meta, err := o.source.HeadObject(ctx, record.Bucket, record.Key, record.VersionID)
	if err != nil {
		return fmt.Errorf("head %s: %w", record.URI(), err)
	}
	if meta == nil {
		return nil
	}

	for key, value := range meta.UserMetadata {
		switch strings.ToLower(key) {
		case MetaDeviceID:
			if value != "" {
				ds.DeviceID = value
				file.DeviceID = value
			}
		case MetaDatasetName:
			if value != "" {
				ds.Name = value
			}
		case MetaTags:
			tags := splitTags(value)
			ds.Tags = domain.MergeTags(ds.Tags, tags...)
			file.Tags = domain.MergeTags(file.Tags, tags...)
		default:
			setMetadata(&file.Metadata, key, value)
		}
	}
	return nil
}

func splitTags(value string) []string {
	var tags []string
	for _, t := range strings.Split(value, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
