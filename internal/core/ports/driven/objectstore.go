package driven

import (
	"context"
	"time"
)

// ObjectMetadataSource reads metadata of a stored object without
// downloading its content.
type ObjectMetadataSource interface {
	// HeadObject reads the given version of the object, or the current
	// version when versionID is empty.
	HeadObject(ctx context.Context, bucket, key, versionID string) (*ObjectMetadata, error)
}

// ObjectMetadata is what HeadObject returns.
type ObjectMetadata struct {
	ContentType  string
	Size         int64
	ETag         string
	LastModified time.Time

	// UserMetadata holds user-defined metadata with lower-cased keys
	// and the provider prefix (x-amz-meta-) removed.
	UserMetadata map[string]string
}
