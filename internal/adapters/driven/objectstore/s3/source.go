// Package s3 reads object metadata from Amazon S3 (or an S3-compatible
// store) with HeadObject.
package s3

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ObjectMetadataSource = (*Source)(nil)

// HeadObjectAPI is the subset of the S3 client used by Source.
type HeadObjectAPI interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Options configure the S3 client built by NewFromConfig.
type Options struct {
	// Region overrides the region from the environment.
	Region string

	// Endpoint targets an S3-compatible store instead of AWS.
	Endpoint string

	// UsePathStyle forces path-style addressing, which most
	// S3-compatible stores require.
	UsePathStyle bool
}

// Source is an ObjectMetadataSource backed by S3 HeadObject.
type Source struct {
	client HeadObjectAPI
}

// New wraps an existing client.
func New(client HeadObjectAPI) *Source {
	return &Source{client: client}
}

// NewFromConfig builds a client from the default AWS credential chain
// (environment, shared config, execution role).
func NewFromConfig(ctx context.Context, opts Options) (*Source, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})
	return New(client), nil
}

// HeadObject returns the object's metadata without downloading it.
// A non-empty versionID pins the read to that version.
func (s *Source) HeadObject(ctx context.Context, bucket, key, versionID string) (*driven.ObjectMetadata, error) {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if versionID != "" {
		input.VersionId = aws.String(versionID)
	}
	out, err := s.client.HeadObject(ctx, input)
	if err != nil {
		return nil, classifyError(bucket, key, err)
	}

	meta := &driven.ObjectMetadata{
		ContentType:  aws.ToString(out.ContentType),
		Size:         aws.ToInt64(out.ContentLength),
		ETag:         strings.Trim(aws.ToString(out.ETag), `"`),
		LastModified: aws.ToTime(out.LastModified),
		UserMetadata: make(map[string]string, len(out.Metadata)),
	}
	for k, v := range out.Metadata {
		meta.UserMetadata[strings.TrimPrefix(strings.ToLower(k), "x-amz-meta-")] = v
	}
	return meta, nil
}

func classifyError(bucket, key string, err error) error {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return fmt.Errorf("head s3://%s/%s: %w", bucket, key, domain.ErrNotFound)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "NoSuchBucket":
			return fmt.Errorf("head s3://%s/%s: %w", bucket, key, domain.ErrNotFound)
		case "Forbidden", "AccessDenied":
			return fmt.Errorf("head s3://%s/%s: access denied: %w", bucket, key, err)
		}
	}
	return fmt.Errorf("head s3://%s/%s: %w", bucket, key, err)
}
