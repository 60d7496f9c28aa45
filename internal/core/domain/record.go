package domain

import (
	"strings"
	"time"
)

// EventPrefixObjectCreated is the event-name prefix of storage
// notifications this importer acts on ("ObjectCreated:Put", ...).
const EventPrefixObjectCreated = "ObjectCreated"

// SchemeS3 is the URI scheme for objects held in Amazon S3.
const SchemeS3 = "s3"

// ObjectRecord is a single storage notification, decoupled from the
// wire format of whichever trigger delivered it.
type ObjectRecord struct {
	// EventName is the action string, e.g. "ObjectCreated:Put".
	EventName string

	// EventTime is when the storage system emitted the event. May be zero.
	EventTime time.Time

	// EventSource names the emitting service (e.g. "aws:s3").
	EventSource string

	// Region is the region of the bucket.
	Region string

	// Bucket is the bucket name.
	Bucket string

	// Key is the object key, already URL-decoded.
	Key string

	// Size is the object size in bytes, when the notification carries it.
	Size int64

	// ETag is the object entity tag.
	ETag string

	// VersionID is set for versioned buckets.
	VersionID string

	// Scheme is the URI scheme of the storage system. Defaults to SchemeS3.
	Scheme string
}

// IsObjectCreated reports whether the record is an object-creation event.
func (r ObjectRecord) IsObjectCreated() bool {
	return strings.HasPrefix(r.EventName, EventPrefixObjectCreated)
}

// URI returns the storage URI of the object.
func (r ObjectRecord) URI() string {
	scheme := r.Scheme
	if scheme == "" {
		scheme = SchemeS3
	}
	return StorageURI(scheme, r.Bucket, r.Key)
}

// StorageURI joins a scheme, bucket and key as "{scheme}://{bucket}/{key}".
// The key is used verbatim.
func StorageURI(scheme, bucket, key string) string {
	return scheme + "://" + bucket + "/" + key
}

// Trigger kinds recorded on InvocationContext.Source.
const (
	SourceLambdaS3  = "lambda-s3"
	SourceLambdaSQS = "lambda-sqs"
	SourceReplay    = "replay"
	SourceWatch     = "watch"
	SourceMCP       = "mcp"
)

// InvocationContext identifies the invocation a batch arrived in.
type InvocationContext struct {
	// RequestID is unique per invocation.
	RequestID string

	// FunctionName is the serverless function name, if any.
	FunctionName string

	// Source is the trigger kind (see the Source* constants).
	Source string
}

// EventBatch is a batch of notifications delivered in one invocation.
// Record order is whatever the trigger delivered.
type EventBatch struct {
	Records    []ObjectRecord
	Invocation InvocationContext
}
