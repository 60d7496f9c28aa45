package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectRecord_IsObjectCreated(t *testing.T) {
	tests := []struct {
		eventName string
		expected  bool
	}{
		{"ObjectCreated:Put", true},
		{"ObjectCreated:CompleteMultipartUpload", true},
		{"ObjectCreated:Copy", true},
		{"ObjectCreated", true},
		{"ObjectRemoved:Delete", false},
		{"ObjectRestore:Completed", false},
		{"objectcreated:put", false},
		{"s3:ObjectCreated:Put", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.eventName, func(t *testing.T) {
			r := ObjectRecord{EventName: tt.eventName}
			assert.Equal(t, tt.expected, r.IsObjectCreated())
		})
	}
}

func TestStorageURI(t *testing.T) {
	assert.Equal(t, "storage://b/a/b.txt", StorageURI("storage", "b", "a/b.txt"))
	assert.Equal(t, "s3://bkt/x/1.csv", StorageURI(SchemeS3, "bkt", "x/1.csv"))
}

func TestObjectRecord_URI(t *testing.T) {
	t.Run("defaults to s3 scheme", func(t *testing.T) {
		r := ObjectRecord{Bucket: "b", Key: "a/b.txt"}
		assert.Equal(t, "s3://b/a/b.txt", r.URI())
	})

	t.Run("uses record scheme", func(t *testing.T) {
		r := ObjectRecord{Bucket: "b", Key: "a/b.txt", Scheme: "storage"}
		assert.Equal(t, "storage://b/a/b.txt", r.URI())
	})

	t.Run("key is used verbatim", func(t *testing.T) {
		r := ObjectRecord{Bucket: "b", Key: "dir with space/f+1.txt"}
		assert.Equal(t, "s3://b/dir with space/f+1.txt", r.URI())
	})
}
