package events

import (
	"context"
	"sync"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
)

// mockDispatcher implements driving.EventDispatcher and records batches.
type mockDispatcher struct {
	mu      sync.Mutex
	batches []domain.EventBatch
	err     error
}

func (m *mockDispatcher) Dispatch(_ context.Context, batch domain.EventBatch) (*domain.BatchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, batch)

	result := &domain.BatchResult{Received: len(batch.Records)}
	for _, r := range batch.Records {
		if r.IsObjectCreated() {
			result.Processed++
		} else {
			result.Skipped++
		}
	}
	return result, m.err
}

func (m *mockDispatcher) Batches() []domain.EventBatch {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.EventBatch, len(m.batches))
	copy(out, m.batches)
	return out
}

// s3EventJSON is a notification with two records, one with an encoded key.
const s3EventJSON = `{
  "Records": [
    {
      "eventVersion": "2.1",
      "eventSource": "aws:s3",
      "awsRegion": "us-west-2",
      "eventTime": "2024-03-15T23:59:59.000Z",
      "eventName": "ObjectCreated:Put",
      "s3": {
        "s3SchemaVersion": "1.0",
        "bucket": {"name": "fleet-logs", "arn": "arn:aws:s3:::fleet-logs"},
        "object": {
          "key": "robot-1/run+7/log%281%29.bag",
          "size": 2048,
          "eTag": "abc123",
          "versionId": "v1",
          "sequencer": "0055AED6DCD90281E5"
        }
      }
    },
    {
      "eventVersion": "2.1",
      "eventSource": "aws:s3",
      "awsRegion": "us-west-2",
      "eventTime": "2024-03-16T00:00:00.000Z",
      "eventName": "ObjectRemoved:Delete",
      "s3": {
        "bucket": {"name": "fleet-logs"},
        "object": {"key": "old.bag"}
      }
    }
  ]
}`

// s3TestEventJSON is what S3 sends when notifications are configured.
const s3TestEventJSON = `{
  "Service": "Amazon S3",
  "Event": "s3:TestEvent",
  "Time": "2024-03-15T10:00:00.000Z",
  "Bucket": "fleet-logs",
  "RequestId": "5582815E1AEA5ADF",
  "HostId": "8cLeGAmw098X5cv4Zkwcmo8vvZa3eH3eKxsPzbB9wrR+YstdA6Knx4Ip8EXAMPLE"
}`
