package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
)

// mockDispatcher is a mock implementation of driving.EventDispatcher.
type mockDispatcher struct {
	batches []domain.EventBatch
	result  *domain.BatchResult
	err     error
}

func (m *mockDispatcher) Dispatch(_ context.Context, batch domain.EventBatch) (*domain.BatchResult, error) {
	m.batches = append(m.batches, batch)
	if m.result != nil || m.err != nil {
		return m.result, m.err
	}

	result := &domain.BatchResult{Received: len(batch.Records)}
	for _, r := range batch.Records {
		if !r.IsObjectCreated() {
			result.Add(domain.ImportResult{Record: r, Skipped: true})
			continue
		}
		result.Add(domain.ImportResult{Record: r, Query: "q", DatasetID: "ds_1", URI: r.URI()})
	}
	return result, nil
}

// mockGrouping is a mock implementation of driving.GroupingService.
type mockGrouping struct {
	args      domain.DatasetCreationArgs
	eventTime time.Time
}

func (m *mockGrouping) QueryFor(args domain.DatasetCreationArgs, eventTime time.Time) string {
	m.args = args
	m.eventTime = eventTime
	return "query-for-" + args.Name + args.DeviceID
}
