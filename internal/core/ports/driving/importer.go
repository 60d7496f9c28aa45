package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
)

// EventDispatcher processes a batch of storage notifications.
type EventDispatcher interface {
	// Dispatch filters the batch to object-creation events and imports
	// each one. The BatchResult is returned even when err is non-nil.
	Dispatch(ctx context.Context, batch domain.EventBatch) (*domain.BatchResult, error)
}

// Importer imports a single object-creation record into the catalog.
type Importer interface {
	// Import ensures the record's dataset exists and imports the file into it.
	Import(
		ctx context.Context,
		record domain.ObjectRecord,
		invocation domain.InvocationContext,
	) (*domain.ImportResult, error)
}

// GroupingService decides which dataset a file belongs to.
type GroupingService interface {
	// QueryFor returns the dataset match query for args.
	// eventTime is the record's own timestamp and may be zero.
	QueryFor(args domain.DatasetCreationArgs, eventTime time.Time) string
}
