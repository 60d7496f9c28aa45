package events

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driving"
	"github.com/custodia-labs/s3-importer/internal/logger"
)

// Replayer dispatches S3 event documents read from a stream.
type Replayer struct {
	dispatcher   driving.EventDispatcher
	scheme       string
	newRequestID func() string
}

// NewReplayer creates a replayer. scheme is the URI scheme of imported
// objects.
func NewReplayer(dispatcher driving.EventDispatcher, scheme string) *Replayer {
	return &Replayer{
		dispatcher:   dispatcher,
		scheme:       scheme,
		newRequestID: uuid.NewString,
	}
}

// Replay decodes every document in r and dispatches all records as one
// batch. name identifies the input in logs.
func (p *Replayer) Replay(ctx context.Context, r io.Reader, name, source string) (*domain.BatchResult, error) {
	docs, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	batch := domain.EventBatch{
		Invocation: domain.InvocationContext{
			RequestID: p.newRequestID(),
			Source:    source,
		},
	}
	for _, doc := range docs {
		records, err := Records(doc, p.scheme)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		batch.Records = append(batch.Records, records...)
	}

	logger.Debug("Replaying %d records from %s (request %s)", len(batch.Records), name, batch.Invocation.RequestID)
	return p.dispatcher.Dispatch(ctx, batch)
}
