package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driving"
	"github.com/custodia-labs/s3-importer/internal/logger"
)

// Ensure Dispatcher implements the interface.
var _ driving.EventDispatcher = (*Dispatcher)(nil)

// Dispatcher feeds object-creation records of a batch to the importer,
// one at a time in delivery order. It keeps no state between records.
type Dispatcher struct {
	importer driving.Importer
	mode     domain.FailureMode
}

// NewDispatcher creates a dispatcher. An invalid mode falls back to
// domain.FailureModeFailFast.
func NewDispatcher(importer driving.Importer, mode domain.FailureMode) *Dispatcher {
	if !mode.IsValid() {
		mode = domain.FailureModeFailFast
	}
	return &Dispatcher{
		importer: importer,
		mode:     mode,
	}
}

// Dispatch processes the batch. In fail-fast mode the first failure aborts
// the remaining records; in continue mode every record is attempted and
// the returned error joins all failures.
func (d *Dispatcher) Dispatch(ctx context.Context, batch domain.EventBatch) (*domain.BatchResult, error) {
	result := &domain.BatchResult{Received: len(batch.Records)}

	if d.importer == nil {
		return result, errors.New("dispatcher: importer not configured")
	}

	logger.Info("Received %d records", len(batch.Records))

	var errs []error
	for i, record := range batch.Records {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("batch interrupted before record %d: %w", i, err)
		}

		if !record.IsObjectCreated() {
			logger.Info("Skipping %s, currently only processing %s events",
				record.EventName, domain.EventPrefixObjectCreated)
			result.Add(domain.ImportResult{Record: record, Skipped: true})
			continue
		}

		res, err := d.importer.Import(ctx, record, batch.Invocation)
		if res == nil {
			res = &domain.ImportResult{Record: record, URI: record.URI()}
		}
		if err != nil {
			res.Err = err
			result.Add(*res)
			wrapped := fmt.Errorf("record %d (%s): %w", i, record.URI(), err)
			if d.mode == domain.FailureModeFailFast {
				logger.Error("Aborting batch: %v", wrapped)
				return result, wrapped
			}
			logger.Error("Record failed, continuing: %v", wrapped)
			errs = append(errs, wrapped)
			continue
		}
		result.Add(*res)
	}

	if len(errs) > 0 {
		return result, errors.Join(errs...)
	}

	logger.Info("Successfully processed all records")
	return result, nil
}
