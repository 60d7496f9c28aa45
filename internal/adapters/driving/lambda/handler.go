// Package lambda adapts AWS Lambda invocations to the event dispatcher.
//
// The function may be subscribed directly to bucket notifications or to an
// SQS queue receiving them. Both payloads are accepted by Invoke.
package lambda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driving"
	"github.com/custodia-labs/s3-importer/internal/logger"

	s3events "github.com/custodia-labs/s3-importer/internal/adapters/driving/events"
)

// Event sources found on incoming records.
const (
	eventSourceS3  = "aws:s3"
	eventSourceSQS = "aws:sqs"
)

// Handler handles S3 and SQS invocations.
type Handler struct {
	dispatcher driving.EventDispatcher
	scheme     string
	failFast   bool
}

// NewHandler creates a handler. In fail-fast mode an SQS batch stops at
// the first failed message and reports it and every later message as
// failed.
func NewHandler(dispatcher driving.EventDispatcher, scheme string, mode domain.FailureMode) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		scheme:     scheme,
		failFast:   mode != domain.FailureModeContinue,
	}
}

// Start hands control to the Lambda runtime. It does not return.
func (h *Handler) Start() {
	awslambda.Start(h.Invoke)
}

// sourceProbe reads the event source of the first record.
type sourceProbe struct {
	Records []struct {
		EventSource string `json:"eventSource"`
	} `json:"Records"`
}

// Invoke routes a raw payload to HandleS3 or HandleSQS.
func (h *Handler) Invoke(ctx context.Context, payload json.RawMessage) (any, error) {
	var probe sourceProbe
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("%w: decode payload: %w", domain.ErrInvalidInput, err)
	}
	if len(probe.Records) == 0 {
		logger.Info("Received 0 records")
		return nil, nil
	}

	switch probe.Records[0].EventSource {
	case eventSourceSQS:
		var event events.SQSEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("%w: decode sqs event: %w", domain.ErrInvalidInput, err)
		}
		return h.HandleSQS(ctx, event)
	case eventSourceS3:
		var event events.S3Event
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("%w: decode s3 event: %w", domain.ErrInvalidInput, err)
		}
		return nil, h.HandleS3(ctx, event)
	default:
		return nil, fmt.Errorf("%w: unsupported event source %q", domain.ErrInvalidInput, probe.Records[0].EventSource)
	}
}

// HandleS3 dispatches a direct bucket notification. Any error fails the
// whole invocation.
func (h *Handler) HandleS3(ctx context.Context, event events.S3Event) error {
	records, err := s3events.Records(event, h.scheme)
	if err != nil {
		return err
	}

	batch := domain.EventBatch{
		Records:    records,
		Invocation: invocationFrom(ctx, domain.SourceLambdaS3),
	}
	result, err := h.dispatcher.Dispatch(ctx, batch)
	logResult(result)
	return err
}

// HandleSQS dispatches each message as its own batch and reports failed
// messages so only they are redelivered.
func (h *Handler) HandleSQS(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	invocation := invocationFrom(ctx, domain.SourceLambdaSQS)
	var resp events.SQSEventResponse

	for i, msg := range event.Records {
		err := h.handleMessage(ctx, msg, invocation)
		if err == nil {
			continue
		}

		logger.Error("message %s: %v", msg.MessageId, err)
		resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{
			ItemIdentifier: msg.MessageId,
		})

		if h.failFast || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			for _, rest := range event.Records[i+1:] {
				resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{
					ItemIdentifier: rest.MessageId,
				})
			}
			break
		}
	}

	if n := len(resp.BatchItemFailures); n > 0 {
		logger.Warn("%d of %d messages failed", n, len(event.Records))
	}
	return resp, nil
}

func (h *Handler) handleMessage(ctx context.Context, msg events.SQSMessage, invocation domain.InvocationContext) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	event, ok, err := s3events.DecodeBody([]byte(msg.Body))
	if err != nil {
		return err
	}
	if !ok {
		logger.Info("Skipping %s test event in message %s", s3events.TestEvent, msg.MessageId)
		return nil
	}

	records, err := s3events.Records(event, h.scheme)
	if err != nil {
		return err
	}

	result, err := h.dispatcher.Dispatch(ctx, domain.EventBatch{Records: records, Invocation: invocation})
	logResult(result)
	return err
}

// invocationFrom reads the request id from the Lambda context, falling
// back to a random id outside Lambda.
func invocationFrom(ctx context.Context, source string) domain.InvocationContext {
	inv := domain.InvocationContext{
		FunctionName: lambdacontext.FunctionName,
		Source:       source,
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		inv.RequestID = lc.AwsRequestID
	} else {
		inv.RequestID = uuid.NewString()
	}
	return inv
}

func logResult(result *domain.BatchResult) {
	if result == nil {
		return
	}
	logger.Info("Batch complete: %d received, %d processed, %d skipped, %d failed",
		result.Received, result.Processed, result.Skipped, result.Failed)
}
