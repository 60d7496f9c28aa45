package lambda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
)

// mockDispatcher implements driving.EventDispatcher.
type mockDispatcher struct {
	batches []domain.EventBatch
	// failKeys fails any batch containing one of these keys.
	failKeys map[string]bool
}

func (m *mockDispatcher) Dispatch(_ context.Context, batch domain.EventBatch) (*domain.BatchResult, error) {
	m.batches = append(m.batches, batch)
	result := &domain.BatchResult{Received: len(batch.Records)}
	for _, r := range batch.Records {
		if m.failKeys[r.Key] {
			result.Failed++
			return result, fmt.Errorf("%w: %s", domain.ErrCatalogRejected, r.Key)
		}
		result.Processed++
	}
	return result, nil
}

func s3Record(eventName, key string) events.S3EventRecord {
	return events.S3EventRecord{
		EventSource: "aws:s3",
		AWSRegion:   "us-west-2",
		EventName:   eventName,
		S3: events.S3Entity{
			Bucket: events.S3Bucket{Name: "fleet-logs"},
			Object: events.S3Object{Key: key},
		},
	}
}

func sqsMessage(t *testing.T, id string, records ...events.S3EventRecord) events.SQSMessage {
	t.Helper()
	body, err := json.Marshal(events.S3Event{Records: records})
	require.NoError(t, err)
	return events.SQSMessage{MessageId: id, EventSource: "aws:sqs", Body: string(body)}
}

func lambdaCtx(requestID string) context.Context {
	return lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: requestID})
}

func failureIDs(resp events.SQSEventResponse) []string {
	ids := make([]string, 0, len(resp.BatchItemFailures))
	for _, f := range resp.BatchItemFailures {
		ids = append(ids, f.ItemIdentifier)
	}
	return ids
}

func TestHandler_HandleS3(t *testing.T) {
	t.Run("dispatches decoded records", func(t *testing.T) {
		dispatcher := &mockDispatcher{}
		h := NewHandler(dispatcher, "s3", domain.FailureModeFailFast)

		err := h.HandleS3(lambdaCtx("req-1"), events.S3Event{Records: []events.S3EventRecord{
			s3Record("ObjectCreated:Put", "a/my+file%21.txt"),
		}})
		require.NoError(t, err)

		require.Len(t, dispatcher.batches, 1)
		batch := dispatcher.batches[0]
		assert.Equal(t, "req-1", batch.Invocation.RequestID)
		assert.Equal(t, domain.SourceLambdaS3, batch.Invocation.Source)
		require.Len(t, batch.Records, 1)
		assert.Equal(t, "a/my file!.txt", batch.Records[0].Key)
		assert.Equal(t, "s3://fleet-logs/a/my file!.txt", batch.Records[0].URI())
	})

	t.Run("propagates dispatch error", func(t *testing.T) {
		dispatcher := &mockDispatcher{failKeys: map[string]bool{"bad": true}}
		h := NewHandler(dispatcher, "s3", domain.FailureModeFailFast)

		err := h.HandleS3(lambdaCtx("req-1"), events.S3Event{Records: []events.S3EventRecord{
			s3Record("ObjectCreated:Put", "bad"),
		}})
		assert.ErrorIs(t, err, domain.ErrCatalogRejected)
	})

	t.Run("generates request id outside lambda", func(t *testing.T) {
		dispatcher := &mockDispatcher{}
		h := NewHandler(dispatcher, "s3", domain.FailureModeFailFast)

		require.NoError(t, h.HandleS3(context.Background(), events.S3Event{}))
		require.Len(t, dispatcher.batches, 1)
		assert.NotEmpty(t, dispatcher.batches[0].Invocation.RequestID)
	})

	t.Run("bad key encoding fails before dispatch", func(t *testing.T) {
		dispatcher := &mockDispatcher{}
		h := NewHandler(dispatcher, "s3", domain.FailureModeFailFast)

		err := h.HandleS3(lambdaCtx("req-1"), events.S3Event{Records: []events.S3EventRecord{
			s3Record("ObjectCreated:Put", "bad%zz"),
		}})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, dispatcher.batches)
	})
}

func TestHandler_HandleSQS(t *testing.T) {
	t.Run("all messages succeed", func(t *testing.T) {
		dispatcher := &mockDispatcher{}
		h := NewHandler(dispatcher, "s3", domain.FailureModeFailFast)

		resp, err := h.HandleSQS(lambdaCtx("req-2"), events.SQSEvent{Records: []events.SQSMessage{
			sqsMessage(t, "m1", s3Record("ObjectCreated:Put", "a")),
			sqsMessage(t, "m2", s3Record("ObjectCreated:Put", "b")),
		}})
		require.NoError(t, err)
		assert.Empty(t, resp.BatchItemFailures)

		require.Len(t, dispatcher.batches, 2)
		assert.Equal(t, domain.SourceLambdaSQS, dispatcher.batches[0].Invocation.Source)
		assert.Equal(t, "req-2", dispatcher.batches[1].Invocation.RequestID)
	})

	t.Run("fail-fast reports failed and remaining messages", func(t *testing.T) {
		dispatcher := &mockDispatcher{failKeys: map[string]bool{"b": true}}
		h := NewHandler(dispatcher, "s3", domain.FailureModeFailFast)

		resp, err := h.HandleSQS(lambdaCtx("req"), events.SQSEvent{Records: []events.SQSMessage{
			sqsMessage(t, "m1", s3Record("ObjectCreated:Put", "a")),
			sqsMessage(t, "m2", s3Record("ObjectCreated:Put", "b")),
			sqsMessage(t, "m3", s3Record("ObjectCreated:Put", "c")),
		}})
		require.NoError(t, err)
		assert.Equal(t, []string{"m2", "m3"}, failureIDs(resp))
		assert.Len(t, dispatcher.batches, 2)
	})

	t.Run("continue reports only failed messages", func(t *testing.T) {
		dispatcher := &mockDispatcher{failKeys: map[string]bool{"b": true}}
		h := NewHandler(dispatcher, "s3", domain.FailureModeContinue)

		resp, err := h.HandleSQS(lambdaCtx("req"), events.SQSEvent{Records: []events.SQSMessage{
			sqsMessage(t, "m1", s3Record("ObjectCreated:Put", "a")),
			sqsMessage(t, "m2", s3Record("ObjectCreated:Put", "b")),
			sqsMessage(t, "m3", s3Record("ObjectCreated:Put", "c")),
		}})
		require.NoError(t, err)
		assert.Equal(t, []string{"m2"}, failureIDs(resp))
		assert.Len(t, dispatcher.batches, 3)
	})

	t.Run("skips s3 test events", func(t *testing.T) {
		dispatcher := &mockDispatcher{}
		h := NewHandler(dispatcher, "s3", domain.FailureModeFailFast)

		resp, err := h.HandleSQS(lambdaCtx("req"), events.SQSEvent{Records: []events.SQSMessage{
			{MessageId: "t1", Body: `{"Service":"Amazon S3","Event":"s3:TestEvent","Bucket":"fleet-logs"}`},
		}})
		require.NoError(t, err)
		assert.Empty(t, resp.BatchItemFailures)
		assert.Empty(t, dispatcher.batches)
	})

	t.Run("malformed body is a failure", func(t *testing.T) {
		dispatcher := &mockDispatcher{}
		h := NewHandler(dispatcher, "s3", domain.FailureModeContinue)

		resp, err := h.HandleSQS(lambdaCtx("req"), events.SQSEvent{Records: []events.SQSMessage{
			{MessageId: "x1", Body: "not json"},
			sqsMessage(t, "m2", s3Record("ObjectCreated:Put", "b")),
		}})
		require.NoError(t, err)
		assert.Equal(t, []string{"x1"}, failureIDs(resp))
		assert.Len(t, dispatcher.batches, 1)
	})

	t.Run("cancelled context fails remaining messages", func(t *testing.T) {
		dispatcher := &mockDispatcher{}
		h := NewHandler(dispatcher, "s3", domain.FailureModeContinue)

		ctx, cancel := context.WithCancel(lambdaCtx("req"))
		cancel()

		resp, err := h.HandleSQS(ctx, events.SQSEvent{Records: []events.SQSMessage{
			sqsMessage(t, "m1", s3Record("ObjectCreated:Put", "a")),
			sqsMessage(t, "m2", s3Record("ObjectCreated:Put", "b")),
		}})
		require.NoError(t, err)
		assert.Equal(t, []string{"m1", "m2"}, failureIDs(resp))
		assert.Empty(t, dispatcher.batches)
	})
}

func TestHandler_Invoke(t *testing.T) {
	t.Run("routes s3 payload", func(t *testing.T) {
		dispatcher := &mockDispatcher{}
		h := NewHandler(dispatcher, "s3", domain.FailureModeFailFast)

		payload, err := json.Marshal(events.S3Event{Records: []events.S3EventRecord{
			s3Record("ObjectCreated:Put", "a"),
		}})
		require.NoError(t, err)

		out, err := h.Invoke(lambdaCtx("req"), payload)
		require.NoError(t, err)
		assert.Nil(t, out)
		require.Len(t, dispatcher.batches, 1)
		assert.Equal(t, domain.SourceLambdaS3, dispatcher.batches[0].Invocation.Source)
	})

	t.Run("routes sqs payload", func(t *testing.T) {
		dispatcher := &mockDispatcher{failKeys: map[string]bool{"a": true}}
		h := NewHandler(dispatcher, "s3", domain.FailureModeFailFast)

		payload, err := json.Marshal(events.SQSEvent{Records: []events.SQSMessage{
			sqsMessage(t, "m1", s3Record("ObjectCreated:Put", "a")),
		}})
		require.NoError(t, err)

		out, err := h.Invoke(lambdaCtx("req"), payload)
		require.NoError(t, err)
		resp, ok := out.(events.SQSEventResponse)
		require.True(t, ok)
		assert.Equal(t, []string{"m1"}, failureIDs(resp))
	})

	t.Run("empty payload", func(t *testing.T) {
		dispatcher := &mockDispatcher{}
		h := NewHandler(dispatcher, "s3", domain.FailureModeFailFast)

		out, err := h.Invoke(context.Background(), json.RawMessage(`{"Records":[]}`))
		require.NoError(t, err)
		assert.Nil(t, out)
		assert.Empty(t, dispatcher.batches)
	})

	t.Run("unknown source", func(t *testing.T) {
		h := NewHandler(&mockDispatcher{}, "s3", domain.FailureModeFailFast)
		_, err := h.Invoke(context.Background(), json.RawMessage(`{"Records":[{"eventSource":"aws:sns"}]}`))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("invalid json", func(t *testing.T) {
		h := NewHandler(&mockDispatcher{}, "s3", domain.FailureModeFailFast)
		_, err := h.Invoke(context.Background(), json.RawMessage(`nope`))
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})
}
