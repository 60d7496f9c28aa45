// Package events turns S3 event notification documents into domain
// batches and feeds them to the dispatcher, either from files (replay) or
// from a spool directory (watch).
package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/aws/aws-lambda-go/events"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
)

// TestEvent is the event S3 publishes when a notification configuration
// is saved. It carries no records.
const TestEvent = "s3:TestEvent"

// testEventProbe detects S3 test events.
type testEventProbe struct {
	Event string `json:"Event"`
}

// DecodeBody decodes a single S3 event notification document, such as an
// SQS message body. ok is false for S3 test events.
func DecodeBody(body []byte) (event events.S3Event, ok bool, err error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return events.S3Event{}, false, fmt.Errorf("%w: empty event document", domain.ErrInvalidInput)
	}

	var probe testEventProbe
	if err := json.Unmarshal(body, &probe); err != nil {
		return events.S3Event{}, false, fmt.Errorf("%w: decode event: %w", domain.ErrInvalidInput, err)
	}
	if probe.Event == TestEvent {
		return events.S3Event{}, false, nil
	}

	if err := json.Unmarshal(body, &event); err != nil {
		return events.S3Event{}, false, fmt.Errorf("%w: decode event: %w", domain.ErrInvalidInput, err)
	}
	return event, true, nil
}

// Decode reads one or more concatenated S3 event documents from r.
// Test events are dropped.
func Decode(r io.Reader) ([]events.S3Event, error) {
	dec := json.NewDecoder(r)

	var out []events.S3Event
	for {
		var raw json.RawMessage
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: document %d: %w", domain.ErrInvalidInput, len(out)+1, err)
		}

		event, ok, err := DecodeBody(raw)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, event)
		}
	}
}

// Records converts every record of an S3 event.
func Records(event events.S3Event, scheme string) ([]domain.ObjectRecord, error) {
	records := make([]domain.ObjectRecord, 0, len(event.Records))
	for i := range event.Records {
		rec, err := Record(event.Records[i], scheme)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Record converts one S3 event record. Notification keys are URL-encoded
// (spaces arrive as "+"), so the key is decoded here.
func Record(r events.S3EventRecord, scheme string) (domain.ObjectRecord, error) {
	key, err := url.QueryUnescape(r.S3.Object.Key)
	if err != nil {
		return domain.ObjectRecord{}, fmt.Errorf("%w: object key %q: %w", domain.ErrInvalidInput, r.S3.Object.Key, err)
	}
	if scheme == "" {
		scheme = domain.SchemeS3
	}

	return domain.ObjectRecord{
		EventName:   r.EventName,
		EventTime:   r.EventTime,
		EventSource: r.EventSource,
		Region:      r.AWSRegion,
		Bucket:      r.S3.Bucket.Name,
		Key:         key,
		Size:        r.S3.Object.Size,
		ETag:        r.S3.Object.ETag,
		VersionID:   r.S3.Object.VersionID,
		Scheme:      scheme,
	}, nil
}
