package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
)

// defaultEventName is used when import_object is called without one.
const defaultEventName = "ObjectCreated:Put"

// ImportObjectInput is the input schema for the import_object tool.
type ImportObjectInput struct {
	Bucket    string `json:"bucket" jsonschema:"the bucket holding the object"`
	Key       string `json:"key" jsonschema:"the object key, not URL-encoded"`
	EventName string `json:"event_name,omitempty" jsonschema:"notification event name (default ObjectCreated:Put)"`
	EventTime string `json:"event_time,omitempty" jsonschema:"RFC 3339 event time, used when grouping by event time"`
	VersionID string `json:"version_id,omitempty" jsonschema:"object version, for versioned buckets"`
}

// ImportObjectOutput is the output schema for the import_object tool.
type ImportObjectOutput struct {
	URI       string `json:"uri"`
	Skipped   bool   `json:"skipped"`
	Query     string `json:"query,omitempty"`
	DatasetID string `json:"dataset_id,omitempty"`
	RequestID string `json:"request_id"`
}

// PreviewGroupingInput is the input schema for the preview_grouping tool.
type PreviewGroupingInput struct {
	Name      string `json:"name,omitempty" jsonschema:"dataset name, selects per-name grouping"`
	DeviceID  string `json:"device_id,omitempty" jsonschema:"device id, selects per-device-per-day grouping"`
	EventTime string `json:"event_time,omitempty" jsonschema:"RFC 3339 event time"`
}

// PreviewGroupingOutput is the output schema for the preview_grouping tool.
type PreviewGroupingOutput struct {
	Policy string `json:"policy"`
	Query  string `json:"query"`
}

// Grouping policy names reported by preview_grouping.
const (
	PolicyPerName         = "per-name"
	PolicyPerDevicePerDay = "per-device-per-day"
	PolicyPerDay          = "per-day"
)

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "import_object",
		Description: "Import a single stored object into the catalog as if a notification had arrived",
	}, s.handleImportObject)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "preview_grouping",
		Description: "Show the dataset query a file with the given name or device would be grouped by",
	}, s.handlePreviewGrouping)
}

// handleImportObject handles the import_object tool invocation.
func (s *Server) handleImportObject(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ImportObjectInput,
) (*mcp.CallToolResult, ImportObjectOutput, error) {
	if strings.TrimSpace(input.Bucket) == "" || strings.TrimSpace(input.Key) == "" {
		return nil, ImportObjectOutput{}, fmt.Errorf("%w: bucket and key are required", domain.ErrInvalidInput)
	}

	eventTime, err := parseEventTime(input.EventTime)
	if err != nil {
		return nil, ImportObjectOutput{}, err
	}

	eventName := input.EventName
	if eventName == "" {
		eventName = defaultEventName
	}

	record := domain.ObjectRecord{
		EventName:   eventName,
		EventTime:   eventTime,
		EventSource: "mcp",
		Bucket:      input.Bucket,
		Key:         input.Key,
		VersionID:   input.VersionID,
		Scheme:      s.scheme,
	}
	batch := domain.EventBatch{
		Records: []domain.ObjectRecord{record},
		Invocation: domain.InvocationContext{
			RequestID: s.newRequestID(),
			Source:    domain.SourceMCP,
		},
	}

	result, err := s.ports.Dispatcher.Dispatch(ctx, batch)
	if err != nil {
		return nil, ImportObjectOutput{}, err
	}
	if result == nil || len(result.Results) == 0 {
		return nil, ImportObjectOutput{}, errors.New("dispatcher returned no result")
	}

	r := result.Results[0]
	return nil, ImportObjectOutput{
		URI:       record.URI(),
		Skipped:   r.Skipped,
		Query:     r.Query,
		DatasetID: r.DatasetID,
		RequestID: batch.Invocation.RequestID,
	}, nil
}

// handlePreviewGrouping handles the preview_grouping tool invocation.
func (s *Server) handlePreviewGrouping(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input PreviewGroupingInput,
) (*mcp.CallToolResult, PreviewGroupingOutput, error) {
	eventTime, err := parseEventTime(input.EventTime)
	if err != nil {
		return nil, PreviewGroupingOutput{}, err
	}

	args := domain.DatasetCreationArgs{Name: input.Name, DeviceID: input.DeviceID}
	return nil, PreviewGroupingOutput{
		Policy: policyFor(args),
		Query:  s.ports.Grouping.QueryFor(args, eventTime),
	}, nil
}

// policyFor names the policy the grouping engine picks for args.
func policyFor(args domain.DatasetCreationArgs) string {
	switch {
	case args.HasName():
		return PolicyPerName
	case args.HasDevice():
		return PolicyPerDevicePerDay
	default:
		return PolicyPerDay
	}
}

func parseEventTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: event_time %q is not RFC 3339", domain.ErrInvalidInput, raw)
	}
	return t, nil
}
