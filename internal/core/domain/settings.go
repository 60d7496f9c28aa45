package domain

import "time"

const unknownDescription = "Unknown"

// DefaultCatalogEndpoint is the public Roboto API.
const DefaultCatalogEndpoint = "https://api.roboto.ai"

// FailureMode defines how a batch reacts to a failing record.
type FailureMode string

// Available failure modes.
const (
	// FailureModeFailFast aborts the batch on the first failing record.
	// The trigger's redelivery is relied upon to reprocess the batch.
	FailureModeFailFast FailureMode = "fail-fast"

	// FailureModeContinue attempts every record and reports all failures.
	FailureModeContinue FailureMode = "continue"
)

// IsValid returns true if the failure mode is recognised.
func (m FailureMode) IsValid() bool {
	switch m {
	case FailureModeFailFast, FailureModeContinue:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m FailureMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m FailureMode) Description() string {
	switch m {
	case FailureModeFailFast:
		return "Fail fast (abort batch on first failure)"
	case FailureModeContinue:
		return "Continue (attempt every record, report all failures)"
	default:
		return unknownDescription
	}
}

// ReferenceTime selects the timestamp day-based grouping is computed from.
type ReferenceTime string

// Available reference time sources.
const (
	// ReferenceTimeNow uses the wall clock at decision time.
	// Grouping is sensitive to delivery delay and not reproducible on replay.
	ReferenceTimeNow ReferenceTime = "now"

	// ReferenceTimeEvent uses the record's own event time when present.
	ReferenceTimeEvent ReferenceTime = "event"
)

// IsValid returns true if the reference time is recognised.
func (r ReferenceTime) IsValid() bool {
	switch r {
	case ReferenceTimeNow, ReferenceTimeEvent:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r ReferenceTime) String() string {
	return string(r)
}

// LogFormat selects the log encoding.
type LogFormat string

// Available log formats.
const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// IsValid returns true if the log format is recognised.
func (f LogFormat) IsValid() bool {
	return f == LogFormatText || f == LogFormatJSON
}

// CatalogSettings holds the catalog connection.
type CatalogSettings struct {
	// APIKey authenticates every request. Required.
	APIKey string

	// OrgID targets an organization. Only needed when the key
	// belongs to more than one.
	OrgID string

	// Endpoint is the API base URL.
	Endpoint string

	// RequestsPerSecond throttles outbound calls. Zero disables throttling.
	RequestsPerSecond float64

	// Timeout bounds each HTTP call. Zero leaves it to the trigger.
	Timeout time.Duration
}

// GroupingSettings holds dataset grouping behaviour.
type GroupingSettings struct {
	// Reference selects the timestamp used by day-based policies.
	Reference ReferenceTime
}

// ExtractorSettings configures the metadata extraction hook.
type ExtractorSettings struct {
	// KeyPattern maps key segments onto args, e.g. "{device_id}/{name}/*".
	// Empty disables key-pattern extraction.
	KeyPattern string

	// ObjectMetadata enables HeadObject enrichment from user metadata.
	ObjectMetadata bool

	// Tags are added to every dataset and file.
	Tags []string

	// S3Region overrides the region used for HeadObject.
	S3Region string

	// S3Endpoint targets an S3-compatible store for HeadObject.
	S3Endpoint string

	// S3PathStyle forces path-style addressing for HeadObject.
	S3PathStyle bool
}

// ImporterSettings holds all importer settings.
type ImporterSettings struct {
	// Catalog holds the catalog connection.
	Catalog CatalogSettings

	// Grouping holds dataset grouping behaviour.
	Grouping GroupingSettings

	// Extractor configures metadata extraction.
	Extractor ExtractorSettings

	// FailureMode controls batch failure propagation.
	FailureMode FailureMode

	// URIScheme is the scheme of import URIs.
	URIScheme string

	// Verbose enables debug logging.
	Verbose bool

	// LogFormat selects the log encoding.
	LogFormat LogFormat
}

// DefaultImporterSettings returns settings with sensible defaults.
// The API key has no default and must be supplied.
func DefaultImporterSettings() ImporterSettings {
	return ImporterSettings{
		Catalog: CatalogSettings{
			Endpoint: DefaultCatalogEndpoint,
		},
		Grouping: GroupingSettings{
			Reference: ReferenceTimeNow,
		},
		FailureMode: FailureModeFailFast,
		URIScheme:   SchemeS3,
		LogFormat:   LogFormatText,
	}
}
