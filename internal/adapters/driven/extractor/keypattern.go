package extractor

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/logger"
)

// Fields with dedicated meaning in a key pattern. Any other placeholder is
// stored as metadata under its own name.
const (
	FieldDeviceID = "device_id"
	FieldName     = "name"
)

var placeholderRe = regexp.MustCompile(`^\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

type segmentKind int

const (
	segmentLiteral segmentKind = iota
	segmentCapture
	segmentWildcard
)

type segment struct {
	kind  segmentKind
	value string
}

// KeyPattern derives args from "/"-separated object key segments.
//
// A pattern segment is a literal, a {field} placeholder capturing one key
// segment, or "*" matching any one segment. A trailing "*" matches one or
// more remaining segments. Keys that do not match are left untouched.
type KeyPattern struct {
	pattern  string
	segments []segment
}

// Ensure KeyPattern implements the interface.
var _ Enricher = (*KeyPattern)(nil)

// NewKeyPattern compiles a key pattern such as "{device_id}/{name}/*".
func NewKeyPattern(pattern string) (*KeyPattern, error) {
	pattern = strings.Trim(pattern, "/")
	if pattern == "" {
		return nil, fmt.Errorf("%w: key pattern is empty", domain.ErrInvalidConfig)
	}

	parts := strings.Split(pattern, "/")
	segments := make([]segment, 0, len(parts))
	seen := make(map[string]struct{})

	for i, part := range parts {
		switch {
		case part == "":
			return nil, fmt.Errorf("%w: key pattern %q has an empty segment", domain.ErrInvalidConfig, pattern)
		case part == "*":
			segments = append(segments, segment{kind: segmentWildcard})
		case strings.ContainsAny(part, "{}"):
			m := placeholderRe.FindStringSubmatch(part)
			if m == nil {
				return nil, fmt.Errorf("%w: key pattern segment %d (%q) is not a valid placeholder",
					domain.ErrInvalidConfig, i, part)
			}
			if _, dup := seen[m[1]]; dup {
				return nil, fmt.Errorf("%w: key pattern field %q appears twice", domain.ErrInvalidConfig, m[1])
			}
			seen[m[1]] = struct{}{}
			segments = append(segments, segment{kind: segmentCapture, value: m[1]})
		default:
			segments = append(segments, segment{kind: segmentLiteral, value: part})
		}
	}

	return &KeyPattern{pattern: pattern, segments: segments}, nil
}

// Name returns the enricher name.
func (p *KeyPattern) Name() string {
	return "key-pattern"
}

// Pattern returns the compiled pattern.
func (p *KeyPattern) Pattern() string {
	return p.pattern
}

// Match returns the captured fields for key, or false if key does not match.
func (p *KeyPattern) Match(key string) (map[string]string, bool) {
	parts := strings.Split(strings.Trim(key, "/"), "/")
	last := len(p.segments) - 1
	trailingWildcard := p.segments[last].kind == segmentWildcard

	if len(parts) < len(p.segments) || (!trailingWildcard && len(parts) != len(p.segments)) {
		return nil, false
	}

	fields := make(map[string]string)
	for i, seg := range p.segments {
		part := parts[i]
		if part == "" {
			return nil, false
		}
		switch seg.kind {
		case segmentLiteral:
			if part != seg.value {
				return nil, false
			}
		case segmentCapture:
			fields[seg.value] = part
		case segmentWildcard:
		}
	}
	return fields, true
}

// Enrich fills device id, dataset name and metadata from the key.
func (p *KeyPattern) Enrich(
	_ context.Context,
	record domain.ObjectRecord,
	_ domain.InvocationContext,
	ds *domain.DatasetCreationArgs,
	file *domain.FileImportArgs,
) error {
	fields, ok := p.Match(record.Key)
	if !ok {
		logger.Debug("Key %s does not match pattern %s", record.Key, p.pattern)
		return nil
	}

	for field, value := range fields {
		switch field {
		case FieldDeviceID:
			ds.DeviceID = value
			file.DeviceID = value
		case FieldName:
			ds.Name = value
		default:
			setMetadata(&ds.Metadata, field, value)
			setMetadata(&file.Metadata, field, value)
		}
	}
	return nil
}
