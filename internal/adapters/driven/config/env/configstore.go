// Package env provides an environment-variable implementation of
// driven.ConfigStore. It is the configuration source inside AWS Lambda,
// where no config file is shipped.
package env

import (
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/s3-importer/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Variables maps environment variables onto configuration keys.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
var Variables = map[string]string{
	"ROBOTO_API_KEY":                  "catalog.api_key",
	"ROBOTO_ORG_ID":                   "catalog.org_id",
	"ROBOTO_ENDPOINT":                 "catalog.endpoint",
	"S3_IMPORTER_REQUESTS_PER_SECOND": "catalog.requests_per_second",
	"S3_IMPORTER_TIMEOUT":             "catalog.timeout",
	"S3_IMPORTER_GROUPING_REFERENCE":  "grouping.reference",
	"S3_IMPORTER_KEY_PATTERN":         "extractor.key_pattern",
	"S3_IMPORTER_OBJECT_METADATA":     "extractor.object_metadata",
	"S3_IMPORTER_TAGS":                "extractor.tags",
	"S3_IMPORTER_S3_REGION":           "extractor.s3_region",
	"S3_IMPORTER_S3_ENDPOINT":         "extractor.s3_endpoint",
	"S3_IMPORTER_S3_PATH_STYLE":       "extractor.s3_path_style",
	"S3_IMPORTER_FAILURE_MODE":        "importer.failure_mode",
	"S3_IMPORTER_URI_SCHEME":          "importer.uri_scheme",
	"S3_IMPORTER_VERBOSE":             "log.verbose",
	"S3_IMPORTER_LOG_FORMAT":          "log.format",
}

// ConfigStore snapshots the environment at Load time.
// Values are strings and converted on read.
type ConfigStore struct {
	lookup func(string) (string, bool)
	values map[string]string
}

// NewConfigStore creates a store over the process environment.
func NewConfigStore() *ConfigStore {
	return NewConfigStoreWithLookup(os.LookupEnv)
}

// NewConfigStoreWithLookup creates a store over an arbitrary lookup
// function. Useful for testing.
func NewConfigStoreWithLookup(lookup func(string) (string, bool)) *ConfigStore {
	s := &ConfigStore{lookup: lookup}
	_ = s.Load()
	return s
}

// Load re-reads the environment. Empty variables count as unset.
func (s *ConfigStore) Load() error {
	values := make(map[string]string)
	for name, key := range Variables {
		if v, ok := s.lookup(name); ok && strings.TrimSpace(v) != "" {
			values[key] = strings.TrimSpace(v)
		}
	}
	s.values = values
	return nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	return s.values[key]
}

// GetFloat parses a numeric value. Returns 0 when unset or malformed.
func (s *ConfigStore) GetFloat(key string) float64 {
	f, err := strconv.ParseFloat(s.values[key], 64)
	if err != nil {
		return 0
	}
	return f
}

// GetBool parses a boolean value (1, true, yes, on). Returns false otherwise.
func (s *ConfigStore) GetBool(key string) bool {
	switch strings.ToLower(s.values[key]) {
	case "1", "t", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// GetStringSlice splits a comma-separated value, dropping blanks.
func (s *ConfigStore) GetStringSlice(key string) []string {
	raw, ok := s.values[key]
	if !ok {
		return nil
	}
	var result []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// Path returns a description of the source.
func (s *ConfigStore) Path() string {
	return "env"
}
