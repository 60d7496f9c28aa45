package file

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// document is the importer's TOML schema. Pointer fields separate an
// absent key from a zero value, so lower-precedence sources still apply.
type document struct {
	Catalog struct {
		APIKey            *string `toml:"api_key"`
		OrgID             *string `toml:"org_id"`
		Endpoint          *string `toml:"endpoint"`
		RequestsPerSecond any     `toml:"requests_per_second"`
		Timeout           *string `toml:"timeout"`
	} `toml:"catalog"`
	Grouping struct {
		Reference *string `toml:"reference"`
	} `toml:"grouping"`
	Extractor struct {
		KeyPattern     *string  `toml:"key_pattern"`
		ObjectMetadata *bool    `toml:"object_metadata"`
		Tags           []string `toml:"tags"`
		S3Region       *string  `toml:"s3_region"`
		S3Endpoint     *string  `toml:"s3_endpoint"`
		S3PathStyle    *bool    `toml:"s3_path_style"`
	} `toml:"extractor"`
	Importer struct {
		FailureMode *string `toml:"failure_mode"`
		URIScheme   *string `toml:"uri_scheme"`
	} `toml:"importer"`
	Log struct {
		Verbose *bool   `toml:"verbose"`
		Format  *string `toml:"format"`
	} `toml:"log"`
}

// ConfigStore is a read-only TOML file implementation of driven.ConfigStore.
// Unknown tables or keys are rejected so a misspelt setting never passes
// silently.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewConfigStore reads the TOML file at filePath.
// An empty filePath yields an empty store; a missing file is an error.
func NewConfigStore(filePath string) (*ConfigStore, error) {
	s := &ConfigStore{
		filePath: filePath,
		data:     make(map[string]any),
	}
	if filePath == "" {
		return s, nil
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetFloat retrieves a numeric configuration value.
func (s *ConfigStore) GetFloat(key string) float64 {
	val, _ := s.Get(key)
	f, _ := val.(float64)
	return f
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	b, _ := val.(bool)
	return b
}

// GetStringSlice retrieves a string slice configuration value.
func (s *ConfigStore) GetStringSlice(key string) []string {
	val, _ := s.Get(key)
	tags, _ := val.([]string)
	return tags
}

// Load reads configuration from the TOML file.
func (s *ConfigStore) Load() error {
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var doc document
	dec := toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %s: %s", domain.ErrInvalidConfig, s.filePath, describe(err))
	}

	data, err := doc.flatten()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidConfig, s.filePath, err)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// flatten projects the keys present in the document onto the dot-notation
// keys the settings service reads.
func (d *document) flatten() (map[string]any, error) {
	out := make(map[string]any)
	putString(out, "catalog.api_key", d.Catalog.APIKey)
	putString(out, "catalog.org_id", d.Catalog.OrgID)
	putString(out, "catalog.endpoint", d.Catalog.Endpoint)
	putString(out, "catalog.timeout", d.Catalog.Timeout)
	putString(out, "grouping.reference", d.Grouping.Reference)
	putString(out, "extractor.key_pattern", d.Extractor.KeyPattern)
	putString(out, "importer.failure_mode", d.Importer.FailureMode)
	putString(out, "importer.uri_scheme", d.Importer.URIScheme)
	putString(out, "log.format", d.Log.Format)
	putString(out, "extractor.s3_region", d.Extractor.S3Region)
	putString(out, "extractor.s3_endpoint", d.Extractor.S3Endpoint)
	putBool(out, "extractor.object_metadata", d.Extractor.ObjectMetadata)
	putBool(out, "extractor.s3_path_style", d.Extractor.S3PathStyle)
	putBool(out, "log.verbose", d.Log.Verbose)
	if d.Extractor.Tags != nil {
		out["extractor.tags"] = d.Extractor.Tags
	}

	// TOML integers decode as int64, floats as float64.
	switch v := d.Catalog.RequestsPerSecond.(type) {
	case nil:
	case int64:
		out["catalog.requests_per_second"] = float64(v)
	case float64:
		out["catalog.requests_per_second"] = v
	default:
		return nil, fmt.Errorf("catalog.requests_per_second must be a number, got %T", v)
	}
	return out, nil
}

func putString(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func putBool(m map[string]any, key string, v *bool) {
	if v != nil {
		m[key] = *v
	}
}

// describe renders go-toml errors with their position where available.
func describe(err error) string {
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) {
		return strict.String()
	}
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Sprintf("line %d column %d: %s", row, col, decodeErr.Error())
	}
	return err.Error()
}
