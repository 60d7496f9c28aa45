package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driven"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driving"
	"github.com/custodia-labs/s3-importer/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings lookup.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyCatalogAPIKey        = "catalog.api_key"
	KeyCatalogOrgID         = "catalog.org_id"
	KeyCatalogEndpoint      = "catalog.endpoint"
	KeyCatalogRateLimit     = "catalog.requests_per_second"
	KeyCatalogTimeout       = "catalog.timeout"
	KeyGroupingReference    = "grouping.reference"
	KeyExtractorPattern     = "extractor.key_pattern"
	KeyExtractorObjectMD    = "extractor.object_metadata"
	KeyExtractorTags        = "extractor.tags"
	KeyExtractorS3Region    = "extractor.s3_region"
	KeyExtractorS3Endpoint  = "extractor.s3_endpoint"
	KeyExtractorS3PathStyle = "extractor.s3_path_style"
	KeyImporterFailure      = "importer.failure_mode"
	KeyImporterURIScheme    = "importer.uri_scheme"
	KeyLogVerbose           = "log.verbose"
	KeyLogFormat            = "log.format"
)

// SettingsService resolves importer settings from layered config stores.
type SettingsService struct {
	stores []driven.ConfigStore
}

// NewSettingsService creates a settings service. Stores are given in
// increasing precedence: a key found in a later store wins.
func NewSettingsService(stores ...driven.ConfigStore) *SettingsService {
	var nonNil []driven.ConfigStore
	for _, s := range stores {
		if s != nil {
			nonNil = append(nonNil, s)
		}
	}
	return &SettingsService{stores: nonNil}
}

// Load returns validated settings.
func (s *SettingsService) Load() (*domain.ImporterSettings, error) {
	settings, err := s.LoadOffline()
	if err != nil {
		return nil, err
	}
	if settings.Catalog.APIKey == "" {
		return nil, fmt.Errorf("%w: %s is required", domain.ErrMissingAPIKey, KeyCatalogAPIKey)
	}

	if settings.Catalog.OrgID == "" {
		logger.Info("%s is not set, if you are in multiple orgs, you will need to set this", KeyCatalogOrgID)
	}

	return settings, nil
}

// LoadOffline returns validated settings without requiring catalog
// credentials, for commands that never contact the catalog.
func (s *SettingsService) LoadOffline() (*domain.ImporterSettings, error) {
	defaults := domain.DefaultImporterSettings()

	rate, err := s.getFloat(KeyCatalogRateLimit, defaults.Catalog.RequestsPerSecond)
	if err != nil {
		return nil, err
	}
	objectMetadata, err := s.getBool(KeyExtractorObjectMD, defaults.Extractor.ObjectMetadata)
	if err != nil {
		return nil, err
	}
	s3PathStyle, err := s.getBool(KeyExtractorS3PathStyle, defaults.Extractor.S3PathStyle)
	if err != nil {
		return nil, err
	}
	verbose, err := s.getBool(KeyLogVerbose, defaults.Verbose)
	if err != nil {
		return nil, err
	}

	settings := &domain.ImporterSettings{
		Catalog: domain.CatalogSettings{
			APIKey:            s.getString(KeyCatalogAPIKey, ""),
			OrgID:             s.getString(KeyCatalogOrgID, ""),
			Endpoint:          strings.TrimRight(s.getString(KeyCatalogEndpoint, defaults.Catalog.Endpoint), "/"),
			RequestsPerSecond: rate,
		},
		Grouping: domain.GroupingSettings{
			Reference: domain.ReferenceTime(s.getString(KeyGroupingReference, defaults.Grouping.Reference.String())),
		},
		Extractor: domain.ExtractorSettings{
			KeyPattern:     s.getString(KeyExtractorPattern, ""),
			ObjectMetadata: objectMetadata,
			Tags:           s.getStringSlice(KeyExtractorTags),
			S3Region:       s.getString(KeyExtractorS3Region, ""),
			S3Endpoint:     strings.TrimRight(s.getString(KeyExtractorS3Endpoint, ""), "/"),
			S3PathStyle:    s3PathStyle,
		},
		FailureMode: domain.FailureMode(s.getString(KeyImporterFailure, defaults.FailureMode.String())),
		URIScheme:   s.getString(KeyImporterURIScheme, defaults.URIScheme),
		Verbose:     verbose,
		LogFormat:   domain.LogFormat(s.getString(KeyLogFormat, string(defaults.LogFormat))),
	}

	timeout, err := s.getDuration(KeyCatalogTimeout, defaults.Catalog.Timeout)
	if err != nil {
		return nil, err
	}
	settings.Catalog.Timeout = timeout

	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

func validateSettings(settings *domain.ImporterSettings) error {
	if settings.Catalog.Endpoint == "" {
		return fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidConfig, KeyCatalogEndpoint)
	}
	if settings.Catalog.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidConfig, KeyCatalogRateLimit)
	}
	if !settings.Grouping.Reference.IsValid() {
		return fmt.Errorf("%w: %s %q (want now or event)",
			domain.ErrInvalidConfig, KeyGroupingReference, settings.Grouping.Reference)
	}
	if !settings.FailureMode.IsValid() {
		return fmt.Errorf("%w: %s %q (want fail-fast or continue)",
			domain.ErrInvalidConfig, KeyImporterFailure, settings.FailureMode)
	}
	if !settings.LogFormat.IsValid() {
		return fmt.Errorf("%w: %s %q (want text or json)",
			domain.ErrInvalidConfig, KeyLogFormat, settings.LogFormat)
	}
	if settings.URIScheme == "" || strings.Contains(settings.URIScheme, "://") {
		return fmt.Errorf("%w: %s %q", domain.ErrInvalidConfig, KeyImporterURIScheme, settings.URIScheme)
	}
	return nil
}

// storeFor returns the highest-precedence store holding key.
func (s *SettingsService) storeFor(key string) driven.ConfigStore {
	for i := len(s.stores) - 1; i >= 0; i-- {
		if _, ok := s.stores[i].Get(key); ok {
			return s.stores[i]
		}
	}
	return nil
}

func (s *SettingsService) getString(key, defaultVal string) string {
	store := s.storeFor(key)
	if store == nil {
		return defaultVal
	}
	if val := store.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

// getFloat reads a number. Stores that hold raw strings (the environment)
// are parsed, and anything that is not a number is rejected.
func (s *SettingsService) getFloat(key string, defaultVal float64) (float64, error) {
	store := s.storeFor(key)
	if store == nil {
		return defaultVal, nil
	}
	raw, _ := store.Get(key)
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s %q is not a number", domain.ErrInvalidConfig, key, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %s %v is not a number", domain.ErrInvalidConfig, key, raw)
	}
}

// getBool reads a boolean, parsing string values with parseBool.
func (s *SettingsService) getBool(key string, defaultVal bool) (bool, error) {
	store := s.storeFor(key)
	if store == nil {
		return defaultVal, nil
	}
	raw, _ := store.Get(key)
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, ok := parseBool(v)
		if !ok {
			return false, fmt.Errorf("%w: %s %q is not a boolean", domain.ErrInvalidConfig, key, v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%w: %s %v is not a boolean", domain.ErrInvalidConfig, key, raw)
	}
}

// parseBool accepts the strconv.ParseBool forms plus yes/no and on/off.
func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "on":
		return true, true
	case "no", "n", "off":
		return false, true
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	return b, err == nil
}

func (s *SettingsService) getStringSlice(key string) []string {
	store := s.storeFor(key)
	if store == nil {
		return nil
	}
	return store.GetStringSlice(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	raw := s.getString(key, "")
	if raw == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: %s %q is not a duration", domain.ErrInvalidConfig, key, raw)
	}
	return d, nil
}
