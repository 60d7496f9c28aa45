package driving

import "github.com/custodia-labs/s3-importer/internal/core/domain"

// SettingsService resolves importer settings once at startup.
type SettingsService interface {
	// Load returns validated settings. A missing API key yields
	// domain.ErrMissingAPIKey.
	Load() (*domain.ImporterSettings, error)

	// LoadOffline is Load without the API key requirement.
	LoadOffline() (*domain.ImporterSettings, error)
}
