package mcp

import (
	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driving"
)

// Ports aggregates everything the MCP server needs.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Dispatcher imports objects.
	Dispatcher driving.EventDispatcher

	// Grouping previews dataset queries.
	Grouping driving.GroupingService

	// Settings are exposed, redacted, as a resource. Optional.
	Settings *domain.ImporterSettings
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Dispatcher == nil {
		return ErrMissingDispatcher
	}
	if p.Grouping == nil {
		return ErrMissingGrouping
	}
	return nil
}
