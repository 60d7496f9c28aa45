package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for importer resources.
	uriScheme = "s3-importer://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Effective importer settings, with the API key redacted",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)
}

// settingsView is the redacted settings document.
type settingsView struct {
	Endpoint          string   `json:"endpoint"`
	OrgID             string   `json:"org_id,omitempty"`
	APIKeySet         bool     `json:"api_key_set"`
	RequestsPerSecond float64  `json:"requests_per_second"`
	Timeout           string   `json:"timeout"`
	GroupingReference string   `json:"grouping_reference"`
	FailureMode       string   `json:"failure_mode"`
	URIScheme         string   `json:"uri_scheme"`
	KeyPattern        string   `json:"key_pattern,omitempty"`
	ObjectMetadata    bool     `json:"object_metadata"`
	Tags              []string `json:"tags,omitempty"`
}

// handleSettingsResource returns the effective settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings := s.ports.Settings
	if settings == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	view := settingsView{
		Endpoint:          settings.Catalog.Endpoint,
		OrgID:             settings.Catalog.OrgID,
		APIKeySet:         settings.Catalog.APIKey != "",
		RequestsPerSecond: settings.Catalog.RequestsPerSecond,
		Timeout:           settings.Catalog.Timeout.String(),
		GroupingReference: settings.Grouping.Reference.String(),
		FailureMode:       settings.FailureMode.String(),
		URIScheme:         settings.URIScheme,
		KeyPattern:        settings.Extractor.KeyPattern,
		ObjectMetadata:    settings.Extractor.ObjectMetadata,
		Tags:              settings.Extractor.Tags,
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling settings: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
