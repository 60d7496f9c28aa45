package roboto

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driven"
	"github.com/custodia-labs/s3-importer/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.CatalogService = (*Client)(nil)

const (
	// HeaderOrgID targets an organization for multi-org credentials.
	HeaderOrgID = "X-Roboto-Org-Id"

	pathCreateIfNotExists = "/v1/datasets/create_if_not_exists"
	pathImportFile        = "/v1/files/import"

	userAgent = "s3-importer"
)

// Config holds Roboto client configuration.
type Config struct {
	Endpoint string
	APIKey   string
	OrgID    string

	// RequestsPerSecond throttles requests. Zero disables throttling.
	RequestsPerSecond float64

	// Timeout bounds each request. Zero means no client-side timeout.
	Timeout time.Duration

	// BaseClient is the transport the bearer token is layered onto.
	// Defaults to http.DefaultClient.
	BaseClient *http.Client
}

// Client is the Roboto catalog client.
type Client struct {
	endpoint string
	orgID    string
	http     *http.Client
	limiter  *rate.Limiter
}

// NewClient creates a Roboto client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, domain.ErrMissingAPIKey
	}
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = domain.DefaultCatalogEndpoint
	}

	ctx := context.Background()
	if cfg.BaseClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, cfg.BaseClient)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.APIKey,
		TokenType:   "Bearer",
	})
	hc := oauth2.NewClient(ctx, ts)
	hc.Timeout = cfg.Timeout

	c := &Client{
		endpoint: endpoint,
		orgID:    cfg.OrgID,
		http:     hc,
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return c, nil
}

// EnsureDataset returns the dataset matching req.MatchQuery, creating it
// when none matches.
func (c *Client) EnsureDataset(ctx context.Context, req driven.EnsureDatasetRequest) (*domain.Dataset, error) {
	body := createIfNotExistsRequest{
		MatchRoboQLQuery: req.MatchQuery,
		CreateRequest: createDatasetRequest{
			Description: req.Description,
			DeviceID:    req.DeviceID,
			Metadata:    req.Metadata,
			Name:        req.Name,
			Tags:        req.Tags,
		},
		CreateDeviceIfMissing: req.CreateDeviceIfMissing,
	}

	var resp envelope[datasetRecord]
	if err := c.do(ctx, http.MethodPost, pathCreateIfNotExists, body, &resp); err != nil {
		return nil, fmt.Errorf("create dataset if not exists: %w", err)
	}
	if resp.Data.DatasetID == "" {
		return nil, fmt.Errorf("create dataset if not exists: %w: response has no dataset_id",
			domain.ErrCatalogUnavailable)
	}

	return &domain.Dataset{
		ID:       resp.Data.DatasetID,
		OrgID:    resp.Data.OrgID,
		Name:     resp.Data.Name,
		DeviceID: resp.Data.DeviceID,
		Created:  resp.Data.Created,
	}, nil
}

// ImportFile registers an object under a dataset.
func (c *Client) ImportFile(ctx context.Context, req driven.ImportFileRequest) error {
	body := importFileRequest{
		DatasetID:    req.DatasetID,
		URI:          req.URI,
		RelativePath: req.RelativePath,
		Description:  req.Description,
		DeviceID:     req.DeviceID,
		Metadata:     req.Metadata,
		Tags:         req.Tags,
	}

	if err := c.do(ctx, http.MethodPost, pathImportFile, body, nil); err != nil {
		return fmt.Errorf("import file %s: %w", req.URI, err)
	}
	return nil
}

// do sends a JSON request and decodes a JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.orgID != "" {
		req.Header.Set(HeaderOrgID, c.orgID)
	}

	logger.Debug("%s %s", method, path)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp, body)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: decode response: %w", domain.ErrCatalogUnavailable, err)
	}
	return nil
}
