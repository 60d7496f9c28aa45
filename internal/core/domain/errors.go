package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// Configuration Errors.

	// ErrMissingAPIKey indicates the catalog API key was not provided.
	// The importer refuses to start without it.
	ErrMissingAPIKey = errors.New("catalog API key is not set")

	// ErrInvalidConfig indicates a configuration value could not be understood.
	ErrInvalidConfig = errors.New("invalid configuration")

	// Processing Errors.

	// ErrExtraction indicates the metadata hook could not build argument
	// bundles for a record.
	ErrExtraction = errors.New("metadata extraction failed")

	// Catalog Errors.

	// ErrCatalogUnauthorized indicates the catalog rejected the credentials.
	ErrCatalogUnauthorized = errors.New("catalog: unauthorized")

	// ErrCatalogRejected indicates the catalog refused the request as invalid.
	ErrCatalogRejected = errors.New("catalog: request rejected")

	// ErrRateLimited indicates the catalog rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrCatalogUnavailable indicates a transport failure or server-side error.
	ErrCatalogUnavailable = errors.New("catalog: unavailable")
)
