// Package roboto implements driven.CatalogService against the Roboto REST API.
//
// Requests authenticate with a bearer API key (ideally one issued to a
// dedicated importer device, so access can be revoked without touching a
// personal account) and optionally target an organization via the
// X-Roboto-Org-Id header.
//
// The client does not retry. Failed calls are classified into the domain's
// catalog errors and returned to the caller.
package roboto
