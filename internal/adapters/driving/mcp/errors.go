// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets an assistant import individual objects and preview which
// dataset a file would be grouped into.
package mcp

import "errors"

var (
	// ErrMissingDispatcher is returned when the dispatcher is not provided.
	ErrMissingDispatcher = errors.New("mcp: event dispatcher is required")

	// ErrMissingGrouping is returned when the grouping service is not provided.
	ErrMissingGrouping = errors.New("mcp: grouping service is required")
)
