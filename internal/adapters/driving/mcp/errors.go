// Package mcp provides an MCP (Model Context Protocol) server adapter for kbbot.
// It lets AI assistants look up knowledge base documents by title.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
