package tui

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrIndexUnavailable is reported when a rebuild is requested without an index service.
var ErrIndexUnavailable = errors.New("tui: index rebuild is not available")
