// Package tui provides an interactive terminal user interface for kbbot.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/kbbot/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI uses.
type Ports struct {
	// Search answers questions and lists titles. Required.
	Search driving.SearchService

	// Index rebuilds the index from the menu. Optional; without it the
	// rebuild item reports ErrIndexUnavailable.
	Index driving.IndexService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(search driving.SearchService, index driving.IndexService) *Ports {
	return &Ports{Search: search, Index: index}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
