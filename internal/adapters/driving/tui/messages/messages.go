// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/kbbot/internal/core/domain"
)

// QueryChanged is sent when the question input changes.
type QueryChanged struct {
	Query string
}

// SearchRequested asks the search view to run Query immediately, as when
// a title is picked from the titles list.
type SearchRequested struct {
	Query string
}

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Query   string
	Results []domain.DocumentEntry
	Err     error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the question input and results view.
	ViewSearch
	// ViewTitles lists every indexed title.
	ViewTitles
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewTitles:
		return "titles"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// TitlesLoaded carries every indexed title.
type TitlesLoaded struct {
	Titles []string
	Err    error
}

// RefreshRequested starts an index rebuild.
type RefreshRequested struct{}

// IndexRefreshed reports a finished rebuild.
type IndexRefreshed struct {
	Report *domain.RefreshReport
	Err    error
}
