// Package search provides the ask view for the TUI: a question input, the
// matched documents and a detail panel for the highlighted one.
package search

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kbbot/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/kbbot/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/kbbot/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/kbbot/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kbbot/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kbbot/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kbbot/internal/core/domain"
	"github.com/custodia-labs/kbbot/internal/core/ports/driving"
)

// ErrNoSearchService indicates that no search service was provided.
var ErrNoSearchService = errors.New("search service is required")

// View represents the ask view with input, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool
}

// NewView creates a new ask view.
func NewView(s *styles.Styles, km *keymap.KeyMap, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewQueryInput(s),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km.InputHelp()),
		searchService: searchService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the ask view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchRequested:
		v.input.SetValue(msg.Query)
		return v, v.submit(msg.Query)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			query := strings.TrimSpace(v.input.Value())
			if query == "" {
				return v, nil
			}
			return v, v.submit(query)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(msg.String(), v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(msg.String(), v.keymap.NewQuery):
		v.focusInput = true
		v.input.Reset()
		v.statusbar.SetHints(v.keymap.InputHelp())
		return v, v.input.Focus()
	}
	return v, nil
}

func (v *View) submit(query string) tea.Cmd {
	v.statusbar.SetState(status.StateSearching)
	v.focusInput = false
	v.input.Blur()
	return v.performSearch(query)
}

func (v *View) performSearch(query string) tea.Cmd {
	return func() tea.Msg {
		if v.searchService == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}

		results, err := v.searchService.Search(v.ctx, query)
		return messages.SearchCompleted{Query: query, Results: results, Err: err}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.list.SetResults(msg.Results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Results))
	v.statusbar.SetHints(v.keymap.ResultsHelp())
	v.focusInput = false
	v.input.Blur()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
	v.statusbar.SetHints(v.keymap.ResultsHelp())
}

// View renders the ask view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("kbbot"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View())

	if detail := v.renderDetail(); detail != "" {
		sections = append(sections, "", detail)
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderDetail shows the full URL and snippet of the highlighted result.
func (v *View) renderDetail() string {
	if v.focusInput {
		return ""
	}
	r := v.list.SelectedResult()
	if r == nil {
		return ""
	}

	lines := []string{
		v.styles.Heading.Render(r.Name),
		v.styles.Link.Render(r.URL),
	}
	if r.LastUpdated != nil {
		lines = append(lines, v.styles.Muted.Render("Updated "+r.LastUpdated.Format("2006-01-02 15:04")))
	}
	if r.Snippet != "" {
		lines = append(lines, "", v.styles.Snippet.Render(r.Snippet))
	}

	return v.styles.Panel.Width(max(v.width-4, 20)).Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, max(height/2, 6))
	v.statusbar.SetWidth(width)
}

// Reset clears the query and results and focuses the input.
func (v *View) Reset() {
	v.input.Reset()
	v.input.Focus()
	v.list.SetResults(nil)
	v.statusbar.Clear()
	v.statusbar.SetHints(v.keymap.InputHelp())
	v.err = nil
	v.focusInput = true
}

// Query returns the current query text.
func (v *View) Query() string {
	return v.input.Value()
}

// Results returns the current results.
func (v *View) Results() []domain.DocumentEntry {
	return v.list.Results()
}

// SelectedIndex returns the highlighted result index.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// InputFocused reports whether keys go to the question input.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Ready reports whether the view has dimensions.
func (v *View) Ready() bool {
	return v.ready
}
