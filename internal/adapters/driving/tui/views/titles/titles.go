// Package titles provides the view listing every indexed document title.
package titles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kbbot/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kbbot/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kbbot/internal/core/ports/driving"
)

// ErrNoSearchService indicates that no search service was provided.
var ErrNoSearchService = errors.New("search service is required")

// View is the titles list view. Enter asks for the highlighted title.
type View struct {
	styles        *styles.Styles
	searchService driving.SearchService
	ctx           context.Context

	titles       []string
	selected     int
	scrollOffset int
	width        int
	height       int
	loading      bool
	err          error
}

// NewView creates a new titles view.
func NewView(s *styles.Styles, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		searchService: searchService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the titles.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	return v.loadTitles()
}

func (v *View) loadTitles() tea.Cmd {
	return func() tea.Msg {
		if v.searchService == nil {
			return messages.TitlesLoaded{Err: ErrNoSearchService}
		}
		titles, err := v.searchService.Titles(v.ctx)
		return messages.TitlesLoaded{Titles: titles, Err: err}
	}
}

// Update handles messages for the titles view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.TitlesLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.titles = msg.Titles
			v.selected = 0
			v.scrollOffset = 0
		}

	case messages.ErrorOccurred:
		v.err = msg.Err

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.titles)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if len(v.titles) == 0 {
			return v, nil
		}
		title := v.titles[v.selected]
		return v, func() tea.Msg { return messages.SearchRequested{Query: title} }
	case "r":
		return v, v.Init()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

// visibleItemCount reserves lines for the title, scroll indicator and help.
func (v *View) visibleItemCount() int {
	return max(v.height-7, 1)
}

// View renders the titles view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Indexed titles (%d)", len(v.titles))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading titles..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.titles) == 0:
		b.WriteString(v.styles.Muted.Render("The index is empty. Rebuild it from the menu."))
	default:
		visible := v.visibleItemCount()
		end := min(v.scrollOffset+visible, len(v.titles))
		for i := v.scrollOffset; i < end; i++ {
			if i == v.selected {
				b.WriteString(v.styles.Selected.Render("> " + v.titles[i]))
			} else {
				b.WriteString(v.styles.Normal.Render("  " + v.titles[i]))
			}
			b.WriteString("\n")
		}
		if len(v.titles) > visible {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]", v.scrollOffset+1, end, len(v.titles))))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("[j/k] Navigate  [Enter] Ask  [r] Reload  [Esc] Back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.adjustScroll()
}

// Titles returns the loaded titles.
func (v *View) Titles() []string {
	return v.titles
}

// Selected returns the highlighted index.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
