package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kbbot/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kbbot/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kbbot/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/kbbot/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/kbbot/internal/adapters/driving/tui/views/titles"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView   *menu.View
	searchView *search.View
	titlesView *titles.View

	currentView messages.ViewType

	// notice is the outcome of the last rebuild, shown under the menu.
	notice     string
	refreshing bool
	err        error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s),
		searchView:  search.NewView(s, nil, ports.Search),
		titlesView:  titles.NewView(s, ports.Search),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.titlesView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("kbbot"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewSearch:
			a.searchView.Reset()
			return a, a.searchView.Init()
		case messages.ViewTitles:
			return a, a.titlesView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.SearchRequested:
		a.currentView = messages.ViewSearch
		a.searchView.Reset()
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.TitlesLoaded:
		a.titlesView, cmd = a.titlesView.Update(msg)
		return a, cmd

	case messages.RefreshRequested:
		if a.refreshing {
			return a, nil
		}
		a.refreshing = true
		a.notice = "Rebuilding index..."
		return a, a.refresh()

	case messages.IndexRefreshed:
		a.refreshing = false
		if msg.Err != nil {
			a.err = msg.Err
			a.notice = "Rebuild failed: " + msg.Err.Error()
		} else {
			a.err = nil
			a.notice = fmt.Sprintf("Index rebuilt: %d unique titles", msg.Report.UniqueTitles)
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err

	case messages.Quit:
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewTitles:
		a.titlesView, cmd = a.titlesView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

func (a *App) refresh() tea.Cmd {
	index := a.ports.Index
	ctx := a.ctx
	return func() tea.Msg {
		if index == nil {
			return messages.IndexRefreshed{Err: ErrIndexUnavailable}
		}
		report, err := index.Refresh(ctx, true)
		return messages.IndexRefreshed{Report: report, Err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewTitles:
		return a.titlesView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}

	out := a.menuView.View()
	if a.notice != "" {
		style := a.styles.Success
		if a.err != nil {
			style = a.styles.Error
		} else if a.refreshing {
			style = a.styles.Muted
		}
		out += "\n\n" + style.Render(a.notice)
	}
	return out
}

func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Ask:
  (type)      Enter a title or question
  enter       Search the index
  esc         Back to Menu

Results:
  j/k, ↑/↓    Navigate results
  n           New question

Titles:
  enter       Ask for the highlighted title
  r           Reload

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Notice returns the outcome of the last rebuild.
func (a *App) Notice() string {
	return a.notice
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.titlesView.SetDimensions(width, height)
}
