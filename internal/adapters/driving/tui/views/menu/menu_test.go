package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kbbot/internal/adapters/driving/tui/messages"
)

func press(v *View, k string) (*View, tea.Cmd) {
	switch k {
	case "enter":
		return v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	case "up":
		return v.Update(tea.KeyMsg{Type: tea.KeyUp})
	case "down":
		return v.Update(tea.KeyMsg{Type: tea.KeyDown})
	default:
		return v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
}

func TestNewView(t *testing.T) {
	v := NewView(nil)

	require.NotNil(t, v)
	assert.Len(t, v.Items(), 5)
	assert.Equal(t, 0, v.Selected())
	assert.Nil(t, v.Init())
}

func TestView_NotReady(t *testing.T) {
	assert.Equal(t, "Initialising...", NewView(nil).View())
}

func TestView_Render(t *testing.T) {
	v := NewView(nil)
	v.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	out := v.View()
	assert.Contains(t, out, "kbbot")
	assert.Contains(t, out, "> Ask")
	assert.Contains(t, out, "Browse titles")
	assert.Contains(t, out, "Rebuild index")
}

func TestView_Navigation(t *testing.T) {
	v := NewView(nil)

	v, _ = press(v, "up")
	assert.Equal(t, 0, v.Selected())

	v, _ = press(v, "j")
	v, _ = press(v, "down")
	assert.Equal(t, 2, v.Selected())

	v, _ = press(v, "k")
	assert.Equal(t, 1, v.Selected())

	for range 10 {
		v, _ = press(v, "j")
	}
	assert.Equal(t, len(v.Items())-1, v.Selected())
}

func TestView_SelectEmitsItemMessage(t *testing.T) {
	tests := []struct {
		downs int
		want  tea.Msg
	}{
		{0, messages.ViewChanged{View: messages.ViewSearch}},
		{1, messages.ViewChanged{View: messages.ViewTitles}},
		{2, messages.RefreshRequested{}},
		{3, messages.ViewChanged{View: messages.ViewHelp}},
		{4, messages.Quit{}},
	}
	for _, tt := range tests {
		v := NewView(nil)
		for range tt.downs {
			v, _ = press(v, "j")
		}

		_, cmd := press(v, "enter")

		require.NotNil(t, cmd)
		assert.Equal(t, tt.want, cmd())
	}
}

func TestView_QuitKey(t *testing.T) {
	_, cmd := press(NewView(nil), "q")

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
