package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kbbot/internal/adapters/driving/tui/keymap"
)

func TestNewBar(t *testing.T) {
	b := NewBar(nil, nil)

	require.NotNil(t, b)
	assert.Equal(t, StateReady, b.State())
	assert.NotEmpty(t, b.hints)
	assert.Nil(t, b.Init())
}

func TestBar_ViewByState(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		message string
		count   int
		want    string
	}{
		{"ready", StateReady, "", 0, "Ready"},
		{"ready with message", StateReady, "Index rebuilt", 0, "Index rebuilt"},
		{"searching", StateSearching, "", 0, "Searching..."},
		{"refreshing", StateRefreshing, "", 0, "Rebuilding index..."},
		{"results", StateResults, "", 3, "3 results"},
		{"error", StateError, "boom", 0, "Error: boom"},
		{"error without message", StateError, "", 0, "Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBar(nil, nil)
			b.SetWidth(120)
			b.SetState(tt.state)
			b.SetMessage(tt.message)
			b.SetResultCount(tt.count)

			assert.Contains(t, b.View(), tt.want)
		})
	}
}

func TestBar_Hints(t *testing.T) {
	b := NewBar(nil, keymap.DefaultKeyMap().ResultsHelp())
	b.SetWidth(120)
	assert.Contains(t, b.View(), "n: new question")

	b.SetHints(keymap.DefaultKeyMap().InputHelp())
	assert.Contains(t, b.View(), "enter: ask")
}

func TestBar_Clear(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetState(StateError)
	b.SetMessage("boom")
	b.SetResultCount(2)

	b.Clear()

	assert.Equal(t, StateReady, b.State())
	assert.Empty(t, b.Message())
}
