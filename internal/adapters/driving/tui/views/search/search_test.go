package search

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kbbot/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kbbot/internal/core/domain"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	SearchFunc func(ctx context.Context, query string) ([]domain.DocumentEntry, error)
	queries    []string
}

func (m *MockSearchService) Search(ctx context.Context, query string) ([]domain.DocumentEntry, error) {
	m.queries = append(m.queries, query)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return []domain.DocumentEntry{}, nil
}

func (m *MockSearchService) Ask(context.Context, string, domain.AnswerFormat) (string, error) {
	return "", nil
}

func (m *MockSearchService) Titles(context.Context) ([]string, error) {
	return nil, nil
}

func testResults() []domain.DocumentEntry {
	updated := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	return []domain.DocumentEntry{
		{
			ID: "1", Name: "Password Reset Instructions", URL: "https://docs.example/1",
			LastUpdated: &updated, Snippet: "Open the account page.",
		},
		{ID: "2", Name: "VPN Setup", URL: "https://docs.example/2"},
	}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func readyView(svc *MockSearchService) *View {
	v := NewView(nil, nil, svc)
	v.SetDimensions(100, 40)
	return v
}

func typeQuery(v *View, q string) {
	for _, r := range q {
		v.Update(runes(string(r)))
	}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, &MockSearchService{})

	require.NotNil(t, v)
	assert.True(t, v.InputFocused())
	assert.False(t, v.Ready())
	assert.NotNil(t, v.Init())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_WithContext(t *testing.T) {
	v := NewView(nil, nil, nil)
	assert.Same(t, v, v.WithContext(context.Background()))
}

func TestView_EnterSubmitsQuery(t *testing.T) {
	svc := &MockSearchService{
		SearchFunc: func(context.Context, string) ([]domain.DocumentEntry, error) {
			return testResults(), nil
		},
	}
	v := readyView(svc)
	typeQuery(v, "reset password")

	_, cmd := v.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)
	msg := cmd()

	completed, ok := msg.(messages.SearchCompleted)
	require.True(t, ok)
	assert.Equal(t, "reset password", completed.Query)
	assert.Len(t, completed.Results, 2)
	assert.Equal(t, []string{"reset password"}, svc.queries)
	assert.False(t, v.InputFocused())
}

func TestView_EnterWithBlankQueryDoesNothing(t *testing.T) {
	v := readyView(&MockSearchService{})
	typeQuery(v, "   ")

	_, cmd := v.Update(key(tea.KeyEnter))

	assert.Nil(t, cmd)
	assert.True(t, v.InputFocused())
}

func TestView_SearchCompleted(t *testing.T) {
	v := readyView(&MockSearchService{})

	v.Update(messages.SearchCompleted{Results: testResults()})

	assert.Len(t, v.Results(), 2)
	assert.NoError(t, v.Err())
	assert.False(t, v.InputFocused())

	out := v.View()
	assert.Contains(t, out, "Password Reset Instructions")
	assert.Contains(t, out, "Open the account page.")
	assert.Contains(t, out, "Updated 2024-03-01 09:30")
	assert.Contains(t, out, "2 results")
}

func TestView_SearchCompletedWithError(t *testing.T) {
	v := readyView(&MockSearchService{})

	v.Update(messages.SearchCompleted{Err: errors.New("index unavailable")})

	require.Error(t, v.Err())
	assert.Contains(t, v.View(), "index unavailable")
}

func TestView_ErrorOccurred(t *testing.T) {
	v := readyView(&MockSearchService{})

	v.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, v.Err(), "boom")
}

func TestView_NoService(t *testing.T) {
	v := NewView(nil, nil, nil)
	cmd := v.performSearch("x")

	msg := cmd()
	errMsg, ok := msg.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, ErrNoSearchService)
}

func TestView_NavigateResults(t *testing.T) {
	v := readyView(&MockSearchService{})
	v.Update(messages.SearchCompleted{Results: testResults()})

	v.Update(runes("j"))
	assert.Equal(t, 1, v.SelectedIndex())
	assert.Contains(t, v.View(), "https://docs.example/2")

	v.Update(key(tea.KeyUp))
	assert.Equal(t, 0, v.SelectedIndex())

	v.Update(key(tea.KeyDown))
	v.Update(runes("k"))
	assert.Equal(t, 0, v.SelectedIndex())
}

func TestView_NewQuery(t *testing.T) {
	v := readyView(&MockSearchService{})
	typeQuery(v, "vpn")
	v.Update(messages.SearchCompleted{Results: testResults()})

	v.Update(runes("n"))

	assert.True(t, v.InputFocused())
	assert.Empty(t, v.Query())
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := readyView(&MockSearchService{})

	_, cmd := v.Update(key(tea.KeyEsc))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_SearchRequested(t *testing.T) {
	svc := &MockSearchService{}
	v := readyView(svc)

	_, cmd := v.Update(messages.SearchRequested{Query: "Expense Policy"})
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, "Expense Policy", v.Query())
	assert.Equal(t, []string{"Expense Policy"}, svc.queries)
}

func TestView_Reset(t *testing.T) {
	v := readyView(&MockSearchService{})
	typeQuery(v, "vpn")
	v.Update(messages.SearchCompleted{Err: errors.New("boom")})

	v.Reset()

	assert.Empty(t, v.Query())
	assert.Empty(t, v.Results())
	assert.NoError(t, v.Err())
	assert.True(t, v.InputFocused())
}
