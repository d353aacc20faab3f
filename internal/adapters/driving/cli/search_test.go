package cli

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kbbot/internal/core/domain"
)

func sampleEntries() []domain.DocumentEntry {
	updated := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	return []domain.DocumentEntry{
		{ID: "1", Name: "Password Reset Instructions", URL: "https://docs.example/1", Snippet: "Step one", LastUpdated: &updated},
		{ID: "2", Name: "VPN Setup", URL: "https://docs.example/2"},
	}
}

func TestAsk_PlainText(t *testing.T) {
	fake := newFakeRuntime()
	fake.search.results = sampleEntries()

	out, err := run(t, fake, "ask", "reset", "my", "password")

	require.NoError(t, err)
	assert.Equal(t, []string{"reset my password"}, fake.search.queries)
	assert.Equal(t, domain.AnswerText, fake.search.format)
	assert.Contains(t, out, "Password Reset Instructions\nhttps://docs.example/1\nStep one")
	assert.Contains(t, out, "----------")
}

func TestAsk_HTML(t *testing.T) {
	fake := newFakeRuntime()
	fake.search.results = sampleEntries()

	out, err := run(t, fake, "ask", "--html", "vpn")

	require.NoError(t, err)
	assert.Equal(t, domain.AnswerHTML, fake.search.format)
	assert.Contains(t, out, "<b>VPN Setup</b>")
}

func TestAsk_NoResults(t *testing.T) {
	out, err := run(t, newFakeRuntime(), "ask", "nothing")

	require.NoError(t, err)
	assert.Contains(t, out, domain.NoResultsMessage)
}

func TestAsk_RequiresQuery(t *testing.T) {
	_, err := run(t, newFakeRuntime(), "ask")
	assert.Error(t, err)
}

func TestAsk_Error(t *testing.T) {
	fake := newFakeRuntime()
	fake.search.err = errors.New("boom")

	_, err := run(t, fake, "ask", "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ask failed")
}

func TestSearch_Table(t *testing.T) {
	fake := newFakeRuntime()
	fake.search.results = sampleEntries()

	out, err := run(t, fake, "search", "vpn")

	require.NoError(t, err)
	assert.Contains(t, out, "[1] Password Reset Instructions")
	assert.Contains(t, out, "updated 2024-05-02")
	assert.Contains(t, out, "[2] VPN Setup")
}

func TestSearch_JSON(t *testing.T) {
	fake := newFakeRuntime()
	fake.search.results = sampleEntries()

	out, err := run(t, fake, "search", "--json", "vpn")
	require.NoError(t, err)

	var decoded []domain.DocumentEntry
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded, 2)
	assert.Equal(t, "VPN Setup", decoded[1].Name)
}

func TestSearch_Empty(t *testing.T) {
	out, err := run(t, newFakeRuntime(), "search", "vpn")

	require.NoError(t, err)
	assert.Contains(t, out, domain.NoResultsMessage)
}

func TestTitles(t *testing.T) {
	fake := newFakeRuntime()
	fake.search.titles = []string{"VPN Setup", "Expense Policy"}

	out, err := run(t, fake, "titles")
	require.NoError(t, err)
	assert.Equal(t, "VPN Setup\nExpense Policy\n", out)

	out, err = run(t, fake, "titles", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `["VPN Setup","Expense Policy"]`, out)
}

func TestStyledAnswer(t *testing.T) {
	assert.Equal(t, domain.NoResultsMessage, styledAnswer(nil))

	out := styledAnswer(sampleEntries())
	assert.Contains(t, out, "Password Reset Instructions")
	assert.Contains(t, out, "https://docs.example/2")
	assert.Contains(t, out, "Step one")
}
