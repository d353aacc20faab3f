package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormaliser_Paragraphs(t *testing.T) {
	doc := "---\ntitle: VPN\n---\n# VPN Setup\nInstall the **client** from [the portal](https://example.com).\n\n" +
		"```sh\nvpn connect\n```\n\n> Ask IT for `access`.\n\n- one\n- two\n\n1. first\n2. second\n"

	got, err := New().Paragraphs([]byte(doc))

	require.NoError(t, err)
	assert.Equal(t, []string{
		"VPN Setup",
		"Install the client from the portal.",
		"Ask IT for access.",
		"one two",
		"first second",
	}, got)
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"image removed", "See ![diagram](d.png) here", "See  here"},
		{"italic", "an *important* note", "an important note"},
		{"underscores in words kept", "snake_case_name", "snake_case_name"},
		{"horizontal rule", "above\n\n---\n\nbelow", "above\n\n\n\nbelow"},
		{"heading levels", "### Deep", "Deep"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripMarkdown(tt.input))
		})
	}
}

func TestNormaliser_Empty(t *testing.T) {
	got, err := New().Paragraphs(nil)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNormaliser_SupportedMIMETypes(t *testing.T) {
	assert.Equal(t, []string{"text/markdown", "text/x-markdown"}, New().SupportedMIMETypes())
}
