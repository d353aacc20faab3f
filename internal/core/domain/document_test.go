package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentURL(t *testing.T) {
	tests := []struct {
		name     string
		template string
		id       string
		want     string
	}{
		{
			name:     "default template",
			template: "",
			id:       "1AbC_d-9",
			want:     "https://docs.google.com/document/d/1AbC_d-9/edit",
		},
		{
			name:     "custom template",
			template: "https://kb.example.com/docs/{id}",
			id:       "42",
			want:     "https://kb.example.com/docs/42",
		},
		{
			name:     "hierarchical id keeps slashes",
			template: "https://github.com/acme/wiki/blob/main/{id}",
			id:       "guides/vpn setup.md",
			want:     "https://github.com/acme/wiki/blob/main/guides/vpn%20setup.md",
		},
		{
			name:     "template without placeholder",
			template: "https://kb.example.com/",
			id:       "42",
			want:     "https://kb.example.com/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DocumentURL(tt.template, tt.id))
		})
	}
}

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"blank lines only", "\n  \n\t\n", nil},
		{"single", "hello", []string{"hello"}},
		{"joins lines", "one\n  two  \nthree", []string{"one two three"}},
		{"several", "a\n\n\nb\r\n\r\nc\n", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitParagraphs(tt.text))
		})
	}
}
