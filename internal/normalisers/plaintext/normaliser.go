// Package plaintext provides the normaliser for plain text documents and
// the fallback for formats without a dedicated one.
package plaintext

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/kbbot/internal/core/domain"
)

// Normaliser splits plain text on blank lines.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/csv",
		"text/tab-separated-values",
		"text/x-log",
	}
}

// Paragraphs splits data on blank lines. Invalid UTF-8 is replaced so
// binary files never produce broken snippets.
func (n *Normaliser) Paragraphs(data []byte) ([]string, error) {
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	return domain.SplitParagraphs(text), nil
}
