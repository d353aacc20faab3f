package normalisers

import (
	"strings"
	"sync"

	"github.com/custodia-labs/kbbot/internal/normalisers/html"
	"github.com/custodia-labs/kbbot/internal/normalisers/markdown"
	"github.com/custodia-labs/kbbot/internal/normalisers/plaintext"
)

// Normaliser extracts the readable paragraphs of one document format.
type Normaliser interface {
	// SupportedMIMETypes lists the MIME types the normaliser accepts.
	SupportedMIMETypes() []string

	// Paragraphs splits data into paragraphs in document order. Empty
	// paragraphs may be returned; callers skip them.
	Paragraphs(data []byte) ([]string, error)
}

// Registry maps MIME types to normalisers. Unknown types fall back to the
// plain text normaliser.
type Registry struct {
	byMIME   map[string]Normaliser
	fallback Normaliser
}

// NewRegistry registers ns in order; a later normaliser replaces an
// earlier one for the same MIME type.
func NewRegistry(ns ...Normaliser) *Registry {
	r := &Registry{
		byMIME:   make(map[string]Normaliser),
		fallback: plaintext.New(),
	}
	for _, n := range ns {
		for _, m := range n.SupportedMIMETypes() {
			r.byMIME[m] = n
		}
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry with every built-in normaliser.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(plaintext.New(), markdown.New(), html.New())
	})
	return defaultRegistry
}

// For returns the normaliser for mimeType. Parameters such as
// "; charset=utf-8" are ignored.
func (r *Registry) For(mimeType string) Normaliser {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	if n, ok := r.byMIME[strings.ToLower(strings.TrimSpace(mimeType))]; ok {
		return n
	}
	return r.fallback
}

// Paragraphs normalises data with the normaliser for mimeType.
func (r *Registry) Paragraphs(mimeType string, data []byte) ([]string, error) {
	return r.For(mimeType).Paragraphs(data)
}
