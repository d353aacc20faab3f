package domain

import (
	"net/url"
	"strings"
	"time"
)

// DefaultURLTemplate is the canonical Google Docs deep link.
// The {id} placeholder is replaced with the document identifier.
const DefaultURLTemplate = "https://docs.google.com/document/d/{id}/edit"

// URLPlaceholder marks where the document id goes in a URL template.
const URLPlaceholder = "{id}"

// DocumentEntry is one indexed document.
type DocumentEntry struct {
	// ID is the opaque, stable identifier of the source document.
	ID string `json:"id"`

	// Name is the display title, as authored.
	Name string `json:"name"`

	// URL is the canonical deep link to the document.
	URL string `json:"url"`

	// LastUpdated is the last-modification time, if the store reported one.
	LastUpdated *time.Time `json:"lastUpdated"`

	// Snippet holds the first non-empty paragraphs of the body, truncated.
	// Empty when snippets were not requested or could not be read.
	Snippet string `json:"snippet"`
}

// DocumentMetadata is what a document store reports about one document.
type DocumentMetadata struct {
	ID          string
	Name        string
	MIMEType    string
	LastUpdated *time.Time
}

// DocumentURL fills template with id. Each slash-separated segment of id is
// path-escaped so hierarchical ids (file paths, repository paths) keep
// their separators.
func DocumentURL(template, id string) string {
	if template == "" {
		template = DefaultURLTemplate
	}

	segments := strings.Split(id, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}

	return strings.ReplaceAll(template, URLPlaceholder, strings.Join(segments, "/"))
}

// SplitParagraphs splits plain text into blank-line separated paragraphs.
// Lines are trimmed and the lines of one paragraph are joined by a space.
func SplitParagraphs(text string) []string {
	var (
		out   []string
		lines []string
	)
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(lines) > 0 {
				out = append(out, strings.Join(lines, " "))
				lines = nil
			}
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) > 0 {
		out = append(out, strings.Join(lines, " "))
	}
	return out
}
