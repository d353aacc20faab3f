package html

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelector lists the elements treated as paragraphs.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, pre, blockquote, td"

// skipSelector lists elements whose text is never shown to a reader.
const skipSelector = "script, style, noscript, head, svg"

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Paragraphs returns the text of each block element in document order.
// Nested blocks are reported once, by their innermost element. A page
// with no block elements yields its body text as a single paragraph.
func (n *Normaliser) Paragraphs(data []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc.Find(skipSelector).Remove()

	var out []string
	doc.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		if sel.Find(blockSelector).Length() > 0 {
			return
		}
		if text := collapse(sel.Text()); text != "" {
			out = append(out, text)
		}
	})

	if len(out) == 0 {
		if text := collapse(doc.Find("body").Text()); text != "" {
			out = append(out, text)
		}
	}
	return out, nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
