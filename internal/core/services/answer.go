package services

import (
	"fmt"
	"html"
	"strings"

	"github.com/custodia-labs/kbbot/internal/core/domain"
)

// AnswerDivider separates entries in a plain text answer.
const AnswerDivider = "----------"

// RenderAnswer formats search results for display. No results render as
// domain.NoResultsMessage in either format.
func RenderAnswer(results []domain.DocumentEntry, format domain.AnswerFormat) (string, error) {
	if format == "" {
		format = domain.AnswerText
	}
	if !format.IsValid() {
		return "", fmt.Errorf("%w: answer format %q", domain.ErrInvalidInput, format)
	}

	if len(results) == 0 {
		return domain.NoResultsMessage, nil
	}

	blocks := make([]string, len(results))
	for i, r := range results {
		if format == domain.AnswerHTML {
			blocks[i] = htmlBlock(r)
		} else {
			blocks[i] = textBlock(r)
		}
	}

	if format == domain.AnswerHTML {
		return strings.Join(blocks, "<hr>"), nil
	}
	return strings.Join(blocks, "\n"+AnswerDivider+"\n"), nil
}

func textBlock(r domain.DocumentEntry) string {
	var b strings.Builder
	b.WriteString(r.Name)
	b.WriteString("\n")
	b.WriteString(r.URL)
	if r.Snippet != "" {
		b.WriteString("\n")
		b.WriteString(r.Snippet)
	}
	return b.String()
}

func htmlBlock(r domain.DocumentEntry) string {
	link := html.EscapeString(r.URL)

	var b strings.Builder
	b.WriteString("<b>")
	b.WriteString(html.EscapeString(r.Name))
	b.WriteString("</b><br><a href='")
	b.WriteString(link)
	b.WriteString("' target='_blank'>")
	b.WriteString(link)
	b.WriteString("</a><br>")
	b.WriteString(strings.ReplaceAll(html.EscapeString(r.Snippet), "\n", "<br>"))
	return b.String()
}
