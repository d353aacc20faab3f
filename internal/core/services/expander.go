package services

import (
	"strings"

	"github.com/custodia-labs/kbbot/internal/core/domain"
)

// QueryExpander maps known user phrasings to canonical document titles.
type QueryExpander struct {
	mappings domain.QueryMappings
}

// NewQueryExpander creates an expander over mappings. The table is used in
// the order given.
func NewQueryExpander(mappings domain.QueryMappings) *QueryExpander {
	return &QueryExpander{mappings: mappings}
}

// Expand returns the canonical titles mapped to query. The query matches a
// phrase when both are equal after trimming and lower-casing; there is no
// partial matching. Titles of every matching phrase are concatenated in
// table order.
func (e *QueryExpander) Expand(query string) []string {
	if e == nil {
		return nil
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var titles []string
	for _, m := range e.mappings {
		if strings.ToLower(strings.TrimSpace(m.Phrase)) == q {
			titles = append(titles, m.Titles...)
		}
	}
	return titles
}

// Len returns the number of phrases in the table.
func (e *QueryExpander) Len() int {
	if e == nil {
		return 0
	}
	return len(e.mappings)
}
