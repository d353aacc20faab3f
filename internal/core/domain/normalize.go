package domain

import (
	"strings"
	"unicode"
)

// NormalizeTitle canonicalizes a document title or query into an index key.
//
// The key is lower-cased, stripped of every rune that is not a word
// character (letter, digit, underscore), whitespace, or hyphen, and has its
// whitespace runs collapsed to single spaces with no leading or trailing
// space. Stripping happens before collapsing so the result is a fixed point:
// NormalizeTitle(NormalizeTitle(s)) == NormalizeTitle(s).
func NormalizeTitle(title string) string {
	if title == "" {
		return ""
	}

	lower := strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if isWordRune(r) || unicode.IsSpace(r) || r == '-' {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
