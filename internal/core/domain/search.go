package domain

// Search limits applied when settings do not override them.
const (
	// DefaultResultLimit caps the results of one search.
	DefaultResultLimit = 5

	// DefaultPerQueryLimit caps the matches contributed by one expansion.
	DefaultPerQueryLimit = 5
)

// NoResultsMessage is the answer given when nothing matches.
const NoResultsMessage = "No results found."

// SearchOptions configures a search.
type SearchOptions struct {
	// Limit is the maximum number of results overall.
	Limit int

	// PerQueryLimit is the maximum number of matches one expansion adds.
	PerQueryLimit int

	// FuzzyThreshold enables the similarity fallback for expansions that
	// found nothing by exact or substring match. Keys scoring at or above
	// the threshold contribute. Zero disables the fallback.
	FuzzyThreshold float64
}

// WithDefaults returns o with unset limits replaced by the defaults.
func (o SearchOptions) WithDefaults() SearchOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultResultLimit
	}
	if o.PerQueryLimit <= 0 {
		o.PerQueryLimit = DefaultPerQueryLimit
	}
	return o
}

// AnswerFormat selects how an answer is rendered.
type AnswerFormat string

// Available answer formats.
const (
	// AnswerText renders entries as plain text separated by a divider.
	AnswerText AnswerFormat = "text"

	// AnswerHTML renders entries as the HTML fragment a web page embeds.
	AnswerHTML AnswerFormat = "html"
)

// IsValid returns true if the format is recognised.
func (f AnswerFormat) IsValid() bool {
	return f == AnswerText || f == AnswerHTML
}
