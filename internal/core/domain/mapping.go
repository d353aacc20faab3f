package domain

// QueryMapping substitutes canonical document titles for one exact phrase.
type QueryMapping struct {
	// Phrase is matched against the trimmed, lower-cased query.
	Phrase string `toml:"phrase" json:"phrase"`

	// Titles are searched, in order, after the literal query.
	Titles []string `toml:"titles" json:"titles"`
}

// QueryMappings is the static expansion table. Order matters: expansions
// are produced in table order.
type QueryMappings []QueryMapping

// DefaultQueryMappings returns the table shipped with kbbot.
func DefaultQueryMappings() QueryMappings {
	return QueryMappings{
		{
			Phrase: "how to reset password",
			Titles: []string{"Password Reset Instructions"},
		},
	}
}
