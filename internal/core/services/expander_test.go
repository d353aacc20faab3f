package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/kbbot/internal/core/domain"
)

func TestQueryExpander_Expand(t *testing.T) {
	e := NewQueryExpander(domain.QueryMappings{
		{Phrase: "how to reset password", Titles: []string{"Password Reset Instructions"}},
		{Phrase: "vpn", Titles: []string{"VPN Setup", "Remote Access"}},
		{Phrase: "  VPN  ", Titles: []string{"Network Guide"}},
	})

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "exact", query: "how to reset password", want: []string{"Password Reset Instructions"}},
		{name: "case and space", query: "  How To Reset Password ", want: []string{"Password Reset Instructions"}},
		{name: "all matches in order", query: "vpn", want: []string{"VPN Setup", "Remote Access", "Network Guide"}},
		{name: "no partial", query: "reset password", want: nil},
		{name: "no superstring", query: "how to reset password now", want: nil},
		{name: "empty", query: "   ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Expand(tt.query))
		})
	}
}

func TestQueryExpander_Defaults(t *testing.T) {
	e := NewQueryExpander(domain.DefaultQueryMappings())

	assert.Equal(t, []string{"Password Reset Instructions"}, e.Expand("how to reset password"))
	assert.Equal(t, 1, e.Len())
}

func TestQueryExpander_Nil(t *testing.T) {
	var e *QueryExpander

	assert.Nil(t, e.Expand("anything"))
	assert.Zero(t, e.Len())
}

func TestQueryExpander_EmptyTable(t *testing.T) {
	e := NewQueryExpander(nil)
	assert.Nil(t, e.Expand("how to reset password"))
}
