package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchOptions_WithDefaults(t *testing.T) {
	got := SearchOptions{}.WithDefaults()
	assert.Equal(t, DefaultResultLimit, got.Limit)
	assert.Equal(t, DefaultPerQueryLimit, got.PerQueryLimit)
	assert.Zero(t, got.FuzzyThreshold)

	custom := SearchOptions{Limit: 2, PerQueryLimit: 9, FuzzyThreshold: 0.8}.WithDefaults()
	assert.Equal(t, 2, custom.Limit)
	assert.Equal(t, 9, custom.PerQueryLimit)
	assert.Equal(t, 0.8, custom.FuzzyThreshold)
}

func TestAnswerFormat_IsValid(t *testing.T) {
	assert.True(t, AnswerText.IsValid())
	assert.True(t, AnswerHTML.IsValid())
	assert.False(t, AnswerFormat("markdown").IsValid())
	assert.False(t, AnswerFormat("").IsValid())
}
