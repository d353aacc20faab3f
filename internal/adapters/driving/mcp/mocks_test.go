package mcp

import (
	"context"

	"github.com/custodia-labs/kbbot/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.DocumentEntry
	answer  string
	format  domain.AnswerFormat
	titles  []string
	err     error
}

func (m *mockSearchService) Search(_ context.Context, _ string) ([]domain.DocumentEntry, error) {
	return m.results, m.err
}

func (m *mockSearchService) Ask(_ context.Context, _ string, format domain.AnswerFormat) (string, error) {
	m.format = format
	return m.answer, m.err
}

func (m *mockSearchService) Titles(_ context.Context) ([]string, error) {
	return m.titles, m.err
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	status *domain.IndexStatus
	err    error
}

func (m *mockIndexService) Refresh(_ context.Context, _ bool) (*domain.RefreshReport, error) {
	return nil, m.err
}

func (m *mockIndexService) Status(_ context.Context) (*domain.IndexStatus, error) {
	return m.status, m.err
}

func (m *mockIndexService) Clear(_ context.Context) error {
	return m.err
}
