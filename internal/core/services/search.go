package services

import (
	"context"

	"github.com/custodia-labs/kbbot/internal/core/domain"
	"github.com/custodia-labs/kbbot/internal/core/ports/driving"
	"github.com/custodia-labs/kbbot/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService answers queries from the persisted title index.
//
// Each call loads the current payload, so a rebuild is visible to the
// next query without restarting.
type SearchService struct {
	indexStore *IndexStore
	expander   *QueryExpander
	opts       domain.SearchOptions
}

// NewSearchService creates a new search service.
// The expander may be nil, which disables query expansion.
func NewSearchService(indexStore *IndexStore, expander *QueryExpander, opts domain.SearchOptions) *SearchService {
	return &SearchService{
		indexStore: indexStore,
		expander:   expander,
		opts:       opts.WithDefaults(),
	}
}

// Search returns the best-matching entries for query.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.DocumentEntry, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload := s.indexStore.Load(ctx)
	if payload == nil {
		logger.Debug("No index available, returning no results")
		return []domain.DocumentEntry{}, nil
	}

	if expansions := s.expander.Expand(query); len(expansions) > 0 {
		logger.Debug("Expanded to %q", expansions)
	}

	results := SearchPayload(payload, s.expander, query, s.opts)
	logger.Debug("Returning %d results", len(results))
	return results, nil
}

// Ask runs Search and renders the results.
func (s *SearchService) Ask(ctx context.Context, query string, format domain.AnswerFormat) (string, error) {
	results, err := s.Search(ctx, query)
	if err != nil {
		return "", err
	}
	return RenderAnswer(results, format)
}

// Titles lists the display name of every indexed document.
func (s *SearchService) Titles(ctx context.Context) ([]string, error) {
	payload := s.indexStore.Load(ctx)
	if payload == nil {
		return []string{}, nil
	}
	return payload.Index.Titles(), nil
}
