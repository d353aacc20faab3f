package driving

import (
	"context"

	"github.com/custodia-labs/kbbot/internal/core/domain"
)

// SearchService answers queries against the persisted title index.
type SearchService interface {
	// Search returns the best-matching entries for query. A missing or
	// unreadable index yields an empty result, not an error.
	Search(ctx context.Context, query string) ([]domain.DocumentEntry, error)

	// Ask runs Search and renders the result as an answer.
	Ask(ctx context.Context, query string, format domain.AnswerFormat) (string, error)

	// Titles lists the display name of every indexed document.
	Titles(ctx context.Context) ([]string, error)
}

// IndexService rebuilds and inspects the persisted title index.
type IndexService interface {
	// Refresh rebuilds the index from the configured root folder and
	// replaces the persisted payload. It fails with domain.ErrConfiguration
	// when no root folder is configured.
	Refresh(ctx context.Context, includeSnippets bool) (*domain.RefreshReport, error)

	// Status describes the persisted index. It fails with domain.ErrNoIndex
	// when none is readable.
	Status(ctx context.Context) (*domain.IndexStatus, error)

	// Clear removes the persisted payload. Clearing when nothing is
	// stored is not an error.
	Clear(ctx context.Context) error
}
