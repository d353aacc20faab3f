package driven

import (
	"context"

	"github.com/custodia-labs/kbbot/internal/core/domain"
)

// MappingStore provides the query expansion table.
type MappingStore interface {
	// Load returns the current table. Implementations fall back to
	// domain.DefaultQueryMappings when no user table exists.
	Load(ctx context.Context) (domain.QueryMappings, error)

	// Path returns where the table is read from, or "" for built-in tables.
	Path() string
}
