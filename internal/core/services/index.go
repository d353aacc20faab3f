package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/kbbot/internal/core/domain"
	"github.com/custodia-labs/kbbot/internal/core/ports/driving"
	"github.com/custodia-labs/kbbot/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService rebuilds the title index and reports on the stored one.
type IndexService struct {
	builder    *IndexBuilder
	indexStore *IndexStore
	rootID     string

	now     func() time.Time
	buildID func() string
}

// NewIndexService creates an index service that builds from rootID.
func NewIndexService(builder *IndexBuilder, indexStore *IndexStore, rootID string) *IndexService {
	return &IndexService{
		builder:    builder,
		indexStore: indexStore,
		rootID:     strings.TrimSpace(rootID),
		now:        time.Now,
		buildID:    uuid.NewString,
	}
}

// Refresh rebuilds the index and replaces the stored payload.
func (s *IndexService) Refresh(ctx context.Context, includeSnippets bool) (*domain.RefreshReport, error) {
	if !domain.IsConfiguredRoot(s.rootID) {
		return nil, fmt.Errorf("%w: root folder id is not set (index.root_folder_id)", domain.ErrConfiguration)
	}

	start := s.now()

	index, stats, err := s.builder.Build(ctx, s.rootID, includeSnippets)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	builtAt := s.now().UTC()
	payload := &domain.IndexPayload{
		TS:      builtAt,
		RootID:  s.rootID,
		BuildID: s.buildID(),
		Index:   index,
	}

	if err := s.indexStore.Save(ctx, payload); err != nil {
		return nil, err
	}

	logger.Info("KB index refreshed: %d unique titles. Snippets included: %t", index.Len(), includeSnippets)

	return &domain.RefreshReport{
		BuildID:      payload.BuildID,
		RootID:       s.rootID,
		UniqueTitles: index.Len(),
		Snippets:     includeSnippets,
		Duration:     s.now().Sub(start),
		BuiltAt:      builtAt,
		Stats:        stats,
	}, nil
}

// Clear removes the stored payload. Searches return nothing until the
// next Refresh.
func (s *IndexService) Clear(ctx context.Context) error {
	if err := s.indexStore.Clear(ctx); err != nil {
		return fmt.Errorf("clear index payload: %w", err)
	}
	logger.Info("Cleared stored index")
	return nil
}

// Status describes the stored payload.
func (s *IndexService) Status(ctx context.Context) (*domain.IndexStatus, error) {
	payload, err := s.indexStore.LoadPayload(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.IndexStatus{
		BuildID:      payload.BuildID,
		RootID:       payload.RootID,
		BuiltAt:      payload.TS,
		UniqueTitles: payload.Index.Len(),
		Documents:    payload.Index.EntryCount(),
	}, nil
}
