package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/kbbot/internal/core/domain"
	"github.com/custodia-labs/kbbot/internal/core/ports/driven"
	"github.com/custodia-labs/kbbot/internal/logger"
)

// BuilderConfig tunes an IndexBuilder.
type BuilderConfig struct {
	// URLTemplate builds each entry's link. Empty means domain.DefaultURLTemplate.
	URLTemplate string

	// MIMETypes lists the document types to index. Empty accepts every
	// document the store lists.
	MIMETypes []string

	// SnippetParagraphs is how many non-empty paragraphs a snippet takes.
	SnippetParagraphs int

	// SnippetChars caps the snippet length in characters.
	SnippetChars int
}

func (c BuilderConfig) withDefaults() BuilderConfig {
	if c.URLTemplate == "" {
		c.URLTemplate = domain.DefaultURLTemplate
	}
	if c.SnippetParagraphs <= 0 {
		c.SnippetParagraphs = domain.DefaultSnippetParagraphs
	}
	if c.SnippetChars <= 0 {
		c.SnippetChars = domain.DefaultSnippetChars
	}
	return c
}

// IndexBuilder walks a document store breadth-first and collects every
// document into a title index.
type IndexBuilder struct {
	store   driven.DocumentStore
	cfg     BuilderConfig
	allowed map[string]struct{}
}

// NewIndexBuilder creates a builder reading from store.
func NewIndexBuilder(store driven.DocumentStore, cfg BuilderConfig) *IndexBuilder {
	cfg = cfg.withDefaults()

	var allowed map[string]struct{}
	if len(cfg.MIMETypes) > 0 {
		allowed = make(map[string]struct{}, len(cfg.MIMETypes))
		for _, m := range cfg.MIMETypes {
			allowed[m] = struct{}{}
		}
	}

	return &IndexBuilder{store: store, cfg: cfg, allowed: allowed}
}

// Build traverses the tree under rootID and returns the resulting index.
//
// Folders are visited at most once, so cycles and multi-parent folders are
// safe. A folder or document the store cannot read is logged and skipped.
// The only error Build returns is the context's, when it is cancelled
// mid-traversal.
func (b *IndexBuilder) Build(
	ctx context.Context, rootID string, includeSnippets bool,
) (*domain.TitleIndex, domain.BuildStats, error) {
	logger.Section("Index Build")
	logger.Debug("Root: %s, snippets: %t", rootID, includeSnippets)

	index := domain.NewTitleIndex()
	var stats domain.BuildStats

	queue := []string{rootID}
	visited := map[string]struct{}{rootID: {}}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		folderID := queue[0]
		queue = queue[1:]

		docIDs, err := b.store.ListChildDocuments(ctx, folderID)
		if err != nil {
			logger.Error("Cannot open folder %s: %v", folderID, err)
			stats.FoldersSkipped++
			continue
		}
		stats.FoldersVisited++

		for _, id := range docIDs {
			b.indexDocument(ctx, index, &stats, id, includeSnippets)
		}

		children, err := b.store.ListChildFolders(ctx, folderID)
		if err != nil {
			logger.Error("Cannot list subfolders of %s: %v", folderID, err)
			continue
		}
		for _, child := range children {
			if _, seen := visited[child]; seen {
				continue
			}
			visited[child] = struct{}{}
			queue = append(queue, child)
		}
	}

	logger.Debug("Visited %d folders (%d skipped), indexed %d documents under %d titles",
		stats.FoldersVisited, stats.FoldersSkipped, stats.DocumentsIndexed, index.Len())

	return index, stats, nil
}

func (b *IndexBuilder) indexDocument(
	ctx context.Context, index *domain.TitleIndex, stats *domain.BuildStats, id string, includeSnippets bool,
) {
	if index.HasID(id) {
		stats.DuplicateIDs++
		return
	}

	meta, err := b.store.GetDocumentMetadata(ctx, id)
	if err != nil {
		logger.Warn("Skipping document %s: %v", id, err)
		stats.DocumentsIgnored++
		return
	}

	if b.allowed != nil {
		if _, ok := b.allowed[meta.MIMEType]; !ok {
			logger.Debug("Ignoring %s with type %q", id, meta.MIMEType)
			stats.DocumentsIgnored++
			return
		}
	}

	entry := domain.DocumentEntry{
		ID:          id,
		Name:        meta.Name,
		URL:         domain.DocumentURL(b.cfg.URLTemplate, id),
		LastUpdated: utcTime(meta.LastUpdated),
	}

	if includeSnippets {
		paragraphs, err := b.store.GetDocumentBodyParagraphs(ctx, id)
		if err != nil {
			logger.Debug("No snippet for %s: %v", id, err)
			stats.SnippetFailures++
		} else {
			entry.Snippet = Snippet(paragraphs, b.cfg.SnippetParagraphs, b.cfg.SnippetChars)
		}
	}

	if _, added := index.Add(entry); added {
		stats.DocumentsIndexed++
	}
}

// Snippet joins the first maxParagraphs non-empty paragraphs with newlines
// and truncates the result to maxChars characters.
func Snippet(paragraphs []string, maxParagraphs, maxChars int) string {
	kept := make([]string, 0, maxParagraphs)
	for _, p := range paragraphs {
		if len(kept) >= maxParagraphs {
			break
		}
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}

	return truncateRunes(strings.Join(kept, "\n"), maxChars)
}

func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func utcTime(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
