package drive

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/custodia-labs/kbbot/internal/connectors/google"
	"github.com/custodia-labs/kbbot/internal/core/domain"
	"github.com/custodia-labs/kbbot/internal/core/ports/driven"
	"github.com/custodia-labs/kbbot/internal/logger"
)

// Drive MIME types used in folder queries.
const (
	MimeTypeGoogleDoc = "application/vnd.google-apps.document"
	MimeTypeFolder    = "application/vnd.google-apps.folder"
)

// pageSize is the largest page files.list accepts.
const pageSize = 1000

const fileFields = "id, name, mimeType, modifiedTime"

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store is a DocumentStore over Google Drive.
//
// Metadata returned by folder listings is cached, so the builder's
// per-document metadata lookup usually costs no extra request.
type Store struct {
	files   *drive.Service
	docs    *docs.Service
	limiter *google.RateLimiter

	mu    sync.RWMutex
	cache map[string]*domain.DocumentMetadata
}

// New creates a Store from ready-made API services.
func New(files *drive.Service, docsSvc *docs.Service, limiter *google.RateLimiter) *Store {
	if limiter == nil {
		limiter = google.NewRateLimiter()
	}
	return &Store{
		files:   files,
		docs:    docsSvc,
		limiter: limiter,
		cache:   make(map[string]*domain.DocumentMetadata),
	}
}

// NewFromOptions creates the Drive and Docs services with opts and wraps
// them in a Store throttled to requestsPerSecond.
func NewFromOptions(ctx context.Context, requestsPerSecond float64, opts ...option.ClientOption) (*Store, error) {
	files, err := google.NewDriveService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	docsSvc, err := google.NewDocsService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create docs service: %w", err)
	}

	limiter := google.NewRateLimiterWithConfig(google.RateLimitConfig{
		RequestsPerSecond: requestsPerSecond,
		BurstSize:         google.DefaultRateLimit.BurstSize,
	})
	return New(files, docsSvc, limiter), nil
}

// ListChildDocuments returns the Google Docs directly inside folderID.
func (s *Store) ListChildDocuments(ctx context.Context, folderID string) ([]string, error) {
	return s.listChildren(ctx, folderID, MimeTypeGoogleDoc)
}

// ListChildFolders returns the folders directly inside folderID.
func (s *Store) ListChildFolders(ctx context.Context, folderID string) ([]string, error) {
	return s.listChildren(ctx, folderID, MimeTypeFolder)
}

func (s *Store) listChildren(ctx context.Context, folderID, mimeType string) ([]string, error) {
	q := fmt.Sprintf("'%s' in parents and mimeType = '%s' and trashed = false", escapeQuery(folderID), mimeType)

	var ids []string
	pageToken := ""
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := s.files.Files.List().
			Context(ctx).
			Q(q).
			Fields("nextPageToken, files(" + fileFields + ")").
			PageSize(pageSize).
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, s.wrap(fmt.Sprintf("list folder %s", folderID), err)
		}

		for _, f := range resp.Files {
			ids = append(ids, f.Id)
			if mimeType != MimeTypeFolder {
				s.remember(f)
			}
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	logger.Debug("drive: folder %s has %d children of type %s", folderID, len(ids), mimeType)
	return ids, nil
}

// GetDocumentMetadata returns cached listing metadata or fetches the file.
func (s *Store) GetDocumentMetadata(ctx context.Context, id string) (*domain.DocumentMetadata, error) {
	s.mu.RLock()
	meta, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return meta, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	f, err := s.files.Files.Get(id).
		Context(ctx).
		Fields(fileFields).
		SupportsAllDrives(true).
		Do()
	if err != nil {
		return nil, s.wrap(fmt.Sprintf("get file %s", id), err)
	}

	return s.remember(f), nil
}

// GetDocumentBodyParagraphs reads the document through the Docs API and
// returns the text of each body paragraph without its trailing newline.
func (s *Store) GetDocumentBodyParagraphs(ctx context.Context, id string) ([]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	doc, err := s.docs.Documents.Get(id).Context(ctx).Do()
	if err != nil {
		return nil, s.wrap(fmt.Sprintf("get document %s", id), err)
	}

	return Paragraphs(doc), nil
}

// Paragraphs extracts the plain text of every paragraph in doc's body.
// Tables, section breaks and other structural elements are skipped.
func Paragraphs(doc *docs.Document) []string {
	if doc == nil || doc.Body == nil {
		return nil
	}

	var out []string
	for _, el := range doc.Body.Content {
		if el.Paragraph == nil {
			continue
		}
		var b strings.Builder
		for _, pe := range el.Paragraph.Elements {
			if pe.TextRun != nil {
				b.WriteString(pe.TextRun.Content)
			}
		}
		out = append(out, strings.TrimSuffix(b.String(), "\n"))
	}
	return out
}

func (s *Store) remember(f *drive.File) *domain.DocumentMetadata {
	meta := &domain.DocumentMetadata{
		ID:       f.Id,
		Name:     f.Name,
		MIMEType: f.MimeType,
	}
	if f.ModifiedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
			meta.LastUpdated = &t
		}
	}

	s.mu.Lock()
	s.cache[f.Id] = meta
	s.mu.Unlock()
	return meta
}

func (s *Store) wrap(op string, err error) error {
	if google.IsRateLimited(err) {
		s.limiter.RecordRateLimitError(0)
	}
	return fmt.Errorf("%s: %w", op, google.WrapError(err))
}

// escapeQuery escapes a value for use inside a single-quoted Drive query.
func escapeQuery(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `'`, `\'`)
}
