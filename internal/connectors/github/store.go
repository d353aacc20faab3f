package github

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/kbbot/internal/core/domain"
	"github.com/custodia-labs/kbbot/internal/core/ports/driven"
	"github.com/custodia-labs/kbbot/internal/normalisers"
)

// RootFolder is the folder id of the repository root.
const RootFolder = "/"

// MIME types of the files treated as documents.
const (
	MimeTypeMarkdown = "text/markdown"
	MimeTypeText     = "text/plain"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store is a DocumentStore over one repository at one ref.
//
// A directory listing serves both ListChildDocuments and ListChildFolders
// for the same folder, so each directory costs a single request.
type Store struct {
	client *Client
	owner  string
	repo   string
	ref    string

	mu       sync.Mutex
	listings map[string][]*gh.RepositoryContent
}

// New creates a store reading owner/repo at ref. An empty ref means the
// default branch.
func New(client *Client, owner, repo, ref string) *Store {
	return &Store{
		client:   client,
		owner:    owner,
		repo:     repo,
		ref:      ref,
		listings: make(map[string][]*gh.RepositoryContent),
	}
}

// URLTemplate returns the blob page template for documents of this store.
func (s *Store) URLTemplate() string {
	ref := s.ref
	if ref == "" {
		ref = "HEAD"
	}
	return fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s", s.owner, s.repo, ref, domain.URLPlaceholder)
}

// ListChildDocuments returns the markdown and text files in folderID.
func (s *Store) ListChildDocuments(ctx context.Context, folderID string) ([]string, error) {
	entries, err := s.list(ctx, folderID)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, e := range entries {
		if e.GetType() == "file" && isDocument(e.GetName()) {
			ids = append(ids, e.GetPath())
		}
	}
	return ids, nil
}

// ListChildFolders returns the directories in folderID.
func (s *Store) ListChildFolders(ctx context.Context, folderID string) ([]string, error) {
	entries, err := s.list(ctx, folderID)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, e := range entries {
		if e.GetType() == "dir" {
			ids = append(ids, e.GetPath())
		}
	}
	return ids, nil
}

// GetDocumentMetadata names a document after its file, without extension,
// and dates it by the last commit touching it.
func (s *Store) GetDocumentMetadata(ctx context.Context, id string) (*domain.DocumentMetadata, error) {
	p := cleanPath(id)
	if p == "" {
		return nil, fmt.Errorf("%s is the repository root", id)
	}

	updated, err := s.client.LastCommitTime(ctx, s.owner, s.repo, p, s.ref)
	if err != nil {
		return nil, err
	}

	base := path.Base(p)
	return &domain.DocumentMetadata{
		ID:          p,
		Name:        strings.TrimSuffix(base, path.Ext(base)),
		MIMEType:    detectFileMIMEType(base),
		LastUpdated: updated,
	}, nil
}

// GetDocumentBodyParagraphs normalises the file by its MIME type.
func (s *Store) GetDocumentBodyParagraphs(ctx context.Context, id string) ([]string, error) {
	content, err := s.client.GetFileContent(ctx, s.owner, s.repo, cleanPath(id), s.ref)
	if err != nil {
		return nil, err
	}
	return normalisers.Default().Paragraphs(detectFileMIMEType(id), []byte(content))
}

func (s *Store) list(ctx context.Context, folderID string) ([]*gh.RepositoryContent, error) {
	p := cleanPath(folderID)

	s.mu.Lock()
	cached, ok := s.listings[p]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	entries, err := s.client.ListDirectory(ctx, s.owner, s.repo, p, s.ref)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", folderID, err)
	}

	s.mu.Lock()
	s.listings[p] = entries
	s.mu.Unlock()
	return entries, nil
}

// cleanPath maps a folder or document id to a contents API path.
func cleanPath(id string) string {
	return strings.Trim(id, "/")
}

func isDocument(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown", ".txt":
		return true
	default:
		return false
	}
}

func detectFileMIMEType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return MimeTypeMarkdown
	default:
		return MimeTypeText
	}
}
