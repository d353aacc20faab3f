package filesystem

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/kbbot/internal/core/domain"
	"github.com/custodia-labs/kbbot/internal/core/ports/driven"
	"github.com/custodia-labs/kbbot/internal/normalisers"
)

// URLTemplate links a document to its file.
const URLTemplate = "file://{id}"

// MaxFileSize bounds how much of a document body is read (5MB).
const MaxFileSize = 5 * 1024 * 1024

// MIME types of the files treated as documents.
const (
	MimeTypeMarkdown = "text/markdown"
	MimeTypeText     = "text/plain"
	MimeTypeHTML     = "text/html"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store is a DocumentStore over the local filesystem.
type Store struct{}

// New creates a filesystem store.
func New() *Store {
	return &Store{}
}

// ResolveRoot turns a configured root directory into the folder id the
// builder starts from.
func ResolveRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", path)
	}
	return resolved, nil
}

// ListChildDocuments returns the document files directly inside folderID,
// sorted by name.
func (s *Store) ListChildDocuments(ctx context.Context, folderID string) ([]string, error) {
	entries, err := readDir(ctx, folderID)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, e := range entries {
		path := filepath.Join(folderID, e.Name())
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if isDocument(e.Name()) {
			ids = append(ids, path)
		}
	}
	return ids, nil
}

// ListChildFolders returns the directories directly inside folderID,
// sorted by name, with symlinks resolved.
func (s *Store) ListChildFolders(ctx context.Context, folderID string) ([]string, error) {
	entries, err := readDir(ctx, folderID)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, e := range entries {
		resolved, err := filepath.EvalSymlinks(filepath.Join(folderID, e.Name()))
		if err != nil {
			continue
		}
		info, err := os.Stat(resolved)
		if err != nil || !info.IsDir() {
			continue
		}
		ids = append(ids, resolved)
	}
	return ids, nil
}

// GetDocumentMetadata names a document after its file, without extension.
func (s *Store) GetDocumentMetadata(ctx context.Context, id string) (*domain.DocumentMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(id)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", id, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", id)
	}

	base := filepath.Base(id)
	modified := info.ModTime()
	return &domain.DocumentMetadata{
		ID:          id,
		Name:        strings.TrimSuffix(base, filepath.Ext(base)),
		MIMEType:    detectMIMEType(base),
		LastUpdated: &modified,
	}, nil
}

// GetDocumentBodyParagraphs normalises the file by its MIME type.
func (s *Store) GetDocumentBodyParagraphs(ctx context.Context, id string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := readLimited(id)
	if err != nil {
		return nil, err
	}

	return normalisers.Default().Paragraphs(detectMIMEType(id), data)
}

func readDir(ctx context.Context, dir string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	visible := entries[:0]
	for _, e := range entries {
		if !isHidden(e.Name()) {
			visible = append(visible, e)
		}
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i].Name() < visible[j].Name() })
	return visible, nil
}

func readLimited(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// isDocument accepts files with a known document extension.
func isDocument(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".txt", ".text", ".html", ".htm":
		return true
	default:
		return false
	}
}

// detectMIMEType maps a file name to a MIME type without parameters.
func detectMIMEType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case "":
		return MimeTypeText
	case ".md", ".markdown":
		return MimeTypeMarkdown
	case ".txt", ".text":
		return MimeTypeText
	case ".html", ".htm":
		return MimeTypeHTML
	}

	if t := mime.TypeByExtension(ext); t != "" {
		if i := strings.Index(t, ";"); i >= 0 {
			t = t[:i]
		}
		return strings.TrimSpace(t)
	}
	return "application/octet-stream"
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
