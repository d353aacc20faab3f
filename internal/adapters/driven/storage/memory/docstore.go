package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/kbbot/internal/core/domain"
	"github.com/custodia-labs/kbbot/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

type memFolder struct {
	docs     []string
	children []string
}

type memDocument struct {
	meta       domain.DocumentMetadata
	paragraphs []string
}

// DocumentStore is an in-memory folder tree implementing driven.DocumentStore.
// Folders may link to each other freely, so cycles and shared subfolders
// can be modelled. Individual folders and documents can be made to fail.
type DocumentStore struct {
	mu          sync.RWMutex
	folders     map[string]*memFolder
	documents   map[string]memDocument
	folderErrs  map[string]error
	metaErrs    map[string]error
	bodyErrs    map[string]error
	bodyReads   map[string]int
	folderReads map[string]int
}

// NewDocumentStore creates an empty document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		folders:     make(map[string]*memFolder),
		documents:   make(map[string]memDocument),
		folderErrs:  make(map[string]error),
		metaErrs:    make(map[string]error),
		bodyErrs:    make(map[string]error),
		bodyReads:   make(map[string]int),
		folderReads: make(map[string]int),
	}
}

func (s *DocumentStore) folder(id string) *memFolder {
	f, ok := s.folders[id]
	if !ok {
		f = &memFolder{}
		s.folders[id] = f
	}
	return f
}

// AddFolder creates id and, when parentID is non-empty, links it under
// parentID. Linking an existing folder again adds another parent.
func (s *DocumentStore) AddFolder(parentID, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folder(id)
	if parentID != "" {
		p := s.folder(parentID)
		p.children = append(p.children, id)
	}
}

// AddDocument stores a document and links it under folderID.
// A zero MIME type defaults to the Google Docs type.
func (s *DocumentStore) AddDocument(folderID string, meta domain.DocumentMetadata, paragraphs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if meta.MIMEType == "" {
		meta.MIMEType = "application/vnd.google-apps.document"
	}
	s.documents[meta.ID] = memDocument{meta: meta, paragraphs: paragraphs}
	f := s.folder(folderID)
	f.docs = append(f.docs, meta.ID)
}

// LinkDocument lists an existing document under another folder too.
func (s *DocumentStore) LinkDocument(folderID, docID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.folder(folderID)
	f.docs = append(f.docs, docID)
}

// FailFolder makes listing folder id return err.
func (s *DocumentStore) FailFolder(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folderErrs[id] = err
}

// FailMetadata makes metadata reads of document id return err.
func (s *DocumentStore) FailMetadata(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metaErrs[id] = err
}

// FailBody makes body reads of document id return err.
func (s *DocumentStore) FailBody(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodyErrs[id] = err
}

// FolderReads returns how many times folder id was listed for documents.
func (s *DocumentStore) FolderReads(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.folderReads[id]
}

// BodyReads returns how many times the body of document id was read.
func (s *DocumentStore) BodyReads(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bodyReads[id]
}

// ListChildDocuments returns the documents directly in folderID.
func (s *DocumentStore) ListChildDocuments(_ context.Context, folderID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folderReads[folderID]++
	f, err := s.openFolder(folderID)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), f.docs...), nil
}

// ListChildFolders returns the folders directly in folderID.
func (s *DocumentStore) ListChildFolders(_ context.Context, folderID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, err := s.openFolder(folderID)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), f.children...), nil
}

func (s *DocumentStore) openFolder(id string) (*memFolder, error) {
	if err := s.folderErrs[id]; err != nil {
		return nil, err
	}
	f, ok := s.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	return f, nil
}

// GetDocumentMetadata returns the stored metadata of document id.
func (s *DocumentStore) GetDocumentMetadata(_ context.Context, id string) (*domain.DocumentMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.metaErrs[id]; err != nil {
		return nil, err
	}
	doc, ok := s.documents[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	meta := doc.meta
	return &meta, nil
}

// GetDocumentBodyParagraphs returns the stored paragraphs of document id.
func (s *DocumentStore) GetDocumentBodyParagraphs(_ context.Context, id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodyReads[id]++
	if err := s.bodyErrs[id]; err != nil {
		return nil, err
	}
	doc, ok := s.documents[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return append([]string(nil), doc.paragraphs...), nil
}
