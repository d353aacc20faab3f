package driven

import (
	"context"

	"github.com/custodia-labs/kbbot/internal/core/domain"
)

// DocumentStore is a hierarchical collection of folders and documents.
//
// Folder and document identifiers are opaque to the core. Every call may
// fail independently; the index builder treats a failure as "skip this
// item" and never aborts a build because of one.
type DocumentStore interface {
	// ListChildDocuments returns the ids of the documents directly inside
	// folderID, in the store's enumeration order. An error means the folder
	// could not be opened.
	ListChildDocuments(ctx context.Context, folderID string) ([]string, error)

	// ListChildFolders returns the ids of the folders directly inside
	// folderID, in the store's enumeration order.
	ListChildFolders(ctx context.Context, folderID string) ([]string, error)

	// GetDocumentMetadata returns the name, MIME type and modification
	// time of a document.
	GetDocumentMetadata(ctx context.Context, id string) (*domain.DocumentMetadata, error)

	// GetDocumentBodyParagraphs returns the document body split into
	// paragraphs, in document order.
	GetDocumentBodyParagraphs(ctx context.Context, id string) ([]string, error)
}
