package domain

import "strings"

// PlaceholderRootFolderID is the value shipped in example configuration.
// A rebuild refuses to start while the root folder is still set to it.
const PlaceholderRootFolderID = "YOUR_ROOT_FOLDER_ID"

// Snippet limits applied when settings do not override them.
const (
	DefaultSnippetParagraphs = 3
	DefaultSnippetChars      = 800
)

// DocumentBackend identifies where documents are read from.
type DocumentBackend string

// Available document backends.
const (
	// BackendDrive reads Google Docs from a Google Drive folder tree.
	BackendDrive DocumentBackend = "drive"

	// BackendFilesystem reads text and markdown files from a local directory tree.
	BackendFilesystem DocumentBackend = "filesystem"

	// BackendGitHub reads markdown files from a GitHub repository.
	BackendGitHub DocumentBackend = "github"
)

// IsValid returns true if the backend is recognised.
func (b DocumentBackend) IsValid() bool {
	switch b {
	case BackendDrive, BackendFilesystem, BackendGitHub:
		return true
	default:
		return false
	}
}

// StorageBackend identifies where the index payload is persisted.
type StorageBackend string

// Available storage backends.
const (
	StorageSQLite  StorageBackend = "sqlite"
	StorageLevelDB StorageBackend = "leveldb"
	StorageBadger  StorageBackend = "badger"
)

// IsValid returns true if the storage backend is recognised.
func (s StorageBackend) IsValid() bool {
	switch s {
	case StorageSQLite, StorageLevelDB, StorageBadger:
		return true
	default:
		return false
	}
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Index  IndexSettings
	Search SearchSettings
	Drive  DriveSettings
	GitHub GitHubSettings
}

// IndexSettings configures index builds and payload storage.
type IndexSettings struct {
	// RootFolderID is where the traversal starts: a Drive folder id, a local
	// directory, or a repository path depending on Backend.
	RootFolderID string

	Backend DocumentBackend `validate:"oneof=drive filesystem github"`
	Storage StorageBackend  `validate:"oneof=sqlite leveldb badger"`

	// DataDir holds the storage backend's files. Empty means ~/.kbbot/data.
	DataDir string

	// URLTemplate overrides the backend's document link template.
	URLTemplate string `validate:"omitempty,contains={id}"`

	SnippetParagraphs int `validate:"min=1,max=50"`
	SnippetChars      int `validate:"min=1,max=100000"`
}

// HasRoot reports whether RootFolderID is set to a real value.
func (s IndexSettings) HasRoot() bool {
	return IsConfiguredRoot(s.RootFolderID)
}

// IsConfiguredRoot reports whether id is neither empty nor the placeholder.
func IsConfiguredRoot(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && id != PlaceholderRootFolderID
}

// SearchSettings configures query-time behaviour.
type SearchSettings struct {
	Limit          int     `validate:"min=1,max=100"`
	PerQueryLimit  int     `validate:"min=1,max=100"`
	FuzzyThreshold float64 `validate:"gte=0,lte=1"`
}

// Options converts the settings into search options.
func (s SearchSettings) Options() SearchOptions {
	return SearchOptions{
		Limit:          s.Limit,
		PerQueryLimit:  s.PerQueryLimit,
		FuzzyThreshold: s.FuzzyThreshold,
	}
}

// DriveSettings configures the Google Drive backend.
type DriveSettings struct {
	// CredentialsFile is a service account or authorized-user JSON file.
	// Empty means Application Default Credentials.
	CredentialsFile string

	// RequestsPerSecond throttles Drive and Docs API calls.
	RequestsPerSecond float64 `validate:"gte=0"`
}

// GitHubSettings configures the GitHub backend.
type GitHubSettings struct {
	Owner  string
	Repo   string
	Branch string
	Token  string
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Index: IndexSettings{
			RootFolderID:      PlaceholderRootFolderID,
			Backend:           BackendDrive,
			Storage:           StorageSQLite,
			SnippetParagraphs: DefaultSnippetParagraphs,
			SnippetChars:      DefaultSnippetChars,
		},
		Search: SearchSettings{
			Limit:         DefaultResultLimit,
			PerQueryLimit: DefaultPerQueryLimit,
		},
		Drive: DriveSettings{
			RequestsPerSecond: 8,
		},
	}
}
