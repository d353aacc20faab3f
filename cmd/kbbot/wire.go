package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/kbbot/internal/adapters/driven/config/file"
	"github.com/custodia-labs/kbbot/internal/adapters/driven/storage/badger"
	"github.com/custodia-labs/kbbot/internal/adapters/driven/storage/leveldb"
	"github.com/custodia-labs/kbbot/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/kbbot/internal/adapters/driving/cli"
	"github.com/custodia-labs/kbbot/internal/connectors/filesystem"
	"github.com/custodia-labs/kbbot/internal/connectors/github"
	"github.com/custodia-labs/kbbot/internal/connectors/google"
	"github.com/custodia-labs/kbbot/internal/connectors/google/drive"
	"github.com/custodia-labs/kbbot/internal/core/domain"
	"github.com/custodia-labs/kbbot/internal/core/ports/driven"
	"github.com/custodia-labs/kbbot/internal/core/ports/driving"
	"github.com/custodia-labs/kbbot/internal/core/services"
	"github.com/custodia-labs/kbbot/internal/logger"
)

// runtime wires adapters to core services for one command invocation.
// Storage and document stores are opened on first use.
type runtime struct {
	ctx       context.Context
	configDir string
	settings  *services.SettingsService

	storageOnce sync.Once
	storageErr  error
	props       driven.PropertyStore
	indexStore  *services.IndexStore
	search      *services.SearchService

	indexOnce sync.Once
	indexErr  error
	index     *services.IndexService
}

var _ cli.Runtime = (*runtime)(nil)

func newRuntime(ctx context.Context, opts cli.Options) (cli.Runtime, error) {
	dir := opts.ConfigDir
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("locate config directory: %w", err)
		}
		dir = d
	}

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, err
	}

	return &runtime{
		ctx:       ctx,
		configDir: dir,
		settings:  services.NewSettingsService(configStore),
	}, nil
}

func (r *runtime) Settings() driving.SettingsService {
	return r.settings
}

func (r *runtime) Search() (driving.SearchService, error) {
	r.storageOnce.Do(r.openStorage)
	if r.storageErr != nil {
		return nil, r.storageErr
	}
	return r.search, nil
}

func (r *runtime) Index() (driving.IndexService, error) {
	r.storageOnce.Do(r.openStorage)
	if r.storageErr != nil {
		return nil, r.storageErr
	}
	r.indexOnce.Do(r.openIndex)
	if r.indexErr != nil {
		return nil, r.indexErr
	}
	return r.index, nil
}

func (r *runtime) Watch(ctx context.Context, debounce time.Duration) (<-chan struct{}, error) {
	settings, err := r.settings.Get()
	if err != nil {
		return nil, err
	}
	if settings.Index.Backend != domain.BackendFilesystem {
		return nil, cli.ErrWatchUnsupported
	}
	root, err := filesystem.ResolveRoot(expandHome(settings.Index.RootFolderID))
	if err != nil {
		return nil, err
	}

	w, err := filesystem.NewWatcher(root, debounce)
	if err != nil {
		return nil, err
	}
	return w.Changes(ctx), nil
}

func (r *runtime) Close() error {
	if r.props == nil {
		return nil
	}
	return r.props.Close()
}

func (r *runtime) openStorage() {
	settings, err := r.settings.Get()
	if err != nil {
		r.storageErr = err
		return
	}
	if err := r.settings.Validate(); err != nil {
		r.storageErr = err
		return
	}

	props, err := openPropertyStore(settings.Index.Storage, r.dataDir(settings))
	if err != nil {
		r.storageErr = fmt.Errorf("open %s storage: %w", settings.Index.Storage, err)
		return
	}
	r.props = props
	r.indexStore = services.NewIndexStore(props)

	mappingStore, err := file.NewMappingStore(r.configDir)
	if err != nil {
		r.storageErr = err
		return
	}
	mappings, err := mappingStore.Load(r.ctx)
	if err != nil {
		r.storageErr = fmt.Errorf("load query mappings: %w", err)
		return
	}
	logger.Debug("Loaded %d query mappings from %s", len(mappings), mappingStore.Path())

	r.search = services.NewSearchService(r.indexStore, services.NewQueryExpander(mappings), settings.Search.Options())
}

func (r *runtime) openIndex() {
	settings, err := r.settings.Get()
	if err != nil {
		r.indexErr = err
		return
	}

	store, cfg, rootID, err := openDocumentStore(r.ctx, settings)
	if err != nil {
		r.indexErr = fmt.Errorf("open %s backend: %w", settings.Index.Backend, err)
		return
	}
	if settings.Index.URLTemplate != "" {
		cfg.URLTemplate = settings.Index.URLTemplate
	}
	cfg.SnippetParagraphs = settings.Index.SnippetParagraphs
	cfg.SnippetChars = settings.Index.SnippetChars

	r.index = services.NewIndexService(services.NewIndexBuilder(store, cfg), r.indexStore, rootID)
}

func (r *runtime) dataDir(settings *domain.AppSettings) string {
	if settings.Index.DataDir != "" {
		return expandHome(settings.Index.DataDir)
	}
	return filepath.Join(r.configDir, "data")
}

func openPropertyStore(backend domain.StorageBackend, dataDir string) (driven.PropertyStore, error) {
	switch backend {
	case domain.StorageLevelDB:
		return leveldb.New(dataDir)
	case domain.StorageBadger:
		return badger.Open(dataDir)
	case domain.StorageSQLite, "":
		return sqlite.NewStore(dataDir)
	default:
		return nil, fmt.Errorf("%w: storage backend %q", domain.ErrConfiguration, backend)
	}
}

// openDocumentStore builds the backend's DocumentStore and the builder
// defaults that go with it. The returned root id is what the traversal
// starts from. An unconfigured root fails before any backend client is
// constructed.
func openDocumentStore(
	ctx context.Context, settings *domain.AppSettings,
) (driven.DocumentStore, services.BuilderConfig, string, error) {
	root := settings.Index.RootFolderID
	if !domain.IsConfiguredRoot(root) {
		return nil, services.BuilderConfig{}, "", fmt.Errorf(
			"%w: root folder id is not set (index.root_folder_id)", domain.ErrConfiguration)
	}

	switch settings.Index.Backend {
	case domain.BackendFilesystem:
		resolved, err := filesystem.ResolveRoot(expandHome(root))
		if err != nil {
			return nil, services.BuilderConfig{}, "", err
		}
		root = resolved
		return filesystem.New(), services.BuilderConfig{URLTemplate: filesystem.URLTemplate}, root, nil

	case domain.BackendGitHub:
		gs := settings.GitHub
		if gs.Owner == "" || gs.Repo == "" {
			return nil, services.BuilderConfig{}, "", fmt.Errorf(
				"%w: github.owner and github.repo are required", domain.ErrConfiguration)
		}
		store := github.New(github.NewClientWithToken(ctx, gs.Token), gs.Owner, gs.Repo, gs.Branch)
		return store, services.BuilderConfig{URLTemplate: store.URLTemplate()}, root, nil

	case domain.BackendDrive, "":
		store, err := drive.NewFromOptions(ctx, settings.Drive.RequestsPerSecond,
			google.ClientOptions(expandHome(settings.Drive.CredentialsFile))...)
		if err != nil {
			return nil, services.BuilderConfig{}, "", err
		}
		return store, services.BuilderConfig{
			URLTemplate: domain.DefaultURLTemplate,
			MIMETypes:   []string{drive.MimeTypeGoogleDoc},
		}, root, nil

	default:
		return nil, services.BuilderConfig{}, "", errors.New("unknown document backend")
	}
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
