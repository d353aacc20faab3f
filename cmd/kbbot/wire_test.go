package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kbbot/internal/adapters/driving/cli"
	"github.com/custodia-labs/kbbot/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// newTestRuntime configures a filesystem-backed runtime over a small tree.
func newTestRuntime(t *testing.T, storage domain.StorageBackend) (*runtime, string) {
	t.Helper()
	base := t.TempDir()
	docs := filepath.Join(base, "docs")
	writeFile(t, filepath.Join(docs, "VPN Setup.md"), "# VPN\n\nInstall the client.\n")
	writeFile(t, filepath.Join(docs, "hr", "Expense Policy.txt"), "Submit receipts within 30 days.")
	writeFile(t, filepath.Join(docs, "hr", "Password Reset Instructions.md"), "Open the account page.")

	r, err := newRuntime(context.Background(), cli.Options{ConfigDir: filepath.Join(base, "config")})
	require.NoError(t, err)
	rt := r.(*runtime)
	t.Cleanup(func() { _ = rt.Close() })

	settings := rt.Settings()
	require.NoError(t, settings.Set("index.backend", "filesystem"))
	require.NoError(t, settings.Set("index.storage", string(storage)))
	require.NoError(t, settings.Set("index.root_folder_id", docs))
	return rt, docs
}

func TestRuntime_RefreshAndSearch(t *testing.T) {
	for _, storage := range []domain.StorageBackend{domain.StorageSQLite, domain.StorageLevelDB, domain.StorageBadger} {
		t.Run(string(storage), func(t *testing.T) {
			rt, _ := newTestRuntime(t, storage)
			ctx := context.Background()

			index, err := rt.Index()
			require.NoError(t, err)

			report, err := index.Refresh(ctx, true)
			require.NoError(t, err)
			assert.Equal(t, 3, report.UniqueTitles)
			assert.Equal(t, 2, report.Stats.FoldersVisited)

			search, err := rt.Search()
			require.NoError(t, err)

			results, err := search.Search(ctx, "vpn setup")
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, "VPN Setup", results[0].Name)
			assert.True(t, strings.HasPrefix(results[0].URL, "file://"))
			assert.Contains(t, results[0].Snippet, "Install the client.")

			titles, err := search.Titles(ctx)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"VPN Setup", "Expense Policy", "Password Reset Instructions"}, titles)

			status, err := index.Status(ctx)
			require.NoError(t, err)
			assert.Equal(t, 3, status.Documents)
		})
	}
}

func TestRuntime_QueryExpansion(t *testing.T) {
	rt, _ := newTestRuntime(t, domain.StorageSQLite)
	ctx := context.Background()

	index, err := rt.Index()
	require.NoError(t, err)
	_, err = index.Refresh(ctx, false)
	require.NoError(t, err)

	search, err := rt.Search()
	require.NoError(t, err)

	answer, err := search.Ask(ctx, "How to reset password", domain.AnswerText)
	require.NoError(t, err)
	assert.Contains(t, answer, "Password Reset Instructions")
}

func TestRuntime_SearchBeforeRefresh(t *testing.T) {
	rt, _ := newTestRuntime(t, domain.StorageSQLite)

	search, err := rt.Search()
	require.NoError(t, err)

	results, err := search.Search(context.Background(), "vpn")
	require.NoError(t, err)
	assert.Empty(t, results)

	index, err := rt.Index()
	require.NoError(t, err)
	_, err = index.Status(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoIndex)
}

func TestRuntime_UnconfiguredRoot(t *testing.T) {
	r, err := newRuntime(context.Background(), cli.Options{ConfigDir: t.TempDir()})
	require.NoError(t, err)
	rt := r.(*runtime)
	t.Cleanup(func() { _ = rt.Close() })
	require.NoError(t, rt.Settings().Set("index.backend", "filesystem"))

	_, err = rt.Index()
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestOpenDocumentStore_DefaultSettingsFailBeforeDrive(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Drive.CredentialsFile = filepath.Join(t.TempDir(), "missing.json")

	store, _, _, err := openDocumentStore(context.Background(), &settings)

	assert.Nil(t, store)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "index.root_folder_id")
}

func TestOpenDocumentStore_BlankRoot(t *testing.T) {
	for _, backend := range []domain.DocumentBackend{domain.BackendDrive, domain.BackendFilesystem, domain.BackendGitHub} {
		settings := domain.DefaultAppSettings()
		settings.Index.Backend = backend
		settings.Index.RootFolderID = "   "

		_, _, _, err := openDocumentStore(context.Background(), &settings)
		assert.ErrorIs(t, err, domain.ErrConfiguration, string(backend))
	}
}

func TestRuntime_GitHubRequiresRepo(t *testing.T) {
	r, err := newRuntime(context.Background(), cli.Options{ConfigDir: t.TempDir()})
	require.NoError(t, err)
	rt := r.(*runtime)
	t.Cleanup(func() { _ = rt.Close() })
	require.NoError(t, rt.Settings().Set("index.backend", "github"))
	require.NoError(t, rt.Settings().Set("index.root_folder_id", "/"))

	_, err = rt.Index()
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestRuntime_Watch(t *testing.T) {
	rt, docs := newTestRuntime(t, domain.StorageSQLite)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := rt.Watch(ctx, 20*time.Millisecond)
	require.NoError(t, err)

	writeFile(t, filepath.Join(docs, "Onboarding.md"), "Welcome")

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestRuntime_WatchUnsupported(t *testing.T) {
	r, err := newRuntime(context.Background(), cli.Options{ConfigDir: t.TempDir()})
	require.NoError(t, err)

	_, err = r.Watch(context.Background(), time.Second)
	assert.ErrorIs(t, err, cli.ErrWatchUnsupported)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "kb"), expandHome("~/kb"))
	assert.Equal(t, home, expandHome("~"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
	assert.Equal(t, "~other", expandHome("~other"))
}
