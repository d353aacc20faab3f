// Package cli provides the kbbot command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kbbot/internal/core/ports/driving"
	"github.com/custodia-labs/kbbot/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// ErrNoRuntime is returned when a command runs before SetRuntimeFactory.
var ErrNoRuntime = errors.New("cli: runtime not configured")

// ErrWatchUnsupported is returned by Runtime.Watch for backends that cannot
// report changes.
var ErrWatchUnsupported = errors.New("watching is only supported for the filesystem backend")

// Options carries global flags to the runtime factory.
type Options struct {
	// ConfigDir overrides the config directory. Empty means ~/.kbbot.
	ConfigDir string
}

// Runtime exposes the wired services to commands. Services that need a
// storage backend or a document store are built on first use, so config
// commands work while those are misconfigured.
type Runtime interface {
	Settings() driving.SettingsService
	Search() (driving.SearchService, error)
	Index() (driving.IndexService, error)

	// Watch reports changes under the indexed root, coalesced over debounce.
	// The channel closes when ctx is done.
	Watch(ctx context.Context, debounce time.Duration) (<-chan struct{}, error)

	Close() error
}

// RuntimeFactory builds the runtime for one command invocation.
type RuntimeFactory func(ctx context.Context, opts Options) (Runtime, error)

var (
	runtimeFactory RuntimeFactory
	rt             Runtime

	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "kbbot",
	Short: "Find knowledge base documents by title",
	Long: `kbbot indexes the titles of a document tree (a Google Drive folder,
a local directory or a GitHub repository) and answers questions with
links to the best-matching documents.

Build the index first, then ask:
  kbbot index refresh
  kbbot ask "how do I reset my password"`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return teardown()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.kbbot)")
	// cmd.Println falls back to stderr; answers belong on stdout.
	rootCmd.SetOut(os.Stdout)
}

// SetRuntimeFactory installs the function commands use to build services.
func SetRuntimeFactory(f RuntimeFactory) {
	runtimeFactory = f
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer func() { _ = teardown() }()
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if rt != nil || runtimeFactory == nil {
		return nil
	}

	r, err := runtimeFactory(cmd.Context(), Options{ConfigDir: configDir})
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	rt = r
	return nil
}

func teardown() error {
	if rt == nil {
		return nil
	}
	err := rt.Close()
	rt = nil
	return err
}

func currentRuntime() (Runtime, error) {
	if rt == nil {
		return nil, ErrNoRuntime
	}
	return rt, nil
}

func searchService() (driving.SearchService, error) {
	r, err := currentRuntime()
	if err != nil {
		return nil, err
	}
	return r.Search()
}

func indexService() (driving.IndexService, error) {
	r, err := currentRuntime()
	if err != nil {
		return nil, err
	}
	return r.Index()
}

func settingsService() (driving.SettingsService, error) {
	r, err := currentRuntime()
	if err != nil {
		return nil, err
	}
	return r.Settings(), nil
}
