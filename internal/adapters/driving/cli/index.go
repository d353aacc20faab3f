package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kbbot/internal/core/domain"
	"github.com/custodia-labs/kbbot/internal/core/ports/driving"
	"github.com/custodia-labs/kbbot/internal/logger"
)

// DefaultWatchDebounce coalesces bursts of file changes into one rebuild.
const DefaultWatchDebounce = 2 * time.Second

var (
	refreshSnippets bool
	watchDebounce   time.Duration
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build and inspect the title index",
}

var indexRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the title index from the configured root folder",
	Long: `Walks every folder under index.root_folder_id, collects each document's
title and link, and replaces the stored index. Unreadable folders are
skipped and reported with --verbose.`,
	Args: cobra.NoArgs,
	RunE: runIndexRefresh,
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Describe the stored index",
	Args:  cobra.NoArgs,
	RunE:  runIndexStatus,
}

var indexClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored index",
	Long: `Deletes the stored index payload. Searches return no results until the
next 'kbbot index refresh'.`,
	Args: cobra.NoArgs,
	RunE: runIndexClear,
}

var indexWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the index whenever the document tree changes",
	Long: `Rebuilds once, then again after each burst of changes under the root
directory. Only the filesystem backend supports watching. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runIndexWatch,
}

func init() {
	indexRefreshCmd.Flags().BoolVar(&refreshSnippets, "snippets", true, "store a short snippet of each document")
	indexWatchCmd.Flags().BoolVar(&refreshSnippets, "snippets", true, "store a short snippet of each document")
	indexWatchCmd.Flags().DurationVar(&watchDebounce, "debounce", DefaultWatchDebounce, "quiet period before a rebuild")
	indexCmd.AddCommand(indexRefreshCmd, indexStatusCmd, indexClearCmd, indexWatchCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexRefresh(cmd *cobra.Command, _ []string) error {
	svc, err := indexService()
	if err != nil {
		return err
	}
	return refreshOnce(cmd, svc)
}

func refreshOnce(cmd *cobra.Command, svc driving.IndexService) error {
	report, err := svc.Refresh(cmd.Context(), refreshSnippets)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	cmd.Printf("KB index refreshed: %d unique titles. Snippets included: %t\n",
		report.UniqueTitles, report.Snippets)
	cmd.Printf("  Folders: %d visited, %d skipped\n", report.Stats.FoldersVisited, report.Stats.FoldersSkipped)
	cmd.Printf("  Documents: %d indexed, %d ignored, %d duplicate ids\n",
		report.Stats.DocumentsIndexed, report.Stats.DocumentsIgnored, report.Stats.DuplicateIDs)
	if report.Stats.SnippetFailures > 0 {
		cmd.Printf("  Snippets: %d could not be read\n", report.Stats.SnippetFailures)
	}
	cmd.Printf("  Took %s (build %s)\n", report.Duration.Round(time.Millisecond), report.BuildID)
	return nil
}

func runIndexStatus(cmd *cobra.Command, _ []string) error {
	svc, err := indexService()
	if err != nil {
		return err
	}

	status, err := svc.Status(cmd.Context())
	if errors.Is(err, domain.ErrNoIndex) {
		cmd.Println("No index has been built. Run 'kbbot index refresh'.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read index: %w", err)
	}

	cmd.Printf("Root:          %s\n", status.RootID)
	cmd.Printf("Built:         %s\n", status.BuiltAt.Local().Format(time.RFC1123))
	cmd.Printf("Build ID:      %s\n", status.BuildID)
	cmd.Printf("Unique titles: %d\n", status.UniqueTitles)
	cmd.Printf("Documents:     %d\n", status.Documents)
	return nil
}

func runIndexClear(cmd *cobra.Command, _ []string) error {
	svc, err := indexService()
	if err != nil {
		return err
	}
	if err := svc.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	cmd.Println("KB index cleared.")
	return nil
}

func runIndexWatch(cmd *cobra.Command, _ []string) error {
	r, err := currentRuntime()
	if err != nil {
		return err
	}
	svc, err := r.Index()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	changes, err := r.Watch(ctx, watchDebounce)
	if err != nil {
		return err
	}

	if err := refreshOnce(cmd, svc); err != nil {
		return err
	}
	cmd.Println("Watching for changes. Press Ctrl+C to stop.")

	for range changes {
		if err := refreshOnce(cmd, svc); err != nil {
			if ctx.Err() != nil {
				break
			}
			// Keep watching; the next change may fix it.
			logger.Error("%v", err)
		}
	}
	return nil
}
