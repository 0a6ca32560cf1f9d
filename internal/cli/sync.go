package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gitpulse/gitpulse/internal/config"
	"github.com/gitpulse/gitpulse/internal/gitx"
	"github.com/gitpulse/gitpulse/internal/store"
	"github.com/gitpulse/gitpulse/internal/sync"
)

var (
	syncWorkers     int
	syncRepoWorkers int
	syncTimeout     time.Duration
)

var syncCmd = &cobra.Command{
	Use:   "sync [path...]",
	Short: "Ingest new commits from repositories",
	Long: `Sync fetches commits newer than each repository's last-synced watermark
and stores them with per-file diff stats. With no arguments every
registered repository is synced; paths restrict the run to those
checkouts, registering them on first sight.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().IntVar(&syncWorkers, "workers", 0, "Commit workers per repository (default 5)")
	syncCmd.Flags().IntVar(&syncRepoWorkers, "repo-workers", 0, "Repositories synced concurrently (default 2)")
	syncCmd.Flags().DurationVar(&syncTimeout, "timeout", 0, "Per-commit processing timeout (default 30s)")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	paths, err := syncTargets(ctx, db, args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println("No repositories to sync. Run 'gitpulse discover' or pass paths.")
		return nil
	}

	opts := sync.Options{
		Workers:     cfg.Workers,
		RepoWorkers: cfg.RepoWorkers,
		TaskTimeout: cfg.TaskTimeout,
		BranchCap:   cfg.BranchCap,
	}
	if syncWorkers > 0 {
		opts.Workers = syncWorkers
	}
	if syncRepoWorkers > 0 {
		opts.RepoWorkers = syncRepoWorkers
	}
	if syncTimeout > 0 {
		opts.TaskTimeout = syncTimeout
	}

	analyzer := sync.NewAnalyzer(gitx.NewGoGit(), db, opts, logger{})

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.Suffix = fmt.Sprintf(" Syncing %d repositories...", len(paths))
	if !verbose {
		sp.Start()
	}
	outcomes := analyzer.SyncAll(ctx, paths)
	sp.Stop()

	fatal := 0
	for _, o := range outcomes {
		if o.Err != nil {
			fatal++
			color.New(color.FgRed).Printf("✗ %s: %v\n", o.Path, o.Err)
			continue
		}
		r := o.Result
		if r.Failed > 0 {
			color.New(color.FgYellow).Printf("⚠ %s: %d new commits, %d failed\n", r.Repo.Name, r.Succeeded, r.Failed)
			for _, perr := range r.Errors {
				VerboseLog("  %v", perr)
			}
			continue
		}
		if r.Fetched == 0 {
			fmt.Printf("  %s: up to date\n", r.Repo.Name)
			continue
		}
		color.New(color.FgGreen).Printf("✓ %s: %d new commits\n", r.Repo.Name, r.Succeeded)
	}

	if fatal > 0 {
		return fmt.Errorf("%d of %d repositories failed to sync", fatal, len(paths))
	}
	return nil
}

// syncTargets resolves what to sync: explicit paths, or every registered
// repository when none are given.
func syncTargets(ctx context.Context, db *store.DB, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	repos, err := db.GetAllRepositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	paths := make([]string, 0, len(repos))
	for _, repo := range repos {
		paths = append(paths, repo.Path)
	}
	return paths, nil
}
