package sync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gitpulse/gitpulse/internal/gitx"
	"github.com/gitpulse/gitpulse/internal/store"
)

// Options tune one Analyzer. Zero values select the defaults.
type Options struct {
	Workers     int           // commit pool width
	RepoWorkers int           // outer pool width for multi-repo sync
	TaskTimeout time.Duration // per-commit budget
	BranchCap   int           // per-branch log cap
}

// SyncResult reports the outcome of syncing one repository. Partial
// commit-processing failure is a reported, non-fatal outcome; it shows up
// here as counts, never as an error from SyncRepository.
type SyncResult struct {
	Repo      store.Repository
	Fetched   int
	Succeeded int
	Failed    int
	Errors    []error
}

// Analyzer ties discovery output, the commit fetcher, the stats resolver
// and the store together into the per-repository sync state machine.
type Analyzer struct {
	git   gitx.Client
	store store.Store
	opts  Options
	log   Logger
}

// NewAnalyzer builds an Analyzer.
func NewAnalyzer(client gitx.Client, st store.Store, opts Options, log Logger) *Analyzer {
	if log == nil {
		log = nopLogger{}
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.RepoWorkers <= 0 {
		opts.RepoWorkers = 2
	}
	if opts.TaskTimeout <= 0 {
		opts.TaskTimeout = DefaultTaskTimeout
	}
	return &Analyzer{git: client, store: st, opts: opts, log: log}
}

// SyncRepository runs one sync pass for the repository at path:
// validate, resolve-or-create the repository row, fetch commits since the
// last watermark, process them on the worker pool, advance the watermark.
//
// The returned error is fatal (bad path, store corruption). Individual
// commit failures are reported through the result counts.
func (a *Analyzer) SyncRepository(ctx context.Context, path string) (SyncResult, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return SyncResult{}, fmt.Errorf("invalid path %s: %w", path, err)
	}
	if info, err := os.Stat(absPath); err != nil || !info.IsDir() {
		return SyncResult{}, fmt.Errorf("path does not exist: %s", absPath)
	}
	if !gitx.HasRepository(absPath) {
		return SyncResult{}, fmt.Errorf("not a git repository: %s", absPath)
	}

	repo, err := a.resolveRepository(ctx, absPath)
	if err != nil {
		return SyncResult{}, err
	}
	result := SyncResult{Repo: *repo}

	var since time.Time
	if repo.LastSynced != nil {
		since = *repo.LastSynced
	}

	// Wall clock at the start of the pass, not the newest commit's
	// timestamp: re-scanning a small overlap is cheaper than trusting
	// clock agreement between git and this process.
	syncStart := time.Now()

	fetcher := gitx.NewFetcher(a.git, a.opts.BranchCap, a.log)
	entries, err := fetcher.FetchCommits(ctx, absPath, since)
	if err != nil {
		return result, fmt.Errorf("failed to fetch commits: %w", err)
	}
	result.Fetched = len(entries)
	a.log.Debugf("fetched %d commits from %s", len(entries), absPath)

	if len(entries) > 0 {
		processor := NewProcessor(a.store, gitx.NewStatsResolver(a.git, a.log), a.log)
		tasks := make([]Task, 0, len(entries))
		for _, entry := range entries {
			entry := entry
			tasks = append(tasks, func(taskCtx context.Context) error {
				return processor.Process(taskCtx, repo.ID, absPath, entry)
			})
		}
		pool := RunPool(ctx, a.opts.Workers, a.opts.TaskTimeout, tasks)
		result.Succeeded = pool.Succeeded
		result.Failed = pool.Failed
		result.Errors = pool.Errors
	}

	if err := a.store.UpdateLastSynced(ctx, repo.ID, syncStart); err != nil {
		return result, fmt.Errorf("failed to advance watermark: %w", err)
	}
	return result, nil
}

// resolveRepository looks the repository up by path, inserting a new row
// on first sight. The remote URL is best-effort; repositories without a
// remote are normal.
func (a *Analyzer) resolveRepository(ctx context.Context, absPath string) (*store.Repository, error) {
	repo, err := a.store.GetRepository(ctx, absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to look up repository: %w", err)
	}
	if repo != nil {
		return repo, nil
	}

	remoteURL, err := a.git.RemoteURL(ctx, absPath)
	if err != nil {
		a.log.Debugf("no remote URL for %s: %v", absPath, err)
		remoteURL = ""
	}
	repo = &store.Repository{
		Name:      filepath.Base(absPath),
		Path:      absPath,
		RemoteURL: remoteURL,
	}
	if _, err := a.store.AddRepository(ctx, repo); err != nil {
		return nil, fmt.Errorf("failed to register repository: %w", err)
	}
	return repo, nil
}
