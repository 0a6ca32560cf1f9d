package sync

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Outcome is one repository's result in a batch run. Err is set only for
// fatal failures (bad path, store corruption); degraded syncs report
// through Result's counts.
type Outcome struct {
	Path   string
	Result SyncResult
	Err    error
}

// SyncAll syncs every path under a bounded outer pool. One repository's
// fatal failure never prevents the others from being attempted; the
// returned outcomes are in the same order as paths.
func (a *Analyzer) SyncAll(ctx context.Context, paths []string) []Outcome {
	outcomes := make([]Outcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.RepoWorkers)

	var mu sync.Mutex
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			result, err := a.SyncRepository(gctx, path)
			mu.Lock()
			outcomes[i] = Outcome{Path: path, Result: result, Err: err}
			mu.Unlock()
			return nil // fatal errors are reported per repo, not propagated
		})
	}
	g.Wait()
	return outcomes
}
