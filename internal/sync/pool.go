// Package sync drives the per-repository ingestion pipeline: it fetches
// new commits, resolves their diff statistics and persists them through a
// fixed-size worker pool, then advances the repository's sync watermark.
package sync

import (
	"context"
	"sync"
	"time"
)

// DefaultWorkers is the width of the per-repository commit pool.
const DefaultWorkers = 5

// DefaultTaskTimeout bounds one commit's stat resolution and persistence.
const DefaultTaskTimeout = 30 * time.Second

// Task is one independent unit of work in a pool run.
type Task func(ctx context.Context) error

// PoolResult aggregates the outcome of a pool run. Failures are collected,
// never raised; one task's error has no effect on its siblings.
type PoolResult struct {
	Succeeded int
	Failed    int
	Errors    []error
}

// RunPool executes tasks on a fixed number of workers, giving each task
// its own timeout. A task exceeding the timeout counts as failed for that
// task only; the pool keeps draining.
func RunPool(ctx context.Context, workers int, timeout time.Duration, tasks []Task) PoolResult {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if timeout <= 0 {
		timeout = DefaultTaskTimeout
	}

	jobs := make(chan Task, len(tasks))
	for _, task := range tasks {
		jobs <- task
	}
	close(jobs)

	var (
		mu     sync.Mutex
		result PoolResult
		wg     sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range jobs {
				taskCtx, cancel := context.WithTimeout(ctx, timeout)
				err := task(taskCtx)
				cancel()

				mu.Lock()
				if err != nil {
					result.Failed++
					result.Errors = append(result.Errors, err)
				} else {
					result.Succeeded++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return result
}

// Logger receives diagnostics for degradable failures during sync.
type Logger interface {
	Warnf(format string, args ...any)
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Debugf(string, ...any) {}
