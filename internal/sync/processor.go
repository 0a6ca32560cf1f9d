package sync

import (
	"context"
	"fmt"

	"github.com/gitpulse/gitpulse/internal/gitx"
	"github.com/gitpulse/gitpulse/internal/store"
)

// Processor persists one commit and its file changes, resolving diff
// statistics first. The commit row is the unit the rest of the system
// depends on; file changes are supplementary detail, so a failed
// file-change insert is logged and skipped without touching the parent.
type Processor struct {
	store    store.Store
	resolver *gitx.StatsResolver
	log      Logger
}

// NewProcessor builds a Processor.
func NewProcessor(st store.Store, resolver *gitx.StatsResolver, log Logger) *Processor {
	if log == nil {
		log = nopLogger{}
	}
	return &Processor{store: st, resolver: resolver, log: log}
}

// Process resolves stats for entry, writes the commit row and its file
// changes. The returned error is fatal for this commit only.
func (p *Processor) Process(ctx context.Context, repoID int64, repoPath string, entry gitx.LogEntry) error {
	stats := p.resolver.Resolve(ctx, repoPath, entry.Hash)

	commit := &store.Commit{
		RepoID:       repoID,
		Hash:         entry.Hash,
		Author:       entry.AuthorName,
		Email:        entry.AuthorEmail,
		Date:         entry.Date,
		Message:      entry.Message,
		FilesChanged: stats.FilesChanged,
		Insertions:   stats.Insertions,
		Deletions:    stats.Deletions,
	}
	commitID, created, err := p.store.AddCommit(ctx, commit)
	if err != nil {
		return fmt.Errorf("failed to persist commit %s: %w", entry.Hash, err)
	}
	// A missing id after a reported-successful insert means the store is
	// corrupted, not a per-commit condition worth absorbing.
	if commitID == 0 {
		return fmt.Errorf("store returned zero id for commit %s", entry.Hash)
	}
	// Already-synced hash (watermark overlap, shared branch): its file
	// changes are already persisted, re-inserting would duplicate them.
	if !created {
		p.log.Debugf("commit %s already synced, skipping", entry.Hash)
		return nil
	}

	for _, fc := range stats.FileChanges {
		change := &store.FileChange{
			CommitID:   commitID,
			FilePath:   fc.FilePath,
			ChangeType: fc.ChangeType,
			Insertions: fc.Insertions,
			Deletions:  fc.Deletions,
		}
		if err := p.store.AddFileChange(ctx, change); err != nil {
			p.log.Warnf("skipping file change %s in %s: %v", fc.FilePath, entry.Hash, err)
		}
	}
	return nil
}
