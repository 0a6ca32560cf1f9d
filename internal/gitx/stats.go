package gitx

import (
	"context"
	"strings"
)

// Change types recorded for each file touched by a commit.
const (
	ChangeAdded    = "added"
	ChangeModified = "modified"
	ChangeDeleted  = "deleted"
	ChangeRenamed  = "renamed"
)

// FileChangeStat is one file's contribution to a commit.
type FileChangeStat struct {
	FilePath   string
	ChangeType string
	Insertions int
	Deletions  int
}

// CommitStats is the resolved diff statistics of one commit. The totals
// always agree with the file list: FilesChanged == len(FileChanges) and
// the insertion/deletion totals are the sums over the files.
type CommitStats struct {
	FilesChanged int
	Insertions   int
	Deletions    int
	FileChanges  []FileChangeStat
}

// StatsResolver computes per-commit diff statistics with a two-tier
// fallback: a commit is normally diffed against its first parent, a root
// commit against the empty tree, and if both fail the commit still yields
// zero stats rather than an error. Bulk ingestion must never stop on a
// single unreadable commit.
type StatsResolver struct {
	client Client
	log    Logger
}

// NewStatsResolver builds a StatsResolver.
func NewStatsResolver(client Client, log Logger) *StatsResolver {
	if log == nil {
		log = NopLogger{}
	}
	return &StatsResolver{client: client, log: log}
}

// Resolve returns the stats for hash. It never returns an error.
func (r *StatsResolver) Resolve(ctx context.Context, repoPath, hash string) CommitStats {
	stats, err := r.resolveAgainst(ctx, repoPath, hash+"^", hash)
	if err == nil {
		return stats
	}
	r.log.Warnf("parent diff failed for %s, trying empty tree: %v", hash, err)

	stats, err = r.resolveAgainst(ctx, repoPath, EmptyTreeRef, hash)
	if err == nil {
		return stats
	}
	r.log.Warnf("stats unresolvable for %s, recording zero stats: %v", hash, err)
	return CommitStats{}
}

func (r *StatsResolver) resolveAgainst(ctx context.Context, repoPath, fromRef, toRef string) (CommitStats, error) {
	lines, err := r.client.DiffNumstat(ctx, repoPath, fromRef, toRef)
	if err != nil {
		return CommitStats{}, err
	}

	stats := CommitStats{FileChanges: make([]FileChangeStat, 0, len(lines))}
	for _, line := range lines {
		fc := FileChangeStat{
			FilePath:   line.Path,
			ChangeType: classifyChange(line),
			Insertions: line.Insertions,
			Deletions:  line.Deletions,
		}
		stats.FilesChanged++
		stats.Insertions += fc.Insertions
		stats.Deletions += fc.Deletions
		stats.FileChanges = append(stats.FileChanges, fc)
	}

	// The commit-level summary is cheaper for callers that only want
	// totals, but binary files make it drift from the per-file sums;
	// the sums win so the totals invariant holds.
	if totals, err := r.client.DiffSummary(ctx, repoPath, fromRef, toRef); err == nil {
		if totals.FilesChanged != stats.FilesChanged {
			r.log.Warnf("diff summary disagrees with numstat for %s..%s (%d vs %d files)",
				fromRef, toRef, totals.FilesChanged, stats.FilesChanged)
		}
	}
	return stats, nil
}

// classifyChange derives a change type from a numstat line: a renamed
// path carries the rename marker, a file with only insertions was added,
// one with only deletions was deleted, anything else was modified.
func classifyChange(line NumstatLine) string {
	switch {
	case strings.Contains(line.Path, RenameMarker):
		return ChangeRenamed
	case line.Insertions > 0 && line.Deletions == 0:
		return ChangeAdded
	case line.Deletions > 0 && line.Insertions == 0:
		return ChangeDeleted
	default:
		return ChangeModified
	}
}
