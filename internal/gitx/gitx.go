// Package gitx provides read-only access to git repositories: branch
// listing, commit log enumeration and diff statistics. All history access
// in the rest of the codebase goes through the Client interface so the
// sync pipeline can be tested against fakes.
package gitx

import (
	"context"
	"time"
)

// EmptyTreeRef is the canonical git empty-tree object. Diffing a commit
// against it yields the commit's full content, which is how stats are
// computed for root commits that have no parent.
const EmptyTreeRef = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// RenameMarker separates the old and new path of a renamed file in
// numstat output.
const RenameMarker = " => "

// LogEntry is a single commit as surfaced by the log, without diff stats.
type LogEntry struct {
	Hash        string
	AuthorName  string
	AuthorEmail string
	Date        time.Time
	Message     string
}

// BranchSummary holds the currently checked-out branch (empty when the
// repository is in a detached state) and every known branch name. Remote
// tracking branches appear as "origin/<name>".
type BranchSummary struct {
	Current string
	All     []string
}

// LogOptions bound a log enumeration.
type LogOptions struct {
	MaxCount int
	Since    time.Time // zero means unbounded
	Branch   string    // empty means HEAD
}

// DiffTotals is the commit-level roll-up of a diff.
type DiffTotals struct {
	FilesChanged int
	Insertions   int
	Deletions    int
}

// NumstatLine is the per-file portion of a diff. Renamed files carry
// "old => new" in Path. Binary files report zero counts.
type NumstatLine struct {
	Path       string
	Insertions int
	Deletions  int
	Binary     bool
}

// Client is the version-control access port consumed by the fetcher, the
// stats resolver and the sync orchestrator.
type Client interface {
	ListBranches(ctx context.Context, repoPath string) (BranchSummary, error)
	Log(ctx context.Context, repoPath string, opts LogOptions) ([]LogEntry, error)
	DiffSummary(ctx context.Context, repoPath, fromRef, toRef string) (DiffTotals, error)
	DiffNumstat(ctx context.Context, repoPath, fromRef, toRef string) ([]NumstatLine, error)
	RemoteURL(ctx context.Context, repoPath string) (string, error)
}

// Logger receives diagnostics for degradable failures. The CLI wires in a
// verbose-gated implementation; tests use a no-op.
type Logger interface {
	Warnf(format string, args ...any)
}

// NopLogger discards all diagnostics.
type NopLogger struct{}

func (NopLogger) Warnf(string, ...any) {}
