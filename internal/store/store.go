// Package store persists repositories, commits and file changes in a
// local DuckDB database and serves the range queries the reporting side
// is built on.
package store

import (
	"context"
	"time"
)

// Repository is a tracked checkout. Path is the unique upsert key.
type Repository struct {
	ID         int64
	Name       string
	Path       string
	RemoteURL  string
	LastSynced *time.Time
}

// Commit is one ingested commit. (RepoID, Hash) is unique; rows are never
// mutated after insert.
type Commit struct {
	ID           int64
	RepoID       int64
	Hash         string
	Author       string
	Email        string
	Date         time.Time
	Message      string
	FilesChanged int
	Insertions   int
	Deletions    int
}

// FileChange is one file's diff within a commit.
type FileChange struct {
	ID         int64
	CommitID   int64
	FilePath   string
	ChangeType string
	Insertions int
	Deletions  int
}

// Store is the persistence port consumed by the sync pipeline and the
// summary builder. Lookups that miss return nil rather than an error.
type Store interface {
	GetRepository(ctx context.Context, path string) (*Repository, error)
	AddRepository(ctx context.Context, repo *Repository) (int64, error)
	UpdateLastSynced(ctx context.Context, id int64, ts time.Time) error
	GetAllRepositories(ctx context.Context) ([]Repository, error)

	AddCommit(ctx context.Context, commit *Commit) (int64, bool, error)
	GetLatestCommitDate(ctx context.Context, repoID int64) (*time.Time, error)
	GetCommitsByRepository(ctx context.Context, repoID int64) ([]Commit, error)
	GetCommitsByDateRange(ctx context.Context, start, end time.Time, repoIDs []int64, author string) ([]Commit, error)

	AddFileChange(ctx context.Context, fc *FileChange) error
	GetFileChangesByCommit(ctx context.Context, commitID int64) ([]FileChange, error)
	GetFileChangesByDateRange(ctx context.Context, start, end time.Time, repoIDs []int64) ([]FileChange, error)

	Close() error
}
