package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// AddCommit inserts a commit and returns its id, plus whether a new row
// was created. A commit whose hash was already ingested for the
// repository is a no-op that resolves to the existing row's id with
// created=false, so callers can skip re-inserting child rows.
func (s *DB) AddCommit(ctx context.Context, commit *Commit) (int64, bool, error) {
	var id int64
	created := true
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO commits (repo_id, hash, author, email, committed_at, message,
			files_changed, insertions, deletions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (repo_id, hash) DO NOTHING
		RETURNING id
	`, commit.RepoID, commit.Hash, commit.Author, commit.Email, commit.Date,
		commit.Message, commit.FilesChanged, commit.Insertions, commit.Deletions).Scan(&id)
	if err == sql.ErrNoRows {
		// Conflict path: the row already exists.
		created = false
		err = s.db.QueryRowContext(ctx, `
			SELECT id FROM commits WHERE repo_id = ? AND hash = ?
		`, commit.RepoID, commit.Hash).Scan(&id)
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to insert commit %s: %w", commit.Hash, err)
	}
	commit.ID = id
	return id, created, nil
}

func (s *DB) GetLatestCommitDate(ctx context.Context, repoID int64) (*time.Time, error) {
	var latest sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(committed_at) FROM commits WHERE repo_id = ?
	`, repoID).Scan(&latest)
	if err != nil {
		return nil, err
	}
	if !latest.Valid {
		return nil, nil
	}
	t := latest.Time
	return &t, nil
}

func (s *DB) GetCommitsByRepository(ctx context.Context, repoID int64) ([]Commit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, repo_id, hash, author, email, committed_at, message,
			files_changed, insertions, deletions
		FROM commits WHERE repo_id = ?
		ORDER BY committed_at DESC
	`, repoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCommits(rows)
}

// GetCommitsByDateRange returns the commits in [start, end], optionally
// restricted to a set of repositories and to authors whose name or email
// contains the author filter.
func (s *DB) GetCommitsByDateRange(ctx context.Context, start, end time.Time, repoIDs []int64, author string) ([]Commit, error) {
	query := `
		SELECT id, repo_id, hash, author, email, committed_at, message,
			files_changed, insertions, deletions
		FROM commits
		WHERE committed_at >= ? AND committed_at <= ?
	`
	args := []any{start, end}

	if len(repoIDs) > 0 {
		query += " AND repo_id IN (" + placeholders(len(repoIDs)) + ")"
		for _, id := range repoIDs {
			args = append(args, id)
		}
	}
	if author != "" {
		query += " AND (author LIKE ? OR email LIKE ?)"
		pattern := "%" + author + "%"
		args = append(args, pattern, pattern)
	}
	query += " ORDER BY committed_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCommits(rows)
}

func scanCommits(rows *sql.Rows) ([]Commit, error) {
	var commits []Commit
	for rows.Next() {
		var c Commit
		if err := rows.Scan(&c.ID, &c.RepoID, &c.Hash, &c.Author, &c.Email,
			&c.Date, &c.Message, &c.FilesChanged, &c.Insertions, &c.Deletions); err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return commits, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
