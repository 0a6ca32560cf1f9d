package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

func (s *DB) AddFileChange(ctx context.Context, fc *FileChange) error {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO file_changes (commit_id, file_path, change_type, insertions, deletions)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`, fc.CommitID, fc.FilePath, fc.ChangeType, fc.Insertions, fc.Deletions).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to insert file change for commit %d: %w", fc.CommitID, err)
	}
	fc.ID = id
	return nil
}

func (s *DB) GetFileChangesByCommit(ctx context.Context, commitID int64) ([]FileChange, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, commit_id, file_path, change_type, insertions, deletions
		FROM file_changes WHERE commit_id = ?
		ORDER BY file_path
	`, commitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFileChanges(rows)
}

func (s *DB) GetFileChangesByDateRange(ctx context.Context, start, end time.Time, repoIDs []int64) ([]FileChange, error) {
	query := `
		SELECT fc.id, fc.commit_id, fc.file_path, fc.change_type, fc.insertions, fc.deletions
		FROM file_changes fc
		JOIN commits c ON fc.commit_id = c.id
		WHERE c.committed_at >= ? AND c.committed_at <= ?
	`
	args := []any{start, end}
	if len(repoIDs) > 0 {
		query += " AND c.repo_id IN (" + placeholders(len(repoIDs)) + ")"
		for _, id := range repoIDs {
			args = append(args, id)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFileChanges(rows)
}

func scanFileChanges(rows *sql.Rows) ([]FileChange, error) {
	var changes []FileChange
	for rows.Next() {
		var fc FileChange
		if err := rows.Scan(&fc.ID, &fc.CommitID, &fc.FilePath, &fc.ChangeType,
			&fc.Insertions, &fc.Deletions); err != nil {
			return nil, err
		}
		changes = append(changes, fc)
	}
	return changes, rows.Err()
}
