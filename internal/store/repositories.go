package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

func (s *DB) GetRepository(ctx context.Context, path string) (*Repository, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, path, remote_url, last_synced
		FROM repositories WHERE path = ?
	`, path)
	repo, err := scanRepository(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return repo, err
}

func (s *DB) AddRepository(ctx context.Context, repo *Repository) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO repositories (name, path, remote_url, last_synced)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`, repo.Name, repo.Path, repo.RemoteURL, repo.LastSynced).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert repository: %w", err)
	}
	repo.ID = id
	return id, nil
}

// UpdateLastSynced advances the sync watermark. A timestamp behind the
// stored one is ignored; the watermark only moves forward.
func (s *DB) UpdateLastSynced(ctx context.Context, id int64, ts time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE repositories SET last_synced = ?
		WHERE id = ? AND (last_synced IS NULL OR last_synced < ?)
	`, ts, id, ts)
	return err
}

func (s *DB) GetAllRepositories(ctx context.Context) ([]Repository, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, path, remote_url, last_synced
		FROM repositories ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var repos []Repository
	for rows.Next() {
		repo, err := scanRepository(rows)
		if err != nil {
			return nil, err
		}
		repos = append(repos, *repo)
	}
	return repos, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRepository(row rowScanner) (*Repository, error) {
	var repo Repository
	var remoteURL sql.NullString
	var lastSynced sql.NullTime
	if err := row.Scan(&repo.ID, &repo.Name, &repo.Path, &remoteURL, &lastSynced); err != nil {
		return nil, err
	}
	repo.RemoteURL = remoteURL.String
	if lastSynced.Valid {
		t := lastSynced.Time
		repo.LastSynced = &t
	}
	return &repo, nil
}
