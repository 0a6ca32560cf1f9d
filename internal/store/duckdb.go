package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Schema defines the DuckDB tables. Ids come from sequences so the insert
// helpers can return them via RETURNING.
const Schema = `
CREATE SEQUENCE IF NOT EXISTS repositories_id_seq START 1;
CREATE SEQUENCE IF NOT EXISTS commits_id_seq START 1;
CREATE SEQUENCE IF NOT EXISTS file_changes_id_seq START 1;

CREATE TABLE IF NOT EXISTS repositories (
    id BIGINT PRIMARY KEY DEFAULT nextval('repositories_id_seq'),
    name VARCHAR NOT NULL,
    path VARCHAR UNIQUE NOT NULL,
    remote_url VARCHAR DEFAULT '',
    last_synced TIMESTAMP
);

CREATE TABLE IF NOT EXISTS commits (
    id BIGINT PRIMARY KEY DEFAULT nextval('commits_id_seq'),
    repo_id BIGINT NOT NULL REFERENCES repositories(id),
    hash VARCHAR NOT NULL,
    author VARCHAR NOT NULL,
    email VARCHAR NOT NULL,
    committed_at TIMESTAMP NOT NULL,
    message VARCHAR NOT NULL,
    files_changed INTEGER DEFAULT 0,
    insertions INTEGER DEFAULT 0,
    deletions INTEGER DEFAULT 0,
    UNIQUE(repo_id, hash)
);

CREATE TABLE IF NOT EXISTS file_changes (
    id BIGINT PRIMARY KEY DEFAULT nextval('file_changes_id_seq'),
    commit_id BIGINT NOT NULL REFERENCES commits(id),
    file_path VARCHAR NOT NULL,
    change_type VARCHAR NOT NULL,
    insertions INTEGER DEFAULT 0,
    deletions INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_commits_repo ON commits(repo_id);
CREATE INDEX IF NOT EXISTS idx_commits_date ON commits(committed_at);
CREATE INDEX IF NOT EXISTS idx_file_changes_commit ON file_changes(commit_id);
`

// DB is the DuckDB-backed Store.
type DB struct {
	db *sql.DB
}

// Open initializes a DuckDB database at path, creating the parent
// directory and the schema as needed. An empty path opens an in-memory
// database, which the tests rely on.
func Open(path string) (*DB, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DuckDB: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the underlying connection.
func (s *DB) Close() error {
	return s.db.Close()
}
