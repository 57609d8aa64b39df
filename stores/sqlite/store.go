package sqlite

import (
	"context"
	"database/sql"
	"log"

	_ "modernc.org/sqlite"
)

// The store holds at most one row; the fixed key keeps Save idempotent.
const folderKey = "default"

type sqliteStore struct {
	db *sql.DB
}

// NewStore creates a new SQLite-based store.
func NewStore(dataSourceName string) *sqliteStore {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		log.Fatalf("failed to open sqlite database: %v", err)
	}

	stmt := `CREATE TABLE IF NOT EXISTS drive_folder (name TEXT PRIMARY KEY, folder_id TEXT NOT NULL);`
	if _, err = db.Exec(stmt); err != nil {
		log.Fatalf("failed to create drive_folder table: %v", err)
	}

	return &sqliteStore{db}
}

// Load returns the cached folder id, or "" when none has been stored yet.
func (s *sqliteStore) Load(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, "SELECT folder_id FROM drive_folder WHERE name = ?", folderKey).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *sqliteStore) Save(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO drive_folder (name, folder_id) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET folder_id = excluded.folder_id",
		folderKey, id)
	return err
}
