package content

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

// SQLiteStore persists content snapshots so checks can run without the
// content tree on disk.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the content index at dbPath.
// Use ":memory:" for an in-memory database.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryDatabase, "open content index").
			WithContext("path", dbPath).Build()
	}
	// A single connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, ferrors.WrapError(err, ferrors.CategoryDatabase, "initialize content index schema").Build()
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS content_entries (
		slug TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		path TEXT NOT NULL DEFAULT '',
		fingerprint TEXT NOT NULL DEFAULT '',
		draft INTEGER NOT NULL DEFAULT 0,
		indexed_at INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save replaces the indexed content with snap.
func (s *SQLiteStore) Save(ctx context.Context, snap *Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryDatabase, "begin index transaction").Build()
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM content_entries"); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryDatabase, "clear content index").Build()
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO content_entries (slug, title, path, fingerprint, draft, indexed_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryDatabase, "prepare content insert").Build()
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().Unix()
	for _, e := range snap.Entries() {
		if _, err := stmt.ExecContext(ctx, e.Slug, e.Title, e.Path, e.Fingerprint, e.Draft, now); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryDatabase, "insert content entry").
				WithContext("slug", e.Slug).Build()
		}
	}

	if err := tx.Commit(); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryDatabase, "commit content index").Build()
	}
	return nil
}

// Load reads the indexed content into a snapshot.
func (s *SQLiteStore) Load(ctx context.Context) (*Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT slug, title, path, fingerprint, draft FROM content_entries ORDER BY slug")
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryDatabase, "query content index").Build()
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Slug, &e.Title, &e.Path, &e.Fingerprint, &e.Draft); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryDatabase, "scan content entry").Build()
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryDatabase, "iterate content index").Build()
	}
	return NewSnapshot(entries...), nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close content index: %w", err)
	}
	return nil
}
