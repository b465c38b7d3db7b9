package store

// SQLite bootstrap. The schema is created on startup if absent; there is
// no migration mechanism.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS books (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL,
	author      TEXT NOT NULL,
	isbn        TEXT UNIQUE,
	description TEXT,
	cover_url   TEXT,
	created_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS reviews (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	book_id    INTEGER NOT NULL REFERENCES books(id) ON DELETE CASCADE,
	user_name  TEXT NOT NULL,
	rating     INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
	comment    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reviews_book_id ON reviews (book_id);
`

// Open opens (or creates) the SQLite database at path and ensures the
// schema exists. Foreign keys are enabled so deleting a book cascades to
// its reviews. SQLite allows a single writer, so the pool is capped at
// one connection; every repository shares the returned handle.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite (%s): %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}
