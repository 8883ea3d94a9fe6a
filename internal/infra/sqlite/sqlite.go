// Package sqlite serves the question corpus from an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // driver: sqlite
)

const schema = `
CREATE TABLE IF NOT EXISTS questions (
  id            TEXT PRIMARY KEY,
  language      TEXT    NOT NULL,
  difficulty    TEXT    NOT NULL,
  category      TEXT    NOT NULL,
  text          TEXT    NOT NULL,
  options_json  TEXT    NOT NULL,
  correct_index INTEGER NOT NULL,
  position      INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS questions_tier_idx ON questions (language, difficulty, position);
`

// Open opens (creating if needed) the database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return db, nil
}
