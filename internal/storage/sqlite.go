// Package storage persists audit reports to SQLite.
package storage

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id            TEXT PRIMARY KEY,
	article_id    INTEGER NOT NULL,
	article_url   TEXT NOT NULL,
	article_title TEXT NOT NULL,
	score         INTEGER NOT NULL,
	max_score     INTEGER NOT NULL,
	generated_at  TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_article_id ON reports(article_id);
CREATE INDEX IF NOT EXISTS idx_reports_generated_at ON reports(generated_at);

CREATE TABLE IF NOT EXISTS verdicts (
	report_id      TEXT NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
	position       INTEGER NOT NULL,
	criterion_id   TEXT NOT NULL,
	status         TEXT NOT NULL,
	rationale      TEXT NOT NULL,
	recommendation TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (report_id, position)
);
`

// Open opens (creating if needed) the SQLite database at path and applies
// the schema.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
