package db

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const migrationsSQL = `
CREATE TABLE IF NOT EXISTS verbs (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	v1              TEXT NOT NULL UNIQUE,
	v2              TEXT NOT NULL,
	v3              TEXT NOT NULL,
	meaning         TEXT NOT NULL DEFAULT '',
	example         TEXT NOT NULL DEFAULT '',
	example_meaning TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS user_examples (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	verb_id  INTEGER NOT NULL REFERENCES verbs(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	text     TEXT NOT NULL,
	added_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (verb_id, position)
);

CREATE INDEX IF NOT EXISTS idx_user_examples_verb ON user_examples(verb_id, position);
`

// Open opens the SQLite database at path and runs migrations. A single
// connection keeps writes serialized and makes ":memory:" behave as one database.
func Open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(1)
	if err := InitDB(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// InitDB runs migrations on the given DB connection using the embedded SQL.
func InitDB(db *sql.DB) error {
	stmts := strings.Split(migrationsSQL, ";")
	for _, s := range stmts {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
