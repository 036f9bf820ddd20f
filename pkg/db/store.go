package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/japaniel/verbpractice/pkg/content"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// UpsertVerb inserts the verb or refreshes its forms and texts, returning its id.
// User examples are not touched.
func UpsertVerb(db DBExecutor, v content.VerbRecord) (int64, error) {
	base := strings.TrimSpace(v.BaseForm)
	if base == "" {
		return 0, fmt.Errorf("v1 must be non-empty")
	}

	var id int64
	err := db.QueryRow(`INSERT INTO verbs (v1, v2, v3, meaning, example, example_meaning)
			  VALUES (?, ?, ?, ?, ?, ?)
			  ON CONFLICT(v1) DO UPDATE SET
			    v2 = excluded.v2,
			    v3 = excluded.v3,
			    meaning = excluded.meaning,
			    example = excluded.example,
			    example_meaning = excluded.example_meaning
			  RETURNING id`,
		base, v.PastForm, v.ParticipleForm, v.Meaning, v.Example, v.ExampleMeaning,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert verb: %w", err)
	}
	return id, nil
}

// ImportVerbs loads a whole collection in one transaction. For every verb
// the stored user examples are replaced by the ones in the record.
func ImportVerbs(conn *sql.DB, verbs []content.VerbRecord) (int, error) {
	tx, err := conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // ignored if committed
	}()

	for _, v := range verbs {
		id, err := UpsertVerb(tx, v)
		if err != nil {
			return 0, fmt.Errorf("verb %q: %w", v.BaseForm, err)
		}
		if _, err := tx.Exec(`DELETE FROM user_examples WHERE verb_id = ?`, id); err != nil {
			return 0, fmt.Errorf("clear examples for %q: %w", v.BaseForm, err)
		}
		for pos, text := range v.UserExamples {
			if _, err := tx.Exec(`INSERT INTO user_examples (verb_id, position, text) VALUES (?, ?, ?)`, id, pos, text); err != nil {
				return 0, fmt.Errorf("example %d for %q: %w", pos, v.BaseForm, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return len(verbs), nil
}

// ListVerbs returns every verb in insertion order with its user examples in
// the order they were added.
func ListVerbs(db DBExecutor) ([]content.VerbRecord, error) {
	rows, err := db.Query(`SELECT id, v1, v2, v3, meaning, example, example_meaning FROM verbs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []content.VerbRecord
	byID := make(map[int64]int)
	for rows.Next() {
		var id int64
		var v content.VerbRecord
		if err := rows.Scan(&id, &v.BaseForm, &v.PastForm, &v.ParticipleForm, &v.Meaning, &v.Example, &v.ExampleMeaning); err != nil {
			return nil, err
		}
		byID[id] = len(out)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	exRows, err := db.Query(`SELECT verb_id, text FROM user_examples ORDER BY verb_id, position`)
	if err != nil {
		return nil, err
	}
	defer exRows.Close()
	for exRows.Next() {
		var verbID int64
		var text string
		if err := exRows.Scan(&verbID, &text); err != nil {
			return nil, err
		}
		if i, ok := byID[verbID]; ok {
			out[i].UserExamples = append(out[i].UserExamples, text)
		}
	}
	if err := exRows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AppendUserExample stores text as the next user example of the verb keyed by baseForm.
func AppendUserExample(db DBExecutor, baseForm, text string) error {
	var verbID int64
	err := db.QueryRow(`SELECT id FROM verbs WHERE v1 = ?`, baseForm).Scan(&verbID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("verb %q: %w", baseForm, content.ErrNotFound)
	}
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT INTO user_examples (verb_id, position, text)
		SELECT ?, COALESCE(MAX(position), -1) + 1, ?
		FROM user_examples WHERE verb_id = ?`,
		verbID, text, verbID)
	if err != nil {
		return fmt.Errorf("insert user example: %w", err)
	}
	return nil
}

// VerbBackend keeps the verb collection in SQLite. Saving a sentence inserts
// one row instead of rewriting the collection.
type VerbBackend struct {
	DB *sql.DB
}

func (b VerbBackend) LoadVerbs() ([]content.VerbRecord, error) {
	verbs, err := ListVerbs(b.DB)
	if err != nil {
		return nil, fmt.Errorf("%w: list verbs: %v", content.ErrDataUnavailable, err)
	}
	if len(verbs) == 0 {
		return nil, fmt.Errorf("%w: no verbs in database, import a verb file first", content.ErrDataUnavailable)
	}
	return verbs, nil
}

func (b VerbBackend) SaveUserExample(_ []content.VerbRecord, baseForm, sentence string) error {
	return AppendUserExample(b.DB, baseForm, sentence)
}
