// Package app wires configuration, storage and the terminal front end
// together for the verbpractice command.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/japaniel/verbpractice/pkg/config"
	"github.com/japaniel/verbpractice/pkg/content"
	"github.com/japaniel/verbpractice/pkg/db"
	"github.com/japaniel/verbpractice/pkg/harvest"
)

// OpenStore opens the content store on the configured backend. The returned
// close function releases the backend and is never nil.
func OpenStore(cfg *config.Config, logger *slog.Logger) (*content.Store, func() error, error) {
	noop := func() error { return nil }

	var backend content.VerbBackend
	closer := noop
	switch cfg.Data.Backend {
	case config.BackendSQLite:
		conn, err := db.Open(cfg.Data.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("%w: open database %s: %v", content.ErrDataUnavailable, cfg.Data.SQLitePath, err)
		}
		backend = db.VerbBackend{DB: conn}
		closer = conn.Close
	default:
		backend = content.FileBackend{Path: cfg.Data.VerbsPath}
	}

	store, err := content.Open(backend, cfg.Data.ComparisonsPath, logger)
	if err != nil {
		_ = closer()
		return nil, noop, err
	}
	logger.Debug("store opened", "backend", cfg.Data.Backend)
	return store, closer, nil
}

// InitData writes the bundled starter documents to the configured paths,
// keeping files that already exist.
func InitData(cfg *config.Config) ([]string, error) {
	return content.WriteSeed(cfg.Data.VerbsPath, cfg.Data.ComparisonsPath)
}

// ImportSQLite copies the verb document at cfg.Data.VerbsPath into the
// SQLite database at cfg.Data.SQLitePath.
func ImportSQLite(cfg *config.Config, logger *slog.Logger) (int, error) {
	verbs, err := content.LoadVerbs(cfg.Data.VerbsPath)
	if err != nil {
		return 0, err
	}
	conn, err := db.Open(cfg.Data.SQLitePath)
	if err != nil {
		return 0, fmt.Errorf("open database %s: %w", cfg.Data.SQLitePath, err)
	}
	defer conn.Close()

	n, err := db.ImportVerbs(conn, verbs)
	if err != nil {
		return 0, err
	}
	logger.Info("verbs imported", "count", n, "from", cfg.Data.VerbsPath, "to", cfg.Data.SQLitePath)
	return n, nil
}

// Harvest proposes example sentences for the store's verbs from the pages
// at urls and prints them to out. With save set, each proposal is appended
// to its verb's user examples. It returns how many were saved.
func Harvest(ctx context.Context, store *content.Store, h *harvest.Harvester, urls []string, limit int, save bool, out io.Writer) (int, error) {
	matches, err := h.Harvest(ctx, urls, store.Verbs(), limit)
	if err != nil {
		return 0, err
	}
	if len(matches) == 0 {
		fmt.Fprintln(out, "No example sentences found.")
		return 0, nil
	}

	saved := 0
	current := ""
	for _, m := range matches {
		if m.BaseForm != current {
			current = m.BaseForm
			fmt.Fprintf(out, "%s:\n", current)
		}
		fmt.Fprintf(out, "  - %s\n", m.Sentence)
		if !save {
			continue
		}
		if err := store.AppendUserExample(m.BaseForm, m.Sentence); err != nil {
			if errors.Is(err, content.ErrNotFound) {
				continue
			}
			return saved, err
		}
		saved++
	}
	if save {
		fmt.Fprintf(out, "Saved %d sentences.\n", saved)
	}
	return saved, nil
}
