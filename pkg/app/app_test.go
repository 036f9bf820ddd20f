package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/japaniel/verbpractice/pkg/config"
	"github.com/japaniel/verbpractice/pkg/content"
	"github.com/japaniel/verbpractice/pkg/harvest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Data: config.DataConfig{
			VerbsPath:       filepath.Join(dir, content.VerbsFile),
			ComparisonsPath: filepath.Join(dir, content.ComparisonsFile),
			Backend:         backend,
			SQLitePath:      filepath.Join(dir, "verbs.db"),
		},
	}
}

func TestInitDataThenOpenStore(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t, config.BackendJSON)

	written, err := InitData(cfg)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{cfg.Data.VerbsPath, cfg.Data.ComparisonsPath}, written)

	store, closeStore, err := OpenStore(cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeStore() })

	assert.NotEmpty(t, store.Verbs())
	assert.NotEmpty(t, store.Comparisons())
}

func TestOpenStore_MissingData(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t, config.BackendJSON)

	_, closeStore, err := OpenStore(cfg, discardLogger())
	require.ErrorIs(t, err, content.ErrDataUnavailable)
	require.NotNil(t, closeStore)
	assert.NoError(t, closeStore())
}

func TestOpenStore_SQLiteNeedsImport(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t, config.BackendSQLite)
	_, err := InitData(cfg)
	require.NoError(t, err)

	_, _, err = OpenStore(cfg, discardLogger())
	require.ErrorIs(t, err, content.ErrDataUnavailable, "an empty database has no verbs")

	n, err := ImportSQLite(cfg, discardLogger())
	require.NoError(t, err)

	store, closeStore, err := OpenStore(cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeStore() })
	assert.Len(t, store.Verbs(), n)

	require.NoError(t, store.AppendUserExample("go", "I go to school."))
	require.NoError(t, closeStore())

	// A second open sees the sentence saved through SQLite.
	store, closeAgain, err := OpenStore(cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeAgain() })
	v, err := store.Verb("go")
	require.NoError(t, err)
	assert.Equal(t, []string{"I go to school."}, v.UserExamples)
}

const harvestPage = `<!DOCTYPE html>
<html><head><title>Weekend</title></head>
<body><article>
<h1>Weekend</h1>
<p>On Saturday we went to the market early in the morning and bought fresh bread for the whole family. The stalls were busy and the sellers were shouting their prices across the square.</p>
<p>Later my sister wrote a long letter to our grandmother, telling her about the market and the people we had met there. It was a quiet afternoon and nobody wanted to leave the garden.</p>
</article></body></html>`

func TestHarvest_SaveAppendsSentences(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(harvestPage))
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(t, config.BackendJSON)
	_, err := InitData(cfg)
	require.NoError(t, err)
	store, closeStore, err := OpenStore(cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeStore() })

	h := &harvest.Harvester{Fetcher: &harvest.Fetcher{Client: srv.Client()}, Workers: 1, Logger: discardLogger()}

	var out bytes.Buffer
	saved, err := Harvest(context.Background(), store, h, []string{srv.URL}, 1, true, &out)
	require.NoError(t, err)
	assert.Positive(t, saved)
	assert.Contains(t, out.String(), "go:\n")
	assert.Contains(t, out.String(), "write:\n")

	goVerb, err := store.Verb("go")
	require.NoError(t, err)
	require.Len(t, goVerb.UserExamples, 1)
	assert.Contains(t, goVerb.UserExamples[0], "we went to the market")

	reloaded, err := content.LoadVerbs(cfg.Data.VerbsPath)
	require.NoError(t, err)
	total := 0
	for _, v := range reloaded {
		total += len(v.UserExamples)
	}
	assert.Equal(t, saved, total, "every saved sentence reached the file")

	// Saved sentences are not proposed again.
	out.Reset()
	_, err = Harvest(context.Background(), store, h, []string{srv.URL}, 1, true, &out)
	require.NoError(t, err)
	for _, v := range store.Verbs() {
		seen := map[string]bool{}
		for _, s := range v.UserExamples {
			assert.False(t, seen[s], "duplicate example %q for %s", s, v.BaseForm)
			seen[s] = true
		}
	}
}

func TestHarvest_DryRunSavesNothing(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(harvestPage))
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(t, config.BackendJSON)
	_, err := InitData(cfg)
	require.NoError(t, err)
	store, closeStore, err := OpenStore(cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeStore() })

	h := &harvest.Harvester{Fetcher: &harvest.Fetcher{Client: srv.Client()}, Workers: 1, Logger: discardLogger()}

	var out bytes.Buffer
	saved, err := Harvest(context.Background(), store, h, []string{srv.URL}, 0, false, &out)
	require.NoError(t, err)
	assert.Zero(t, saved)
	assert.Contains(t, out.String(), "went to the market")

	for _, v := range store.Verbs() {
		assert.Empty(t, v.UserExamples, v.BaseForm)
	}
}
