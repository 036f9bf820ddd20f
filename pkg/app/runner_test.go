package app

import (
	"bytes"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/japaniel/verbpractice/pkg/content"
	"github.com/japaniel/verbpractice/pkg/practice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goVerbJSON = `[{"v1": "go", "v2": "went", "v3": "gone", "meaning": "đi", "example": "I go to work every day.", "example_meaning": "Tôi đi làm mỗi ngày."}]`

const bigComparisonJSON = `{"data": [{"base": "big", "meaning": "to", "comparative": "bigger", "superlative": "biggest", "example": "This is the biggest house."}]}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// openStore writes a one-verb, one-adjective data set and opens it.
func openStore(t *testing.T) (*content.Store, string) {
	t.Helper()
	dir := t.TempDir()
	verbsPath := filepath.Join(dir, content.VerbsFile)
	comparisonsPath := filepath.Join(dir, content.ComparisonsFile)
	require.NoError(t, os.WriteFile(verbsPath, []byte(goVerbJSON), 0o644))
	require.NoError(t, os.WriteFile(comparisonsPath, []byte(bigComparisonJSON), 0o644))

	store, err := content.Open(content.FileBackend{Path: verbsPath}, comparisonsPath, discardLogger())
	require.NoError(t, err)
	return store, verbsPath
}

func runVerbs(t *testing.T, store *content.Store, input string) string {
	t.Helper()
	var out bytes.Buffer
	r := NewRunner(store, strings.NewReader(input), &out, newRand(1), discardLogger())
	require.NoError(t, r.PracticeVerbs())
	return out.String()
}

func TestRunner_CorrectAnswerAndSave(t *testing.T) {
	t.Parallel()
	store, verbsPath := openStore(t)

	out := runVerbs(t, store, "went\ngone\ns\nI go to school.\nq\n")

	assert.Contains(t, out, "== go ==")
	assert.Contains(t, out, "Correct!")
	assert.Contains(t, out, "Example: I go to work every day.")
	assert.Contains(t, out, "Saved!")
	assert.Contains(t, out, "1. I go to school.", "saved sentences are listed after saving")
	assert.True(t, strings.HasSuffix(out, "Bye!\n"))

	v, err := store.Verb("go")
	require.NoError(t, err)
	assert.Equal(t, []string{"I go to school."}, v.UserExamples)

	onDisk, err := content.LoadVerbs(verbsPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"I go to school."}, onDisk[0].UserExamples)
}

func TestRunner_AnswersAreNormalized(t *testing.T) {
	t.Parallel()
	store, _ := openStore(t)

	out := runVerbs(t, store, "  WENT \nGone\nq\n")
	assert.Contains(t, out, "Correct!")
}

func TestRunner_WrongAnswer(t *testing.T) {
	t.Parallel()
	store, _ := openStore(t)

	out := runVerbs(t, store, "goed\ngone\nq\n")

	assert.Contains(t, out, "Not correct.")
	assert.Contains(t, out, "V2: went")
	assert.Contains(t, out, "V3: gone")
	assert.NotContains(t, out, "[s]ave", "saving is offered only after a correct answer")
}

func TestRunner_EmptySentenceIsRejected(t *testing.T) {
	t.Parallel()
	store, verbsPath := openStore(t)
	before, err := os.ReadFile(verbsPath)
	require.NoError(t, err)

	out := runVerbs(t, store, "went\ngone\ns\n   \nq\n")

	assert.Contains(t, out, "Please write a sentence first.")
	v, err := store.Verb("go")
	require.NoError(t, err)
	assert.Empty(t, v.UserExamples)

	after, err := os.ReadFile(verbsPath)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "nothing is written for an empty sentence")
}

func TestRunner_SentenceSavedVerbatim(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		typed string
		want  string
	}{
		{name: "angle brackets", typed: "I go to <school> daily.", want: "I go to <school> daily."},
		{name: "entity text", typed: "Tom &amp; Jerry go.", want: "Tom &amp; Jerry go."},
		{name: "markup", typed: "<b>We went home.</b>", want: "<b>We went home.</b>"},
		{name: "surrounding space trimmed", typed: "  I  went  \t", want: "I  went"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store, verbsPath := openStore(t)

			runVerbs(t, store, "went\ngone\ns\n"+tt.typed+"\nn\nq\n")

			v, err := store.Verb("go")
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, v.UserExamples)

			onDisk, err := content.LoadVerbs(verbsPath)
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, onDisk[0].UserExamples)
		})
	}
}

func TestRunner_NextDrawsAgain(t *testing.T) {
	t.Parallel()
	store, _ := openStore(t)

	out := runVerbs(t, store, "goed\ngoed\nn\nwent\ngone\nq\n")

	assert.Equal(t, 2, strings.Count(out, "== go =="))
	assert.Contains(t, out, "Not correct.")
	assert.Contains(t, out, "Correct!")
}

func TestRunner_EndOfInputQuits(t *testing.T) {
	t.Parallel()
	store, _ := openStore(t)

	out := runVerbs(t, store, "went\n")
	assert.Contains(t, out, "V3: ")
	assert.True(t, strings.HasSuffix(out, "Bye!\n"))
}

func TestRunner_UnknownMenuChoiceRepeats(t *testing.T) {
	t.Parallel()
	store, _ := openStore(t)

	out := runVerbs(t, store, "goed\ngone\nx\n\nq\n")
	assert.Equal(t, 3, strings.Count(out, "[n] another verb, [q]uit: "))
}

func TestRunner_Comparisons(t *testing.T) {
	t.Parallel()
	store, _ := openStore(t)

	// The runner draws with the same sequence, so the mode is known up front.
	d, err := practice.SelectRandomItem(newRand(7), practice.ComparisonTrack{}, store.Comparisons())
	require.NoError(t, err)
	want := practice.ComparisonTrack{}.Expected(d.Item, d.Mode)[0]

	var out bytes.Buffer
	r := NewRunner(store, strings.NewReader(want+"\nq\n"), &out, newRand(7), discardLogger())
	require.NoError(t, r.PracticeComparisons())

	assert.Contains(t, out.String(), d.Mode.String()+` form of "big": `)
	assert.Contains(t, out.String(), "Correct!")
	assert.Contains(t, out.String(), "Example: This is the biggest house.")
}

func TestRunner_ComparisonsWrong(t *testing.T) {
	t.Parallel()
	store, _ := openStore(t)

	var out bytes.Buffer
	r := NewRunner(store, strings.NewReader("more big\nq\n"), &out, newRand(3), discardLogger())
	require.NoError(t, r.PracticeComparisons())

	assert.Contains(t, out.String(), "Not correct.")
	assert.Regexp(t, `(comparative: bigger|superlative: biggest)`, out.String())
}
