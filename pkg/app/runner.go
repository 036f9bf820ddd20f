package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/japaniel/verbpractice/pkg/content"
	"github.com/japaniel/verbpractice/pkg/practice"
)

// errQuit ends a practice loop without an error.
var errQuit = errors.New("quit")

// Runner is the terminal front end: it reads answers line by line and
// prints prompts and results.
type Runner struct {
	store  *content.Store
	in     *bufio.Scanner
	out    io.Writer
	rng    *rand.Rand
	logger *slog.Logger
}

// NewRunner builds a Runner over store. rng drives every random draw.
func NewRunner(store *content.Store, in io.Reader, out io.Writer, rng *rand.Rand, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		store:  store,
		in:     bufio.NewScanner(in),
		out:    out,
		rng:    rng,
		logger: logger,
	}
}

// PracticeVerbs quizzes V2 and V3 forms until the user quits or input ends.
func (r *Runner) PracticeVerbs() error {
	s, err := practice.NewSession[content.VerbRecord](practice.VerbTrack{}, r.store.Verbs(), r.rng)
	if err != nil {
		return fmt.Errorf("start verb practice: %w", err)
	}
	return r.loop(s.ID.String(), "verbs", func() error { return r.verbRound(s) })
}

// PracticeComparisons quizzes comparative and superlative forms.
func (r *Runner) PracticeComparisons() error {
	s, err := practice.NewSession[content.ComparisonRecord](practice.ComparisonTrack{}, r.store.Comparisons(), r.rng)
	if err != nil {
		return fmt.Errorf("start comparison practice: %w", err)
	}
	return r.loop(s.ID.String(), "comparisons", func() error { return r.comparisonRound(s) })
}

func (r *Runner) loop(sessionID, track string, round func() error) error {
	log := r.logger.With("session_id", sessionID, "track", track)
	log.Info("practice started")
	for {
		err := round()
		if errors.Is(err, errQuit) {
			log.Info("practice finished")
			fmt.Fprintln(r.out, "Bye!")
			return nil
		}
		if err != nil {
			log.Error("practice aborted", "error", err)
			return err
		}
	}
}

func (r *Runner) verbRound(s *practice.Session[content.VerbRecord]) error {
	v := s.Item()
	fmt.Fprintf(r.out, "\n== %s ==\n%s\n", v.BaseForm, v.Meaning)

	v2, err := r.prompt("V2 / V-ed: ")
	if err != nil {
		return err
	}
	v3, err := r.prompt("V3: ")
	if err != nil {
		return err
	}

	outcome, err := s.Submit(v2, v3)
	if err != nil {
		return err
	}
	r.logger.Debug("answer graded", "session_id", s.ID.String(), "epoch", s.Epoch(), "verb", v.BaseForm, "outcome", outcome.String())

	if outcome == practice.OutcomeCorrect {
		fmt.Fprintln(r.out, "Correct! Great job!")
		r.printExample(v.Example, v.ExampleMeaning)
		if err := r.sentenceMenu(v.BaseForm); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(r.out, "Not correct.")
		fmt.Fprintf(r.out, "  V2: %s\n  V3: %s\n", v.PastForm, v.ParticipleForm)
		r.printExample(v.Example, v.ExampleMeaning)
		if err := r.nextOrQuit("another verb"); err != nil {
			return err
		}
	}
	return s.Advance()
}

// sentenceMenu lets the user save own sentences for a correctly answered
// verb until they move on.
func (r *Runner) sentenceMenu(baseForm string) error {
	for {
		v, err := r.store.Verb(baseForm)
		if err != nil {
			return err
		}
		if len(v.UserExamples) > 0 {
			fmt.Fprintln(r.out, "Your saved sentences:")
			for i, s := range v.UserExamples {
				fmt.Fprintf(r.out, "  %d. %s\n", i+1, s)
			}
		}

		choice, err := r.choose("[s]ave a sentence, [n]ext verb, [q]uit: ", "snq")
		if err != nil {
			return err
		}
		switch choice {
		case 'n':
			return nil
		case 'q':
			return errQuit
		}

		line, err := r.prompt("Write your sentence using this verb: ")
		if err != nil {
			return err
		}
		sentence := strings.TrimSpace(line)
		if sentence == "" {
			fmt.Fprintln(r.out, "Please write a sentence first.")
			continue
		}
		if err := r.store.AppendUserExample(baseForm, sentence); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "Saved! Your sentence has been recorded.")
	}
}

func (r *Runner) comparisonRound(s *practice.Session[content.ComparisonRecord]) error {
	c := s.Item()
	fmt.Fprintf(r.out, "\n== %s ==\n%s\n", c.BaseForm, c.Meaning)

	answer, err := r.prompt(fmt.Sprintf("%s form of %q: ", s.Mode(), c.BaseForm))
	if err != nil {
		return err
	}

	outcome, err := s.Submit(answer)
	if err != nil {
		return err
	}
	r.logger.Debug("answer graded", "session_id", s.ID.String(), "epoch", s.Epoch(), "adjective", c.BaseForm, "mode", s.Mode().String(), "outcome", outcome.String())

	if outcome == practice.OutcomeCorrect {
		fmt.Fprintln(r.out, "Correct! Great job!")
	} else {
		fmt.Fprintln(r.out, "Not correct.")
		fmt.Fprintf(r.out, "  %s: %s\n", s.Mode(), strings.Join(s.Expected(), ", "))
	}
	r.printExample(c.Example, "")
	if err := r.nextOrQuit("next word"); err != nil {
		return err
	}
	return s.Advance()
}

func (r *Runner) printExample(example, meaning string) {
	if example == "" {
		return
	}
	fmt.Fprintf(r.out, "Example: %s\n", example)
	if meaning != "" {
		fmt.Fprintf(r.out, "         %s\n", meaning)
	}
}

func (r *Runner) nextOrQuit(next string) error {
	choice, err := r.choose(fmt.Sprintf("[n] %s, [q]uit: ", next), "nq")
	if err != nil {
		return err
	}
	if choice == 'q' {
		return errQuit
	}
	return nil
}

// prompt prints label and reads one line. End of input counts as quitting.
func (r *Runner) prompt(label string) (string, error) {
	fmt.Fprint(r.out, label)
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		fmt.Fprintln(r.out)
		return "", errQuit
	}
	return r.in.Text(), nil
}

// choose repeats label until the first letter of the reply is one of options.
func (r *Runner) choose(label, options string) (byte, error) {
	for {
		line, err := r.prompt(label)
		if err != nil {
			return 0, err
		}
		line = strings.ToLower(strings.TrimSpace(line))
		if line != "" && strings.IndexByte(options, line[0]) >= 0 {
			return line[0], nil
		}
	}
}
