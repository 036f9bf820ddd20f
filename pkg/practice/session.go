package practice

import (
	"errors"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrEmptyCollection is returned when drawing from zero items.
	ErrEmptyCollection = errors.New("empty collection")
	// ErrAlreadyGraded is returned when an answer is submitted for an item
	// that has already been graded. Only Advance leaves that state.
	ErrAlreadyGraded = errors.New("item already graded")
)

// Outcome is the result of the last submitted answer.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCorrect
	OutcomeWrong
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrong:
		return "wrong"
	default:
		return "none"
	}
}

// Draw is an item together with the mode it is asked in.
type Draw[T any] struct {
	Item T
	Mode Mode
}

// SelectRandomItem draws an item uniformly from items. When the track has
// modes, a mode is drawn independently and uniformly as well.
func SelectRandomItem[T any](rng *rand.Rand, track Track[T], items []T) (Draw[T], error) {
	if len(items) == 0 {
		return Draw[T]{}, ErrEmptyCollection
	}
	d := Draw[T]{Item: items[rng.IntN(len(items))]}
	if modes := track.Modes(); len(modes) > 0 {
		d.Mode = modes[rng.IntN(len(modes))]
	}
	return d, nil
}

// Grade compares answers with expected after trimming surrounding whitespace
// and lower-casing both sides. Every answer must match its expected form.
func Grade(expected, answers []string) Outcome {
	if len(expected) == 0 || len(expected) != len(answers) {
		return OutcomeWrong
	}
	for i := range expected {
		if normalize(answers[i]) != normalize(expected[i]) {
			return OutcomeWrong
		}
	}
	return OutcomeCorrect
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Session holds one user's progress through a track: the item on screen,
// the mode it is asked in, and the outcome of the last answer.
//
// A fresh draw is awaiting an answer. Submit grades it once; after that only
// Advance moves on. Epoch increases on every Advance so a front end can
// discard input state tied to the previous item.
type Session[T any] struct {
	ID uuid.UUID

	track Track[T]
	items []T
	rng   *rand.Rand

	current Draw[T]
	outcome Outcome
	epoch   uint64
}

// NewSession starts a session on a random item from items.
func NewSession[T any](track Track[T], items []T, rng *rand.Rand) (*Session[T], error) {
	d, err := SelectRandomItem(rng, track, items)
	if err != nil {
		return nil, err
	}
	return NewSessionAt(track, items, rng, d), nil
}

// NewSessionAt starts a session showing d instead of a random draw.
func NewSessionAt[T any](track Track[T], items []T, rng *rand.Rand, d Draw[T]) *Session[T] {
	return &Session[T]{
		ID:      uuid.New(),
		track:   track,
		items:   items,
		rng:     rng,
		current: d,
	}
}

func (s *Session[T]) Item() T { return s.current.Item }
func (s *Session[T]) Mode() Mode { return s.current.Mode }
func (s *Session[T]) Outcome() Outcome { return s.outcome }
func (s *Session[T]) Epoch() uint64 { return s.epoch }
func (s *Session[T]) Expected() []string { return s.track.Expected(s.current.Item, s.current.Mode) }

// Submit grades answers against the current item and records the outcome.
func (s *Session[T]) Submit(answers ...string) (Outcome, error) {
	if s.outcome != OutcomeNone {
		return s.outcome, ErrAlreadyGraded
	}
	s.outcome = Grade(s.Expected(), answers)
	return s.outcome, nil
}

// Advance draws the next item and mode, clears the outcome and bumps the
// epoch. The same item may come up again; the epoch still changes.
func (s *Session[T]) Advance() error {
	d, err := SelectRandomItem(s.rng, s.track, s.items)
	if err != nil {
		return err
	}
	s.current = d
	s.outcome = OutcomeNone
	s.epoch++
	return nil
}
