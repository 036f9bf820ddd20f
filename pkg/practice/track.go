package practice

import "github.com/japaniel/verbpractice/pkg/content"

// Mode picks which form of an item is asked for. Tracks without modes use ModeNone.
type Mode int

const (
	ModeNone Mode = iota
	ModeComparative
	ModeSuperlative
)

func (m Mode) String() string {
	switch m {
	case ModeComparative:
		return "comparative"
	case ModeSuperlative:
		return "superlative"
	default:
		return "none"
	}
}

// Track describes one kind of quiz: which modes an item can be asked in and
// which answers are expected for an item in a mode.
type Track[T any] interface {
	Modes() []Mode
	Expected(item T, mode Mode) []string
}

// VerbTrack asks for the past form and the past participle of a verb.
type VerbTrack struct{}

func (VerbTrack) Modes() []Mode { return nil }

func (VerbTrack) Expected(v content.VerbRecord, _ Mode) []string {
	return []string{v.PastForm, v.ParticipleForm}
}

// ComparisonTrack asks for either the comparative or the superlative of an adjective.
type ComparisonTrack struct{}

func (ComparisonTrack) Modes() []Mode {
	return []Mode{ModeComparative, ModeSuperlative}
}

func (ComparisonTrack) Expected(c content.ComparisonRecord, mode Mode) []string {
	switch mode {
	case ModeComparative:
		return []string{c.ComparativeForm}
	case ModeSuperlative:
		return []string{c.SuperlativeForm}
	default:
		return nil
	}
}
