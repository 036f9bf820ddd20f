package content

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Store owns the verb and comparison collections for the lifetime of the
// process. Both are loaded once by Open; the only mutation is
// AppendUserExample.
type Store struct {
	backend VerbBackend
	logger  *slog.Logger

	// mu serializes the read-modify-write of AppendUserExample and guards verbs.
	mu          sync.RWMutex
	verbs       []VerbRecord
	comparisons []ComparisonRecord
}

// Open loads both collections and returns a Store holding them.
func Open(backend VerbBackend, comparisonsPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		verbs       []VerbRecord
		comparisons []ComparisonRecord
		g           errgroup.Group
	)
	g.Go(func() error {
		var err error
		verbs, err = backend.LoadVerbs()
		return err
	})
	g.Go(func() error {
		var err error
		comparisons, err = LoadComparisons(comparisonsPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("content loaded", "verbs", len(verbs), "comparisons", len(comparisons))
	return NewStore(backend, verbs, comparisons, logger), nil
}

// NewStore wraps already loaded collections.
func NewStore(backend VerbBackend, verbs []VerbRecord, comparisons []ComparisonRecord, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend:     backend,
		logger:      logger,
		verbs:       cloneVerbs(verbs),
		comparisons: append([]ComparisonRecord(nil), comparisons...),
	}
}

// Verbs returns a copy of the verb collection in stored order.
func (s *Store) Verbs() []VerbRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneVerbs(s.verbs)
}

// Comparisons returns a copy of the comparison collection.
func (s *Store) Comparisons() []ComparisonRecord {
	return append([]ComparisonRecord(nil), s.comparisons...)
}

// Verb returns the current state of the verb with the given base form.
func (s *Store) Verb(baseForm string) (VerbRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.verbs, baseForm)
	if i < 0 {
		return VerbRecord{}, fmt.Errorf("verb %q: %w", baseForm, ErrNotFound)
	}
	return s.verbs[i].clone(), nil
}

// AppendUserExample adds sentence to the user examples of the verb keyed by
// baseForm and persists the collection. The in-memory collection only
// changes once the backend accepted the write. Callers are expected to reject
// blank sentences before calling.
func (s *Store) AppendUserExample(baseForm, sentence string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := AppendUserExample(s.verbs, baseForm, sentence)
	if err != nil {
		return err
	}
	if err := s.backend.SaveUserExample(next, baseForm, sentence); err != nil {
		return fmt.Errorf("save user example for %q: %w", baseForm, err)
	}
	s.verbs = next

	s.logger.Info("user example saved", "verb", baseForm)
	return nil
}

// AppendUserExample returns a copy of verbs with sentence appended to the
// record keyed by baseForm. verbs itself is left untouched.
func AppendUserExample(verbs []VerbRecord, baseForm, sentence string) ([]VerbRecord, error) {
	i := indexOf(verbs, baseForm)
	if i < 0 {
		return nil, fmt.Errorf("verb %q: %w", baseForm, ErrNotFound)
	}
	next := cloneVerbs(verbs)
	next[i].UserExamples = append(next[i].UserExamples, sentence)
	return next, nil
}

// indexOf is a linear scan; collections hold at most a few hundred verbs.
func indexOf(verbs []VerbRecord, baseForm string) int {
	for i := range verbs {
		if verbs[i].BaseForm == baseForm {
			return i
		}
	}
	return -1
}
