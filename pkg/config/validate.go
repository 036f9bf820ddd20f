package config

import (
	"fmt"
	"strings"
)

// Validate checks enumerated settings and normalizes their case.
// Load calls it automatically.
func (c *Config) Validate() error {
	c.Data.Backend = strings.ToLower(strings.TrimSpace(c.Data.Backend))
	switch c.Data.Backend {
	case BackendJSON:
		if c.Data.VerbsPath == "" {
			return fmt.Errorf("data.verbs_path is required for the json backend")
		}
	case BackendSQLite:
		if c.Data.SQLitePath == "" {
			return fmt.Errorf("data.sqlite_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("data.backend must be %q or %q (got %q)", BackendJSON, BackendSQLite, c.Data.Backend)
	}

	if c.Data.ComparisonsPath == "" {
		return fmt.Errorf("data.comparisons_path is required")
	}

	c.Practice.Track = strings.ToLower(strings.TrimSpace(c.Practice.Track))
	if !IsTrack(c.Practice.Track) {
		return fmt.Errorf("practice.track must be %q or %q (got %q)", TrackVerbs, TrackComparisons, c.Practice.Track)
	}

	if c.Harvest.PerVerbLimit < 0 {
		return fmt.Errorf("harvest.per_verb_limit must be >= 0 (got %d)", c.Harvest.PerVerbLimit)
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}

	return nil
}

// Track names.
const (
	TrackVerbs       = "verbs"
	TrackComparisons = "comparisons"
)

// IsTrack reports whether name is a known quiz track.
func IsTrack(name string) bool {
	return name == TrackVerbs || name == TrackComparisons
}
