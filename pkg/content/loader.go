package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// verbDoc mirrors one verb object on disk. Pointer fields let us tell a
// missing key from an empty value.
type verbDoc struct {
	V1             *string  `json:"v1"`
	V2             *string  `json:"v2"`
	V3             *string  `json:"v3"`
	Meaning        *string  `json:"meaning"`
	Example        *string  `json:"example"`
	ExampleMeaning *string  `json:"example_meaning"`
	UserExamples   []string `json:"user_examples"`
}

// verbKeys are the keys verbDoc models; anything else is kept as extra.
var verbKeys = []string{"v1", "v2", "v3", "meaning", "example", "example_meaning", "user_examples"}

type comparisonDoc struct {
	Base        *string `json:"base"`
	Meaning     *string `json:"meaning"`
	Comparative *string `json:"comparative"`
	Superlative *string `json:"superlative"`
	Example     *string `json:"example"`
}

// LoadVerbs reads the verb collection stored at path.
func LoadVerbs(path string) ([]VerbRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open verbs %s: %v", ErrDataUnavailable, path, err)
	}
	defer f.Close()

	verbs, err := DecodeVerbs(f)
	if err != nil {
		return nil, fmt.Errorf("verbs %s: %w", path, err)
	}
	return verbs, nil
}

// DecodeVerbs parses a JSON array of verb objects and validates that every
// required key is present and every base form is unique. Keys it does not
// model are kept on the record so a later write does not lose them.
func DecodeVerbs(r io.Reader) ([]VerbRecord, error) {
	dec := json.NewDecoder(r)
	var raws []json.RawMessage
	if err := dec.Decode(&raws); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrDataUnavailable, err)
	}
	if raws == nil {
		return nil, fmt.Errorf("%w: expected an array of verbs", ErrDataUnavailable)
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}

	verbs := make([]VerbRecord, 0, len(raws))
	seen := make(map[string]int, len(raws))
	for i, raw := range raws {
		var d verbDoc
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrDataUnavailable, i, err)
		}
		if missing := firstMissing(
			"v1", d.V1, "v2", d.V2, "v3", d.V3,
			"meaning", d.Meaning, "example", d.Example, "example_meaning", d.ExampleMeaning,
		); missing != "" {
			return nil, fmt.Errorf("%w: record %d: missing %q", ErrDataUnavailable, i, missing)
		}
		if prev, dup := seen[*d.V1]; dup {
			return nil, fmt.Errorf("%w: record %d: duplicate v1 %q (first at %d)", ErrDataUnavailable, i, *d.V1, prev)
		}
		seen[*d.V1] = i

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrDataUnavailable, i, err)
		}
		for _, k := range verbKeys {
			delete(fields, k)
		}
		for k, v := range fields {
			var compact bytes.Buffer
			if err := json.Compact(&compact, v); err != nil {
				return nil, fmt.Errorf("%w: record %d: key %q: %v", ErrDataUnavailable, i, k, err)
			}
			fields[k] = compact.Bytes()
		}
		if len(fields) == 0 {
			fields = nil
		}

		verbs = append(verbs, VerbRecord{
			BaseForm:       *d.V1,
			PastForm:       *d.V2,
			ParticipleForm: *d.V3,
			Meaning:        *d.Meaning,
			Example:        *d.Example,
			ExampleMeaning: *d.ExampleMeaning,
			UserExamples:   d.UserExamples,
			extra:          fields,
			emptyExamples:  d.UserExamples != nil && len(d.UserExamples) == 0,
		})
	}
	return verbs, nil
}

// expectEOF fails when anything but whitespace follows the decoded document.
func expectEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: unexpected data after document", ErrDataUnavailable)
	}
	return nil
}

// LoadComparisons reads the comparison collection stored at path. The
// document is an object whose "data" key holds the records.
func LoadComparisons(path string) ([]ComparisonRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open comparisons %s: %v", ErrDataUnavailable, path, err)
	}
	defer f.Close()

	comparisons, err := DecodeComparisons(f)
	if err != nil {
		return nil, fmt.Errorf("comparisons %s: %w", path, err)
	}
	return comparisons, nil
}

// DecodeComparisons parses a {"data": [...]} comparison document.
func DecodeComparisons(r io.Reader) ([]ComparisonRecord, error) {
	dec := json.NewDecoder(r)
	var wrapper struct {
		Data *[]comparisonDoc `json:"data"`
	}
	if err := dec.Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrDataUnavailable, err)
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	if wrapper.Data == nil {
		return nil, fmt.Errorf("%w: missing \"data\"", ErrDataUnavailable)
	}

	out := make([]ComparisonRecord, 0, len(*wrapper.Data))
	for i, d := range *wrapper.Data {
		if missing := firstMissing(
			"base", d.Base, "meaning", d.Meaning, "comparative", d.Comparative,
			"superlative", d.Superlative, "example", d.Example,
		); missing != "" {
			return nil, fmt.Errorf("%w: record %d: missing %q", ErrDataUnavailable, i, missing)
		}
		out = append(out, ComparisonRecord{
			BaseForm:        *d.Base,
			Meaning:         *d.Meaning,
			ComparativeForm: *d.Comparative,
			SuperlativeForm: *d.Superlative,
			Example:         *d.Example,
		})
	}
	return out, nil
}

// firstMissing takes name/value pairs and returns the first name whose value is nil.
func firstMissing(pairs ...any) string {
	for i := 0; i+1 < len(pairs); i += 2 {
		if v, _ := pairs[i+1].(*string); v == nil {
			return pairs[i].(string)
		}
	}
	return ""
}

// EncodeVerbs renders the collection the way it is stored on disk:
// the key order of VerbRecord.MarshalJSON, two-space indent, non-ASCII and
// HTML characters kept as-is.
func EncodeVerbs(verbs []VerbRecord) ([]byte, error) {
	if verbs == nil {
		verbs = []VerbRecord{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(verbs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteVerbs replaces the file at path with the full collection. The data is
// written to a temporary file next to path and renamed over it, so a crash
// leaves either the old or the new document, never a truncated one.
func WriteVerbs(path string, verbs []VerbRecord) error {
	data, err := EncodeVerbs(verbs)
	if err != nil {
		return fmt.Errorf("encode verbs: %w", err)
	}
	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	committed = true
	return nil
}
