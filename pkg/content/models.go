package content

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
)

// VerbRecord is one irregular verb with its canonical forms.
// BaseForm is the lookup key and is unique within a collection.
type VerbRecord struct {
	BaseForm       string   `json:"v1"`
	PastForm       string   `json:"v2"`
	ParticipleForm string   `json:"v3"`
	Meaning        string   `json:"meaning"`
	Example        string   `json:"example"`
	ExampleMeaning string   `json:"example_meaning"`
	UserExamples   []string `json:"user_examples,omitempty"`

	// extra holds keys of the stored object this type does not model; they
	// are written back unchanged.
	extra map[string]json.RawMessage
	// emptyExamples records an explicit "user_examples": [] in the source.
	emptyExamples bool
}

// ComparisonRecord is an adjective with its comparative and superlative forms.
type ComparisonRecord struct {
	BaseForm        string `json:"base"`
	Meaning         string `json:"meaning"`
	ComparativeForm string `json:"comparative"`
	SuperlativeForm string `json:"superlative"`
	Example         string `json:"example"`
}

// MarshalJSON writes the modeled keys in their stored order, then any extra
// keys sorted by name, then user_examples when present.
func (v VerbRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	put := func(key string, val any) error {
		raw, ok := val.(json.RawMessage)
		if !ok {
			var err error
			if raw, err = marshalPlain(val); err != nil {
				return err
			}
		}
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := marshalPlain(key)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(raw)
		return nil
	}

	for _, f := range []struct {
		key string
		val string
	}{
		{"v1", v.BaseForm},
		{"v2", v.PastForm},
		{"v3", v.ParticipleForm},
		{"meaning", v.Meaning},
		{"example", v.Example},
		{"example_meaning", v.ExampleMeaning},
	} {
		if err := put(f.key, f.val); err != nil {
			return nil, err
		}
	}
	for _, k := range slices.Sorted(maps.Keys(v.extra)) {
		if err := put(k, v.extra[k]); err != nil {
			return nil, err
		}
	}
	if len(v.UserExamples) > 0 || v.emptyExamples {
		examples := v.UserExamples
		if examples == nil {
			examples = []string{}
		}
		if err := put("user_examples", examples); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalPlain encodes v without escaping HTML characters.
func marshalPlain(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (v VerbRecord) clone() VerbRecord {
	if v.UserExamples != nil {
		v.UserExamples = append([]string(nil), v.UserExamples...)
	}
	if v.extra != nil {
		v.extra = maps.Clone(v.extra)
	}
	return v
}

func cloneVerbs(verbs []VerbRecord) []VerbRecord {
	out := make([]VerbRecord, len(verbs))
	for i, v := range verbs {
		out[i] = v.clone()
	}
	return out
}
