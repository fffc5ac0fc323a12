package mockroute

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/stretchr/testify/assert"
)

// MatchObject reports whether actual contains expected, comparing both as
// decoded JSON. Objects match when every expected key matches; extra keys in
// actual are ignored. Arrays must have the same length and match element by
// element. Everything else must be equal.
func MatchObject(actual, expected any) error {
	a, err := normalize(actual)
	if err != nil {
		return fmt.Errorf("actual: %w", err)
	}
	e, err := normalize(expected)
	if err != nil {
		return fmt.Errorf("expected: %w", err)
	}
	return matchValue("$", a, e)
}

func normalize(v any) (any, error) {
	var b []byte
	switch t := v.(type) {
	case json.RawMessage:
		b = t
	case []byte:
		b = t
	default:
		var err error
		if b, err = json.Marshal(v); err != nil {
			return nil, err
		}
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func matchValue(path string, actual, expected any) error {
	switch e := expected.(type) {
	case map[string]any:
		a, ok := actual.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: got %s, want object", path, describe(actual))
		}
		keys := make([]string, 0, len(e))
		for k := range e {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			av, present := a[k]
			if !present {
				return fmt.Errorf("%s.%s: missing", path, k)
			}
			if err := matchValue(path+"."+k, av, e[k]); err != nil {
				return err
			}
		}
		return nil

	case []any:
		a, ok := actual.([]any)
		if !ok {
			return fmt.Errorf("%s: got %s, want array", path, describe(actual))
		}
		if len(a) != len(e) {
			return fmt.Errorf("%s: got %d elements, want %d", path, len(a), len(e))
		}
		for i := range e {
			if err := matchValue(fmt.Sprintf("%s[%d]", path, i), a[i], e[i]); err != nil {
				return err
			}
		}
		return nil

	default:
		if !assert.ObjectsAreEqual(expected, actual) {
			return fmt.Errorf("%s: got %s, want %s", path, describe(actual), describe(expected))
		}
		return nil
	}
}

func describe(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
