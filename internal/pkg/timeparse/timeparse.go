package timeparse

import (
	"encoding/json"
	"strings"
	"time"
)

// Stored is a timestamp recovered from a document field that may have been
// written by any of the historical client encodings: an RFC3339-ish string,
// an epoch {"seconds": N} wrapper, or an object exposing a Time() accessor.
// Valid is false when the field was absent or unparseable.
type Stored struct {
	Time  time.Time
	Valid bool
}

// At wraps a known-good instant.
func At(t time.Time) Stored {
	return Stored{Time: t, Valid: true}
}

// stringLayouts are tried in order when parsing string-encoded dates.
var stringLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// timer matches types that can convert themselves to a time.Time, such as
// database timestamp wrappers.
type timer interface {
	Time() time.Time
}

// Parse normalizes an arbitrary stored date value. Encodings are tried in
// priority order: numeric seconds wrapper, string, convertible object. A nil
// value, an unknown shape, or a failed parse all yield an invalid Stored.
func Parse(v any) Stored {
	switch t := v.(type) {
	case nil:
		return Stored{}
	case map[string]any:
		if secs, ok := asFloat(t["seconds"]); ok {
			nanos, _ := asFloat(t["nanoseconds"])
			return At(time.Unix(int64(secs), int64(nanos)))
		}
		return Stored{}
	case string:
		return ParseString(t)
	case time.Time:
		if t.IsZero() {
			return Stored{}
		}
		return At(t)
	case Stored:
		return t
	}
	if tm, ok := v.(timer); ok {
		return At(tm.Time())
	}
	return Stored{}
}

// ParseString parses a string-encoded date. JSON-shaped strings (an object or
// quoted literal persisted verbatim by an older writer) are decoded first,
// then the known calendar layouts are tried.
func ParseString(s string) Stored {
	s = strings.TrimSpace(s)
	if s == "" {
		return Stored{}
	}
	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "\"") {
		var st Stored
		if err := json.Unmarshal([]byte(s), &st); err == nil {
			return st
		}
		return Stored{}
	}
	for _, layout := range stringLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return At(t)
		}
	}
	return Stored{}
}

// MarshalJSON emits RFC3339Nano, or null when invalid.
func (s Stored) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Time.Format(time.RFC3339Nano))
}

// UnmarshalJSON accepts null, a string date, an epoch seconds number, or a
// {"seconds": N, "nanoseconds": M} wrapper. Unparseable input is recorded as
// invalid rather than returned as an error, matching the skip-don't-fail
// policy of the evaluators.
func (s *Stored) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "null" || trimmed == "" {
		*s = Stored{}
		return nil
	}

	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = parseLayouts(str)
		return nil
	}

	var obj struct {
		Seconds     *float64 `json:"seconds"`
		Nanoseconds float64  `json:"nanoseconds"`
	}
	if err := json.Unmarshal(b, &obj); err == nil && obj.Seconds != nil {
		*s = At(time.Unix(int64(*obj.Seconds), int64(obj.Nanoseconds)))
		return nil
	}

	var secs float64
	if err := json.Unmarshal(b, &secs); err == nil {
		*s = At(time.Unix(int64(secs), 0))
		return nil
	}

	*s = Stored{}
	return nil
}

func parseLayouts(str string) Stored {
	for _, layout := range stringLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return At(t)
		}
	}
	return Stored{}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

const day = 24 * time.Hour

// Days returns the number of elapsed days between from and to, rounded up: a
// span one millisecond into its second day already counts as 2.
func Days(from, to time.Time) int {
	d := to.Sub(from)
	n := int(d / day)
	if d%day > 0 {
		n++
	}
	return n
}
