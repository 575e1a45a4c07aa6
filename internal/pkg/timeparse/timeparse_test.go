package timeparse

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	ref := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name      string
		value     any
		wantValid bool
		want      time.Time
	}{
		{
			name:      "seconds wrapper",
			value:     map[string]any{"seconds": float64(ref.Unix())},
			wantValid: true,
			want:      ref,
		},
		{
			name:      "seconds wrapper with nanos",
			value:     map[string]any{"seconds": float64(ref.Unix()), "nanoseconds": float64(500)},
			wantValid: true,
			want:      ref.Add(500 * time.Nanosecond),
		},
		{
			name:      "rfc3339 string",
			value:     ref.Format(time.RFC3339),
			wantValid: true,
			want:      ref,
		},
		{
			name:      "date only string",
			value:     "2025-03-14",
			wantValid: true,
			want:      time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "space separated string",
			value:     "2025-03-14 09:26:53",
			wantValid: true,
			want:      ref,
		},
		{
			name:      "native time",
			value:     ref,
			wantValid: true,
			want:      ref,
		},
		{
			name:      "serialized seconds object",
			value:     `{"seconds": 1741944413}`,
			wantValid: true,
			want:      time.Unix(1741944413, 0),
		},
		{name: "nil", value: nil, wantValid: false},
		{name: "garbage string", value: "not a date", wantValid: false},
		{name: "empty string", value: "", wantValid: false},
		{name: "wrapper without seconds", value: map[string]any{"minutes": 5.0}, wantValid: false},
		{name: "unknown type", value: 3.5, wantValid: false},
		{name: "zero time", value: time.Time{}, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.value)
			if got.Valid != tt.wantValid {
				t.Fatalf("Parse() valid = %v, want %v", got.Valid, tt.wantValid)
			}
			if tt.wantValid && !got.Time.Equal(tt.want) {
				t.Errorf("Parse() time = %v, want %v", got.Time, tt.want)
			}
		})
	}
}

type unixWrapper struct{ at time.Time }

func (w unixWrapper) Time() time.Time { return w.at }

func TestParse_ConvertibleObject(t *testing.T) {
	ref := time.Date(2024, 11, 2, 17, 0, 0, 0, time.UTC)
	got := Parse(unixWrapper{at: ref})
	if !got.Valid || !got.Time.Equal(ref) {
		t.Errorf("Parse() = %+v, want valid %v", got, ref)
	}
}

func TestStored_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantValid bool
		want      time.Time
	}{
		{name: "null", raw: `null`, wantValid: false},
		{name: "string", raw: `"2025-03-14T09:26:53Z"`, wantValid: true, want: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)},
		{name: "seconds object", raw: `{"seconds": 1700000000}`, wantValid: true, want: time.Unix(1700000000, 0)},
		{name: "epoch number", raw: `1700000000`, wantValid: true, want: time.Unix(1700000000, 0)},
		{name: "bad string", raw: `"tomorrow"`, wantValid: false},
		{name: "bad object", raw: `{"hours": 1}`, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Stored
			if err := json.Unmarshal([]byte(tt.raw), &s); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if s.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v", s.Valid, tt.wantValid)
			}
			if tt.wantValid && !s.Time.Equal(tt.want) {
				t.Errorf("Time = %v, want %v", s.Time, tt.want)
			}
		})
	}
}

func TestDays(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		from time.Time
		want int
	}{
		{name: "exactly one day", from: now.Add(-24 * time.Hour), want: 1},
		{name: "one millisecond into second day", from: now.Add(-24*time.Hour - time.Millisecond), want: 2},
		{name: "six days", from: now.AddDate(0, 0, -6), want: 6},
		{name: "under a day rounds up", from: now.Add(-time.Hour), want: 1},
		{name: "same instant", from: now, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Days(tt.from, now); got != tt.want {
				t.Errorf("Days() = %d, want %d", got, tt.want)
			}
		})
	}
}
