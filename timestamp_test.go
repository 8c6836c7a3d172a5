package linemon

import (
	"testing"
	"time"
)

func TestParseTimeFormat(t *testing.T) {
	tests := []struct {
		input       string
		expected    TimeFormat
		expectError bool
	}{
		{"abs", TimeAbsolute, false},
		{"rel", TimeRelative, false},
		{"absolute", 0, true},
		{"", 0, true},
		{"REL", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ParseTimeFormat(tt.input)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error for input %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if format != tt.expected {
				t.Errorf("ParseTimeFormat(%q) = %v, want %v", tt.input, format, tt.expected)
			}
		})
	}
}

func TestStampAbsolute(t *testing.T) {
	ts := timestamper{format: TimeAbsolute}
	at := time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.Local)

	got := ts.Stamp(at)
	want := "2025-03-14 09:26:53.589793"
	if got != want {
		t.Errorf("Stamp() = %q, want %q", got, want)
	}
}

func TestStampRelative(t *testing.T) {
	origin := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	ts := timestamper{format: TimeRelative, origin: origin}

	tests := []struct {
		name     string
		offset   time.Duration
		expected string
	}{
		{"at origin", 0, "0.000000"},
		{"one microsecond", time.Microsecond, "0.000001"},
		{"half second", 500 * time.Millisecond, "0.500000"},
		{"one second plus", time.Second + 500*time.Microsecond, "1.000500"},
		{"minute and a half", 90*time.Second + 123456*time.Microsecond, "90.123456"},
		{"before origin", -time.Microsecond, "-0.000001"},
		{"well before origin", -(2*time.Second + 250000*time.Microsecond), "-2.250000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ts.Stamp(origin.Add(tt.offset))
			if got != tt.expected {
				t.Errorf("Stamp(origin%+v) = %q, want %q", tt.offset, got, tt.expected)
			}
		})
	}
}

func TestTimeFormatString(t *testing.T) {
	if TimeAbsolute.String() != "absolute" {
		t.Errorf("TimeAbsolute.String() = %q", TimeAbsolute.String())
	}
	if TimeRelative.String() != "relative" {
		t.Errorf("TimeRelative.String() = %q", TimeRelative.String())
	}
}
