package linemon

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

// TestLineStateFromStatus tests the TIOCM bitmask mapping
func TestLineStateFromStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected LineState
	}{
		{
			name:     "all low",
			status:   0,
			expected: LineState{},
		},
		{
			name:     "CTS only",
			status:   unix.TIOCM_CTS,
			expected: LineState{CTS: true},
		},
		{
			name:     "RTS only",
			status:   unix.TIOCM_RTS,
			expected: LineState{RTS: true},
		},
		{
			name:     "DSR only",
			status:   unix.TIOCM_DSR,
			expected: LineState{DSR: true},
		},
		{
			name:     "DTR only",
			status:   unix.TIOCM_DTR,
			expected: LineState{DTR: true},
		},
		{
			name:     "all high",
			status:   unix.TIOCM_CTS | unix.TIOCM_RTS | unix.TIOCM_DSR | unix.TIOCM_DTR,
			expected: LineState{CTS: true, RTS: true, DSR: true, DTR: true},
		},
		{
			name:     "unrelated bits ignored",
			status:   unix.TIOCM_RI | unix.TIOCM_CAR,
			expected: LineState{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lineStateFromStatus(tt.status)
			if result != tt.expected {
				t.Errorf("lineStateFromStatus(%#x) = %+v, want %+v", tt.status, result, tt.expected)
			}
		})
	}
}

// TestLineStateFromPins tests the FT232R bitbang pin mapping
func TestLineStateFromPins(t *testing.T) {
	tests := []struct {
		name     string
		pins     byte
		expected LineState
	}{
		{"all low", 0x00, LineState{}},
		{"CTS pin", 0x10, LineState{CTS: true}},
		{"RTS pin", 0x20, LineState{RTS: true}},
		{"DSR pin", 0x40, LineState{DSR: true}},
		{"DTR pin", 0x80, LineState{DTR: true}},
		{"all pins", 0xF0, LineState{CTS: true, RTS: true, DSR: true, DTR: true}},
		{"low nibble ignored", 0x0F, LineState{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lineStateFromPins(tt.pins)
			if result != tt.expected {
				t.Errorf("lineStateFromPins(%#x) = %+v, want %+v", tt.pins, result, tt.expected)
			}
		})
	}
}

// TestDiffStates tests change detection ordering and verbosity gating
func TestDiffStates(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		old     LineState
		new     LineState
		verbose bool
		want    []Signal
	}{
		{
			name: "no change",
			old:  LineState{CTS: true},
			new:  LineState{CTS: true},
			want: nil,
		},
		{
			name: "CTS rising",
			old:  LineState{},
			new:  LineState{CTS: true},
			want: []Signal{SignalCTS},
		},
		{
			name: "RTS falling",
			old:  LineState{RTS: true},
			new:  LineState{},
			want: []Signal{SignalRTS},
		},
		{
			name: "DSR change suppressed without verbose",
			old:  LineState{},
			new:  LineState{DSR: true},
			want: nil,
		},
		{
			name:    "DSR change reported with verbose",
			old:     LineState{},
			new:     LineState{DSR: true},
			verbose: true,
			want:    []Signal{SignalDSR},
		},
		{
			name: "DTR change suppressed without verbose",
			old:  LineState{DTR: true},
			new:  LineState{},
			want: nil,
		},
		{
			name:    "all four change in fixed order",
			old:     LineState{},
			new:     LineState{CTS: true, RTS: true, DSR: true, DTR: true},
			verbose: true,
			want:    []Signal{SignalCTS, SignalRTS, SignalDSR, SignalDTR},
		},
		{
			name: "all four change without verbose reports CTS and RTS only",
			old:  LineState{},
			new:  LineState{CTS: true, RTS: true, DSR: true, DTR: true},
			want: []Signal{SignalCTS, SignalRTS},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := DiffStates(tt.old, tt.new, tt.verbose, now)
			if len(events) != len(tt.want) {
				t.Fatalf("DiffStates returned %d events, want %d", len(events), len(tt.want))
			}
			for i, e := range events {
				if e.Signal != tt.want[i] {
					t.Errorf("event %d signal = %v, want %v", i, e.Signal, tt.want[i])
				}
				if e.Time != now {
					t.Errorf("event %d timestamp not propagated", i)
				}
			}
		})
	}
}

// TestDiffStatesEventFields verifies old/new values and direction
func TestDiffStatesEventFields(t *testing.T) {
	now := time.Now()

	events := DiffStates(LineState{}, LineState{CTS: true}, false, now)
	if len(events) != 1 {
		t.Fatalf("expected exactly one event, got %d", len(events))
	}
	e := events[0]
	if e.Old != false || e.New != true {
		t.Errorf("event old/new = %v/%v, want false/true", e.Old, e.New)
	}
	if e.Direction() != Rising {
		t.Errorf("expected rising direction, got %v", e.Direction())
	}

	events = DiffStates(LineState{CTS: true}, LineState{}, false, now)
	if len(events) != 1 {
		t.Fatalf("expected exactly one event, got %d", len(events))
	}
	if events[0].Direction() != Falling {
		t.Errorf("expected falling direction, got %v", events[0].Direction())
	}
}

func TestDirectionString(t *testing.T) {
	if Rising.String() != "↑" {
		t.Errorf("Rising = %q, want ↑", Rising.String())
	}
	if Falling.String() != "↓" {
		t.Errorf("Falling = %q, want ↓", Falling.String())
	}
}

func TestSignalString(t *testing.T) {
	tests := []struct {
		signal   Signal
		expected string
	}{
		{SignalCTS, "CTS"},
		{SignalRTS, "RTS"},
		{SignalDSR, "DSR"},
		{SignalDTR, "DTR"},
	}

	for _, tt := range tests {
		if tt.signal.String() != tt.expected {
			t.Errorf("Signal(%d).String() = %q, want %q", tt.signal, tt.signal.String(), tt.expected)
		}
	}
}

func TestLineStateString(t *testing.T) {
	s := LineState{CTS: true, DSR: true}
	want := "CTS=HIGH RTS=LOW DSR=HIGH DTR=LOW"
	if s.String() != want {
		t.Errorf("LineState.String() = %q, want %q", s.String(), want)
	}
}
