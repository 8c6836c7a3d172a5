package linemon

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// Signal identifies a single modem control line
type Signal int

const (
	SignalCTS Signal = iota // Clear To Send
	SignalRTS               // Request To Send
	SignalDSR               // Data Set Ready
	SignalDTR               // Data Terminal Ready
)

func (s Signal) String() string {
	switch s {
	case SignalCTS:
		return "CTS"
	case SignalRTS:
		return "RTS"
	case SignalDSR:
		return "DSR"
	case SignalDTR:
		return "DTR"
	default:
		return "???"
	}
}

// LineState represents one atomic sample of modem control line levels.
// A new sample always fully replaces the prior one.
type LineState struct {
	CTS bool // Clear To Send
	RTS bool // Request To Send
	DSR bool // Data Set Ready
	DTR bool // Data Terminal Ready
}

func (s LineState) String() string {
	return fmt.Sprintf("CTS=%s RTS=%s DSR=%s DTR=%s",
		formatLevel(s.CTS), formatLevel(s.RTS), formatLevel(s.DSR), formatLevel(s.DTR))
}

// Direction indicates which way a signal transitioned
type Direction int

const (
	Rising Direction = iota
	Falling
)

func (d Direction) String() string {
	if d == Rising {
		return "↑"
	}
	return "↓"
}

// Event represents a single control line transition between two
// consecutive samples. Events are produced by change detection and
// consumed immediately; they are never persisted.
type Event struct {
	Time   time.Time
	Signal Signal
	Old    bool
	New    bool
}

// Direction returns Rising for a low-to-high transition and Falling
// for high-to-low.
func (e Event) Direction() Direction {
	if !e.Old && e.New {
		return Rising
	}
	return Falling
}

// FTDI bitbang pin layout for the FT232R family. Other chip families
// may route the modem lines to different pins; this mapping is the one
// the tool supports.
const (
	ftdiPinCTS = 0x10
	ftdiPinRTS = 0x20
	ftdiPinDSR = 0x40
	ftdiPinDTR = 0x80
)

// lineStateFromStatus maps a TIOCMGET modem status bitmask to a LineState
func lineStateFromStatus(status int) LineState {
	return LineState{
		CTS: status&unix.TIOCM_CTS != 0,
		RTS: status&unix.TIOCM_RTS != 0,
		DSR: status&unix.TIOCM_DSR != 0,
		DTR: status&unix.TIOCM_DTR != 0,
	}
}

// lineStateFromPins maps an FTDI bitbang pin register to a LineState
func lineStateFromPins(pins byte) LineState {
	return LineState{
		CTS: pins&ftdiPinCTS != 0,
		RTS: pins&ftdiPinRTS != 0,
		DSR: pins&ftdiPinDSR != 0,
		DTR: pins&ftdiPinDTR != 0,
	}
}

// DiffStates compares two consecutive samples and returns one Event per
// changed line, in fixed order CTS, RTS, DSR, DTR. CTS and RTS changes
// are always reported; DSR and DTR changes only when verbose is true.
func DiffStates(old, new LineState, verbose bool, at time.Time) []Event {
	var events []Event

	if old.CTS != new.CTS {
		events = append(events, Event{Time: at, Signal: SignalCTS, Old: old.CTS, New: new.CTS})
	}
	if old.RTS != new.RTS {
		events = append(events, Event{Time: at, Signal: SignalRTS, Old: old.RTS, New: new.RTS})
	}
	if verbose {
		if old.DSR != new.DSR {
			events = append(events, Event{Time: at, Signal: SignalDSR, Old: old.DSR, New: new.DSR})
		}
		if old.DTR != new.DTR {
			events = append(events, Event{Time: at, Signal: SignalDTR, Old: old.DTR, New: new.DTR})
		}
	}

	return events
}

// formatLevel renders a signal level the way it appears in log output
func formatLevel(state bool) string {
	if state {
		return "HIGH"
	}
	return "LOW"
}
