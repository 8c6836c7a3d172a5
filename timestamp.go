package linemon

import (
	"fmt"
	"time"
)

// TimeFormat selects how event timestamps are rendered
type TimeFormat int

const (
	TimeAbsolute TimeFormat = iota // local wall clock with microseconds
	TimeRelative                   // seconds since the monitor's time origin
)

// ParseTimeFormat converts the CLI spelling of a timestamp format
func ParseTimeFormat(s string) (TimeFormat, error) {
	switch s {
	case "abs":
		return TimeAbsolute, nil
	case "rel":
		return TimeRelative, nil
	default:
		return 0, fmt.Errorf("%w: %q (use 'abs' or 'rel')", ErrInvalidFormat, s)
	}
}

func (f TimeFormat) String() string {
	if f == TimeRelative {
		return "relative"
	}
	return "absolute"
}

// timestamper renders event timestamps. The origin is fixed once at
// monitor initialization and never recomputed.
type timestamper struct {
	format TimeFormat
	origin time.Time
}

// Stamp renders t according to the configured format.
//
// Relative timestamps are computed from wall-clock differences, so they
// are not guaranteed strictly non-decreasing across system clock
// adjustments. That matches the absolute format's behavior and is a
// documented limitation.
func (ts timestamper) Stamp(t time.Time) string {
	if ts.format == TimeAbsolute {
		return t.Format("2006-01-02 15:04:05.000000")
	}

	us := t.Sub(ts.origin).Microseconds()
	sign := ""
	if us < 0 {
		sign = "-"
		us = -us
	}
	return fmt.Sprintf("%s%d.%06d", sign, us/1000000, us%1000000)
}
