package linemon

import (
	"fmt"
	"time"

	"github.com/allbin/linemon/internal/logger"
)

// Mode selects how the monitor samples the control lines
type Mode int

const (
	// ModePolling reads the line state at a fixed interval
	ModePolling Mode = iota
	// ModeEventDriven approximates interrupt-driven capture with a
	// cancellable bounded-timeout wait on the driver where available,
	// falling back to tight-loop sampling. No universally available OS
	// primitive exists for modem control line interrupts.
	ModeEventDriven
)

// ParseMode converts the CLI spelling of a monitoring mode
func ParseMode(s string) (Mode, error) {
	switch s {
	case "poll":
		return ModePolling, nil
	case "irq":
		return ModeEventDriven, nil
	default:
		return 0, fmt.Errorf("%w: %q (use 'poll' or 'irq')", ErrInvalidMode, s)
	}
}

func (m Mode) String() string {
	if m == ModeEventDriven {
		return "event-driven"
	}
	return "polling"
}

// MinPollInterval is the shortest accepted polling interval
const MinPollInterval = 100 * time.Microsecond

// Config holds the configuration for a monitor. It is immutable for
// the lifetime of a monitor instance.
type Config struct {
	Mode         Mode
	PollInterval time.Duration
	TimeFormat   TimeFormat
	OutputFile   string // empty means standard output
	Verbose      bool

	// WaitTimeout bounds each blocking wait in event-driven mode so the
	// loop stays cancellable within a known latency.
	WaitTimeout time.Duration

	// FTDIProducts is the set of USB product IDs treated as bitbang-capable
	// FTDI bridge chips. The default set covers the common FT232/FT2232
	// family and can be extended.
	FTDIProducts []string

	// DisableFTDI forces the standard serial backend even for devices
	// that probe as FTDI bridges.
	DisableFTDI bool

	// Sink overrides the default line-oriented output sink
	Sink Sink

	Logger logger.Logger
}

// Option is a functional option for configuring a monitor
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Mode:         ModePolling,
		PollInterval: 1 * time.Millisecond,
		TimeFormat:   TimeAbsolute,
		WaitTimeout:  250 * time.Millisecond,
		FTDIProducts: defaultFTDIProducts(),
		Logger:       logger.Noop(),
	}
}

// WithMode sets the monitoring mode
func WithMode(mode Mode) Option {
	return func(c *Config) error {
		if mode != ModePolling && mode != ModeEventDriven {
			return ErrInvalidMode
		}
		c.Mode = mode
		return nil
	}
}

// WithPollInterval sets the polling interval (minimum 100µs)
func WithPollInterval(interval time.Duration) Option {
	return func(c *Config) error {
		if interval < MinPollInterval {
			return fmt.Errorf("%w: %v", ErrIntervalTooShort, interval)
		}
		c.PollInterval = interval
		return nil
	}
}

// WithTimeFormat sets the timestamp rendering format
func WithTimeFormat(format TimeFormat) Option {
	return func(c *Config) error {
		if format != TimeAbsolute && format != TimeRelative {
			return ErrInvalidFormat
		}
		c.TimeFormat = format
		return nil
	}
}

// WithOutputFile directs event lines to a file instead of stdout
func WithOutputFile(path string) Option {
	return func(c *Config) error {
		c.OutputFile = path
		return nil
	}
}

// WithVerbose enables diagnostics and DSR/DTR event reporting
func WithVerbose(verbose bool) Option {
	return func(c *Config) error {
		c.Verbose = verbose
		return nil
	}
}

// WithWaitTimeout bounds each event-driven blocking wait
func WithWaitTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout <= 0 {
			return ErrInvalidTimeout
		}
		c.WaitTimeout = timeout
		return nil
	}
}

// WithFTDIProducts extends the set of recognized FTDI product IDs
func WithFTDIProducts(productIDs ...string) Option {
	return func(c *Config) error {
		c.FTDIProducts = append(c.FTDIProducts, productIDs...)
		return nil
	}
}

// WithoutFTDI disables FTDI probing and always uses the standard backend
func WithoutFTDI() Option {
	return func(c *Config) error {
		c.DisableFTDI = true
		return nil
	}
}

// WithSink routes events to a custom sink instead of the line-oriented
// log output
func WithSink(sink Sink) Option {
	return func(c *Config) error {
		c.Sink = sink
		return nil
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(l logger.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			l = logger.Noop()
		}
		c.Logger = l
		return nil
	}
}
