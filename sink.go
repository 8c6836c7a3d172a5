package linemon

import (
	"fmt"
	"io"
	"os"
)

// Sink consumes transition events. The monitor's default sink writes
// formatted log lines; alternative sinks (e.g. the watch dashboard)
// can be injected with WithSink.
type Sink interface {
	Emit(e Event) error
}

// lineSink writes one line per event to the configured destination.
// Writes go straight to the file descriptor with no userspace
// buffering, so a crash or forced termination loses no already-emitted
// event.
type lineSink struct {
	out    io.Writer
	file   *os.File // non-nil when the sink owns an output file
	mirror bool     // verbose + file destination mirrors lines to stdout
	ts     timestamper
	closed bool
}

// newLineSink opens the configured destination. An unopenable output
// file is fatal at startup.
func newLineSink(cfg Config, ts timestamper) (*lineSink, error) {
	s := &lineSink{out: os.Stdout, ts: ts}

	if cfg.OutputFile != "" {
		f, err := os.Create(cfg.OutputFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrOutput, cfg.OutputFile, err)
		}
		s.out = f
		s.file = f
		s.mirror = cfg.Verbose
	}

	return s, nil
}

// Emit writes the event line, mirroring to the console when verbose
// mode logs to a file.
func (s *lineSink) Emit(e Event) error {
	line := fmt.Sprintf("[%s] %s: %s %s\n",
		s.ts.Stamp(e.Time), e.Signal, formatLevel(e.New), e.Direction())

	if _, err := io.WriteString(s.out, line); err != nil {
		return fmt.Errorf("%w: %v", ErrOutput, err)
	}
	if s.mirror {
		fmt.Print(line)
	}
	return nil
}

// Close releases the output file when the sink owns one. Idempotent.
func (s *lineSink) Close() error {
	if s.closed || s.file == nil {
		s.closed = true
		return nil
	}
	s.closed = true
	return s.file.Close()
}
