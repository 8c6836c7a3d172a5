package linemon

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Phase is the monitor's lifecycle state
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseInitialized
	PhaseRunning
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseInitialized:
		return "initialized"
	case PhaseRunning:
		return "running"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Monitor observes the hardware control lines of one serial device and
// emits a timestamped event for every transition. Each Monitor owns
// exactly one backend; a stopped Monitor cannot be restarted, create a
// fresh instance instead.
//
// Execution is single-threaded and synchronous: one logical flow drives
// the sampling loop, so no locking is needed around lastState or the
// sink.
type Monitor struct {
	device string
	cfg    Config

	phase       Phase
	eventDriven bool

	backend   backend
	sink      Sink
	ownedSink *lineSink

	lastState LineState
	origin    time.Time
}

// New creates a monitor for the given device. Configuration errors are
// rejected here, before any hardware is touched.
func New(devicePath string, opts ...Option) (*Monitor, error) {
	if devicePath == "" {
		return nil, ErrDeviceRequired
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Monitor{device: devicePath, cfg: cfg}, nil
}

// Phase returns the current lifecycle state
func (m *Monitor) Phase() Phase {
	return m.phase
}

// Backend returns which sampling path is active. Only meaningful after Init.
func (m *Monitor) Backend() BackendKind {
	if m.backend == nil {
		return BackendStandard
	}
	return m.backend.Kind()
}

// Origin returns the time reference for relative timestamps. Fixed
// exactly once, at initialization.
func (m *Monitor) Origin() time.Time {
	return m.origin
}

// Init selects and opens the backend, opens the output destination,
// captures the initial line state and records the time origin for
// relative timestamps. Calling Init on an already-initialized monitor
// is a no-op that returns success.
func (m *Monitor) Init() error {
	switch m.phase {
	case PhaseInitialized, PhaseRunning:
		m.cfg.Logger.Debug("monitor already initialized")
		return nil
	case PhaseStopped:
		return ErrMonitorStopped
	}

	if m.cfg.PollInterval < MinPollInterval {
		return fmt.Errorf("%w: %v", ErrIntervalTooShort, m.cfg.PollInterval)
	}

	b, err := openBackend(m.device, m.cfg)
	if err != nil {
		return err
	}

	// The origin is never recomputed after this point
	m.origin = time.Now()

	sink := m.cfg.Sink
	if sink == nil {
		owned, err := newLineSink(m.cfg, timestamper{format: m.cfg.TimeFormat, origin: m.origin})
		if err != nil {
			b.Close()
			return err
		}
		m.ownedSink = owned
		sink = owned
	}

	initial, err := b.Read()
	if err != nil {
		b.Close()
		if m.ownedSink != nil {
			m.ownedSink.Close()
			m.ownedSink = nil
		}
		return fmt.Errorf("initial signal state: %w", err)
	}

	m.backend = b
	m.sink = sink
	m.lastState = initial
	m.phase = PhaseInitialized

	m.cfg.Logger.Info("monitor initialized on %s (%s backend), initial state %s",
		m.device, m.backend.Kind(), initial)

	return nil
}

// PollOnce reads one sample, emits events for every transition since
// the previous sample and updates the reference state. A failed read is
// surfaced to the caller; there is no automatic retry.
func (m *Monitor) PollOnce() error {
	switch m.phase {
	case PhaseUninitialized:
		return ErrNotInitialized
	case PhaseStopped:
		return ErrMonitorStopped
	}

	state, err := m.backend.Read()
	if err != nil {
		return err
	}

	_, err = m.emit(state)
	return err
}

// StartEventDriven switches the monitor into event-driven sampling.
// Only valid when the configuration selects event-driven mode; calling
// it while already event-driven is a no-op success.
func (m *Monitor) StartEventDriven() error {
	switch m.phase {
	case PhaseUninitialized:
		return ErrNotInitialized
	case PhaseStopped:
		return ErrMonitorStopped
	}

	if m.cfg.Mode != ModeEventDriven {
		return ErrNotEventDriven
	}
	if m.eventDriven {
		m.cfg.Logger.Debug("event-driven mode already active")
		return nil
	}

	m.eventDriven = true
	m.phase = PhaseRunning
	m.cfg.Logger.Info("event-driven mode started (bounded wait %v)", m.cfg.WaitTimeout)
	return nil
}

// StopEventDriven returns the monitor to the initialized state. No-op
// when not currently event-driven.
func (m *Monitor) StopEventDriven() error {
	if !m.eventDriven {
		return nil
	}
	m.eventDriven = false
	m.phase = PhaseInitialized
	m.cfg.Logger.Info("event-driven mode stopped")
	return nil
}

// ProcessEventsOnce performs one event-driven sampling round: wait for
// the driver to report a transition (bounded by WaitTimeout), then
// sample, diff and emit. Returns the number of events emitted; zero is
// valid and expected when no transition occurred within the bound.
func (m *Monitor) ProcessEventsOnce() (int, error) {
	if !m.eventDriven {
		return 0, ErrNotEventDriven
	}

	if w, ok := m.backend.(waiter); ok {
		if err := w.WaitChange(m.cfg.WaitTimeout); err != nil && !errors.Is(err, ErrWaitTimeout) {
			return 0, err
		}
	}

	state, err := m.backend.Read()
	if err != nil {
		return 0, err
	}

	return m.emit(state)
}

// emit diffs the new sample against the reference state, routes the
// resulting events to the sink and replaces the reference.
func (m *Monitor) emit(state LineState) (int, error) {
	events := DiffStates(m.lastState, state, m.cfg.Verbose, time.Now())
	for _, e := range events {
		if err := m.sink.Emit(e); err != nil {
			return 0, err
		}
	}
	m.lastState = state
	return len(events), nil
}

// State reads the current line state through the active backend without
// affecting change detection.
func (m *Monitor) State() (LineState, error) {
	if m.phase != PhaseInitialized && m.phase != PhaseRunning {
		return LineState{}, ErrNotInitialized
	}
	return m.backend.Read()
}

// Run drives the monitoring loop until ctx is cancelled or a read
// fails. Cancellation is cooperative: the context is checked once per
// iteration, and event-driven waits are bounded so shutdown latency
// stays within WaitTimeout. Cleanup always runs on the way out.
func (m *Monitor) Run(ctx context.Context) error {
	if err := m.Init(); err != nil {
		return err
	}
	defer m.Cleanup()

	if m.cfg.Mode == ModeEventDriven {
		return m.runEventDriven(ctx)
	}
	return m.runPolling(ctx)
}

func (m *Monitor) runPolling(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := m.PollOnce(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(m.cfg.PollInterval):
		}
	}
}

func (m *Monitor) runEventDriven(ctx context.Context) error {
	if err := m.StartEventDriven(); err != nil {
		return err
	}
	defer m.StopEventDriven()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if _, err := m.ProcessEventsOnce(); err != nil {
			return err
		}
	}
}

// Cleanup closes the backend and the owned output sink and moves the
// monitor to its terminal state. Idempotent, and safe to call before
// Init.
func (m *Monitor) Cleanup() error {
	if m.phase == PhaseStopped {
		return nil
	}

	var firstErr error

	if m.backend != nil {
		if err := m.backend.Close(); err != nil {
			firstErr = err
		}
		m.backend = nil
	}
	if m.ownedSink != nil {
		if err := m.ownedSink.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		m.ownedSink = nil
	}

	m.eventDriven = false
	m.phase = PhaseStopped
	m.cfg.Logger.Debug("monitor cleanup complete")

	return firstErr
}
