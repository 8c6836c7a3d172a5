package linemon

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// standardBackend samples the control lines through the OS serial
// driver. The device is opened non-blocking so a read never stalls the
// monitoring loop.
type standardBackend struct {
	mu     sync.Mutex
	fd     int
	closed bool
	cfg    Config

	// change notification, started lazily on first WaitChange
	watching bool
	changeCh chan struct{}
	stopCh   chan struct{}
}

// newStandardBackend opens the device in raw, non-blocking,
// no-controlling-terminal mode and disables hardware flow control so
// monitoring does not alter link behavior.
func newStandardBackend(devicePath string, cfg Config) (backend, error) {
	fd, err := unix.Open(devicePath, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDeviceOpen, devicePath, err)
	}

	if err := configureRaw(fd); err != nil {
		unix.Close(fd)
		return nil, err
	}

	return &standardBackend{
		fd:       fd,
		cfg:      cfg,
		changeCh: make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
	}, nil
}

// configureRaw puts the port into raw mode with modem control lines
// ignored and hardware flow control off. Only the control signals
// matter here, not the data path.
func configureRaw(fd int) error {
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAttribute, err)
	}

	termios.Cflag = unix.CS8 | unix.CREAD | unix.CLOCAL
	termios.Cflag &^= unix.CRTSCTS
	termios.Iflag = 0
	termios.Oflag = 0
	termios.Lflag = 0
	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		return fmt.Errorf("%w: %v", ErrAttribute, err)
	}

	return nil
}

func (b *standardBackend) Kind() BackendKind {
	return BackendStandard
}

// Read queries the driver's modem status bitmask and maps it to a
// LineState sample.
func (b *standardBackend) Read() (LineState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return LineState{}, ErrBackendClosed
	}

	status, err := unix.IoctlGetInt(b.fd, unix.TIOCMGET)
	if err != nil {
		if b.cfg.Verbose {
			b.cfg.Logger.Error("error reading serial port status: %v", err)
		}
		return LineState{}, fmt.Errorf("%w: %v", ErrIoctl, err)
	}

	return lineStateFromStatus(status), nil
}

// WaitChange blocks until the driver reports a modem line transition or
// the timeout elapses. The driver only raises wakeups for input lines
// (CTS, DSR), so locally driven RTS/DTR changes are picked up by the
// re-sample after each timeout. Returns ErrWaitTimeout when nothing
// changed within the bound.
func (b *standardBackend) WaitChange(timeout time.Duration) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBackendClosed
	}
	if !b.watching {
		b.watching = true
		go b.watchChanges()
	}
	b.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-b.changeCh:
		return nil
	case <-timer.C:
		return ErrWaitTimeout
	case <-b.stopCh:
		return ErrBackendClosed
	}
}

// watchChanges loops on TIOCMIWAIT and posts a wakeup per transition.
// The channel is buffered so a wakeup is never lost between waits, and
// duplicate wakeups collapse into one.
func (b *standardBackend) watchChanges() {
	mask := unix.TIOCM_CTS | unix.TIOCM_DSR
	for {
		select {
		case <-b.stopCh:
			return
		default:
		}

		if err := unix.IoctlSetInt(b.fd, unix.TIOCMIWAIT, mask); err != nil {
			// fd closed or driver refused the wait; the bounded
			// timeout in WaitChange keeps the loop live without us
			return
		}

		select {
		case b.changeCh <- struct{}{}:
		default:
		}
	}
}

// Close releases the device. Safe to call multiple times.
func (b *standardBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	close(b.stopCh)

	return unix.Close(b.fd)
}
