package linemon

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/ziutek/ftdi"
)

// ftdiBackend reads the bridge chip's pin register directly over USB
// in bitbang mode, bypassing the serial driver. The USB transfer is a
// bounded-latency blocking call.
type ftdiBackend struct {
	mu     sync.Mutex
	dev    *ftdi.Device
	closed bool
	cfg    Config
}

// newFTDIBackend opens the first FTDI device matching a known product
// ID variant and places it into bitbang mode for raw pin reads.
func newFTDIBackend(cfg Config) (backend, error) {
	vendor, err := strconv.ParseUint(ftdiVendorID, 16, 16)
	if err != nil {
		return nil, fmt.Errorf("%w: bad vendor id: %v", ErrFtdi, err)
	}

	var dev *ftdi.Device
	var lastErr error
	for _, pid := range cfg.FTDIProducts {
		product, err := strconv.ParseUint(pid, 16, 16)
		if err != nil {
			lastErr = err
			continue
		}
		dev, lastErr = ftdi.OpenFirst(int(vendor), int(product), ftdi.ChannelAny)
		if lastErr == nil {
			break
		}
	}
	if dev == nil {
		return nil, fmt.Errorf("%w: unable to open device: %v", ErrFtdi, lastErr)
	}

	// All pins as inputs; bitbang mode exposes the modem lines as
	// directly readable bits
	if err := dev.SetBitmode(0x00, ftdi.ModeBitbang); err != nil {
		dev.Close()
		return nil, fmt.Errorf("%w: unable to set bitbang mode: %v", ErrFtdi, err)
	}

	cfg.Logger.Debug("FTDI device opened in bitbang mode")

	return &ftdiBackend{dev: dev, cfg: cfg}, nil
}

func (b *ftdiBackend) Kind() BackendKind {
	return BackendFTDI
}

// Read performs a raw pin register read and maps the fixed FT232R bit
// positions to the four control lines.
func (b *ftdiBackend) Read() (LineState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return LineState{}, ErrBackendClosed
	}

	pins, err := b.dev.Pins()
	if err != nil {
		if b.cfg.Verbose {
			b.cfg.Logger.Error("error reading FTDI pins: %v", err)
		}
		return LineState{}, fmt.Errorf("%w: pin read: %v", ErrFtdi, err)
	}

	return lineStateFromPins(pins), nil
}

// Close releases the USB device. Safe to call multiple times.
func (b *ftdiBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	return b.dev.Close()
}
