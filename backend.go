package linemon

import (
	"time"
)

// BackendKind identifies which sampling path is active. The kind is
// decided once during initialization and fixed for the lifetime of a
// monitor instance.
type BackendKind int

const (
	// BackendStandard samples through the OS serial driver (TIOCMGET)
	BackendStandard BackendKind = iota
	// BackendFTDI samples the bridge chip's pin register directly in
	// bitbang mode, bypassing the serial driver for lower latency
	BackendFTDI
)

func (k BackendKind) String() string {
	if k == BackendFTDI {
		return "ftdi"
	}
	return "standard"
}

// backend is the capability interface over the two sampling paths
type backend interface {
	// Read captures one atomic sample of the control line levels
	Read() (LineState, error)
	// Close releases the underlying device. Idempotent.
	Close() error
	Kind() BackendKind
}

// waiter is an optional backend capability: block until any monitored
// line changes or the timeout elapses. Backends without it are sampled
// in a tight loop in event-driven mode.
type waiter interface {
	WaitChange(timeout time.Duration) error
}

// ftdiVendorID is the USB vendor ID assigned to FTDI
const ftdiVendorID = "0403"

// defaultFTDIProducts lists the bridge chip variants known to support
// bitbang pin reads. The set is extensible via WithFTDIProducts.
func defaultFTDIProducts() []string {
	return []string{
		"6001", // FT232R
		"6010", // FT2232
		"6011", // FT4232
		"6014", // FT232H
		"6015", // FT230X
	}
}

// chooseBackend is the backend selection policy: a pure function from
// the device path and its probed USB identity to the preferred sampling
// path. FTDI is chosen only for USB serial devices whose vendor ID is
// FTDI's and whose product ID is a known bitbang-capable variant.
func chooseBackend(devicePath string, info *PortInfo, products []string) BackendKind {
	if !isUSBSerialDevice(devicePath) {
		return BackendStandard
	}
	if info == nil || info.VendorID != ftdiVendorID {
		return BackendStandard
	}
	for _, pid := range products {
		if info.ProductID == pid {
			return BackendFTDI
		}
	}
	return BackendStandard
}

// Opener hooks, swapped in tests to avoid real hardware.
var (
	openStandardBackend = newStandardBackend
	openFTDIBackend     = newFTDIBackend
	probePortInfo       = GetPortInfo
)

// openBackend selects and opens the sampling backend for the device.
// An FTDI probe or open failure is never fatal here: the policy falls
// back to the standard serial backend so the tool stays usable on any
// compliant device. A successful FTDI open supersedes the standard path
// for all subsequent reads.
func openBackend(devicePath string, cfg Config) (backend, error) {
	if !cfg.DisableFTDI && isUSBSerialDevice(devicePath) {
		info, err := probePortInfo(devicePath)
		if err != nil {
			cfg.Logger.Debug("USB probe failed for %s: %v", devicePath, err)
			info = nil
		}

		if chooseBackend(devicePath, info, cfg.FTDIProducts) == BackendFTDI {
			cfg.Logger.Info("FTDI device detected, attempting direct pin monitoring")
			b, err := openFTDIBackend(cfg)
			if err == nil {
				return b, nil
			}
			cfg.Logger.Warn("FTDI initialization failed, falling back to standard serial interface: %v", err)
		}
	}

	return openStandardBackend(devicePath, cfg)
}
