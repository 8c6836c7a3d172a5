package linemon

import "errors"

// Predefined error types for robust error handling
var (
	// Configuration errors, rejected before any hardware access
	ErrDeviceRequired   = errors.New("serial device path is required")
	ErrIntervalTooShort = errors.New("polling interval below 100 microsecond minimum")
	ErrInvalidMode      = errors.New("invalid monitoring mode")
	ErrInvalidFormat    = errors.New("invalid timestamp format")
	ErrInvalidTimeout   = errors.New("invalid wait timeout")

	// Startup errors, fatal before monitoring begins
	ErrDeviceNotFound = errors.New("serial device not found")
	ErrDeviceOpen     = errors.New("failed to open serial device")
	ErrAttribute      = errors.New("failed to configure serial port attributes")
	ErrOutput         = errors.New("failed to open output destination")

	// Backend read errors
	ErrIoctl = errors.New("serial port status query failed")
	ErrFtdi  = errors.New("ftdi operation failed")

	// Lifecycle errors
	ErrNotInitialized = errors.New("monitor not initialized")
	ErrMonitorStopped = errors.New("monitor already stopped")
	ErrNotEventDriven = errors.New("monitor not configured for event-driven mode")
	ErrBackendClosed  = errors.New("backend is closed")
	ErrWaitTimeout    = errors.New("timeout waiting for signal change")

	// USB-related errors
	ErrUSBInfoNotAvailable  = errors.New("USB device information not available")
	ErrUSBResetNotAvailable = errors.New("usbreset utility not available")
)
