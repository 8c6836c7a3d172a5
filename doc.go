// Package linemon monitors the hardware control lines (CTS, RTS, DSR,
// DTR) of a serial interface and emits a timestamped log entry for
// every transition. It is aimed at engineers debugging handshake and
// flow-control behavior on serial links, including USB-to-serial
// adapters.
//
// # Basic Usage
//
// Create a monitor and run it until the context is cancelled:
//
//	m, err := linemon.New("/dev/ttyUSB0",
//	    linemon.WithPollInterval(time.Millisecond),
//	    linemon.WithTimeFormat(linemon.TimeRelative),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := m.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Each transition is written as one flushed line:
//
//	[2025-03-14 09:26:53.589793] CTS: HIGH ↑
//	[2025-03-14 09:26:53.731002] CTS: LOW ↓
//
// # Backends
//
// Two sampling paths exist behind one interface. The standard backend
// queries the OS serial driver's modem status bitmask and works on any
// compliant serial device. For FTDI USB bridge chips (FT232R and
// friends), a direct bitbang pin read over USB offers lower latency;
// it is probed automatically via the device's USB identity and falls
// back to the standard backend when unavailable. The fallback is part
// of the contract: the tool stays usable everywhere, the FTDI path is
// an opportunistic improvement.
//
// # Sampling Modes
//
// Polling mode reads the lines at a fixed interval (minimum 100µs).
// Event-driven mode approximates interrupt-driven capture with a
// cancellable bounded-timeout wait on the driver; no universally
// available OS primitive exists for modem control line interrupts, so
// this is a documented approximation rather than true hardware
// interrupt capture.
//
// # Port Discovery
//
// List serial ports and inspect USB identity metadata:
//
//	ports, _ := linemon.ListPorts()
//	info, _ := linemon.GetPortInfo("/dev/ttyUSB0")
//	fmt.Println(info.VendorID, info.ProductID, info.SerialNumber)
//
// # Error Handling
//
// Sentinel errors classify failures; use errors.Is:
//
//	if errors.Is(err, linemon.ErrIoctl) {
//	    // standard backend read failed, loop has ended
//	}
//
// Configuration errors (for example a polling interval below 100µs)
// are rejected before any hardware is touched. An FTDI failure during
// startup triggers fallback; after the FTDI backend is committed, a
// failure is fatal like any other read error.
//
// # Platform Support
//
// Linux only. The standard backend relies on termios and TIOCMGET; the
// FTDI backend on libftdi via github.com/ziutek/ftdi.
package linemon
