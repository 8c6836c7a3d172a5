package linemon

import (
	"os"
	"path/filepath"
	"testing"
)

// TestPortFiltering tests the serial and exclude pattern logic
func TestPortFiltering(t *testing.T) {
	tests := []struct {
		name     string
		device   string
		included bool
	}{
		{"USB serial adapter", "ttyUSB0", true},
		{"USB serial adapter high index", "ttyUSB12", true},
		{"CDC ACM device", "ttyACM0", true},
		{"standard serial port", "ttyS0", true},
		{"Raspberry Pi serial", "ttyAMA0", true},
		{"i.MX serial", "ttymxc1", true},
		{"OMAP serial", "ttyO2", true},
		{"Samsung serial", "ttySAC1", true},
		{"Tegra serial", "ttyTHS2", true},
		{"virtual terminal", "tty1", false},
		{"console", "console", false},
		{"ptmx", "ptmx", false},
		{"pseudo terminal", "pts/0", false},
		{"random device", "sda1", false},
		{"partial match", "ttyUSB", false},
		{"suffix noise", "ttyUSB0x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			included := !matchesAny(excludePatterns, tt.device) && matchesAny(serialPatterns, tt.device)
			if included != tt.included {
				t.Errorf("device %q included = %v, want %v", tt.device, included, tt.included)
			}
		})
	}
}

func TestIsUSBSerialDevice(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/dev/ttyUSB0", true},
		{"/dev/ttyUSB15", true},
		{"/dev/ttyACM0", false},
		{"/dev/ttyS0", false},
		{"/dev/ttyUSB", false},
		{"ttyUSB3", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := isUSBSerialDevice(tt.path); got != tt.expected {
				t.Errorf("isUSBSerialDevice(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestIsCharacterDevice(t *testing.T) {
	if _, err := os.Stat("/dev/null"); err == nil {
		if !isCharacterDevice("/dev/null") {
			t.Error("/dev/null should be a character device")
		}
	}

	if isCharacterDevice("/nonexistent/device") {
		t.Error("nonexistent path should not be a character device")
	}

	regular := filepath.Join(t.TempDir(), "regular")
	if err := os.WriteFile(regular, []byte("data"), 0644); err != nil {
		t.Fatalf("creating test file: %v", err)
	}
	if isCharacterDevice(regular) {
		t.Error("regular file should not be a character device")
	}
}

func TestGetPortDescription(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"ttyUSB0", "USB Serial Port"},
		{"ttyACM1", "USB CDC/ACM Device"},
		{"ttyAMA0", "ARM Serial Port"},
		{"ttymxc2", "i.MX Serial Port"},
		{"ttySAC0", "Samsung Serial Port"},
		{"ttyTHS1", "Tegra Serial Port"},
		{"ttyO0", "OMAP Serial Port"},
		{"ttyS4", "Standard Serial Port"},
		{"other", "Serial Port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getPortDescription(tt.name); got != tt.expected {
				t.Errorf("getPortDescription(%q) = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestGetPortInfoNonexistent(t *testing.T) {
	if _, err := GetPortInfo("/nonexistent/device"); err != ErrDeviceNotFound {
		t.Errorf("expected ErrDeviceNotFound, got %v", err)
	}
}

func TestReadSysfsFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "idVendor")
	if err := os.WriteFile(path, []byte("0403\n"), 0644); err != nil {
		t.Fatalf("creating test file: %v", err)
	}

	if got := readSysfsFile(path); got != "0403" {
		t.Errorf("readSysfsFile = %q, want %q (trailing newline trimmed)", got, "0403")
	}

	if got := readSysfsFile(filepath.Join(dir, "missing")); got != "" {
		t.Errorf("missing file should read as empty string, got %q", got)
	}
}

// TestEnrichUSBInfo builds a mock sysfs tree mirroring the layout the
// kernel presents for a USB serial adapter:
//
//	class/tty/ttyUSB0/device -> devices/usb1/1-2/1-2:1.0/ttyUSB0
func TestEnrichUSBInfo(t *testing.T) {
	root := t.TempDir()

	usbDevice := filepath.Join(root, "devices", "usb1", "1-2")
	ifaceDir := filepath.Join(usbDevice, "1-2:1.0")
	ttyDir := filepath.Join(ifaceDir, "ttyUSB0")
	if err := os.MkdirAll(ttyDir, 0755); err != nil {
		t.Fatalf("creating mock device tree: %v", err)
	}

	attrs := map[string]string{
		filepath.Join(usbDevice, "idVendor"):          "0403\n",
		filepath.Join(usbDevice, "idProduct"):         "6001\n",
		filepath.Join(usbDevice, "serial"):            "A1B2C3D4\n",
		filepath.Join(usbDevice, "manufacturer"):      "FTDI\n",
		filepath.Join(usbDevice, "product"):           "FT232R USB UART\n",
		filepath.Join(usbDevice, "busnum"):            "1\n",
		filepath.Join(usbDevice, "devnum"):            "7\n",
		filepath.Join(ifaceDir, "bInterfaceNumber"):   "00\n",
	}
	for path, contents := range attrs {
		if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}

	classDir := filepath.Join(root, "class", "tty", "ttyUSB0")
	if err := os.MkdirAll(classDir, 0755); err != nil {
		t.Fatalf("creating class dir: %v", err)
	}
	if err := os.Symlink(ttyDir, filepath.Join(classDir, "device")); err != nil {
		t.Fatalf("creating device symlink: %v", err)
	}

	origRoot := sysfsRoot
	sysfsRoot = root
	t.Cleanup(func() { sysfsRoot = origRoot })

	info := &PortInfo{Name: "ttyUSB0", Path: "/dev/ttyUSB0"}
	enrichUSBInfo(info)

	if info.VendorID != "0403" {
		t.Errorf("VendorID = %q, want 0403", info.VendorID)
	}
	if info.ProductID != "6001" {
		t.Errorf("ProductID = %q, want 6001", info.ProductID)
	}
	if info.SerialNumber != "A1B2C3D4" {
		t.Errorf("SerialNumber = %q, want A1B2C3D4", info.SerialNumber)
	}
	if info.Manufacturer != "FTDI" {
		t.Errorf("Manufacturer = %q, want FTDI", info.Manufacturer)
	}
	if info.Product != "FT232R USB UART" {
		t.Errorf("Product = %q, want FT232R USB UART", info.Product)
	}
	if info.BusNumber != "1" || info.DeviceNumber != "7" {
		t.Errorf("bus/dev = %q/%q, want 1/7", info.BusNumber, info.DeviceNumber)
	}
	if info.InterfaceNumber != "00" {
		t.Errorf("InterfaceNumber = %q, want 00", info.InterfaceNumber)
	}
}

// TestEnrichUSBInfoMissingDevice verifies the walk degrades gracefully
// when the sysfs entry does not exist.
func TestEnrichUSBInfoMissingDevice(t *testing.T) {
	origRoot := sysfsRoot
	sysfsRoot = t.TempDir()
	t.Cleanup(func() { sysfsRoot = origRoot })

	info := &PortInfo{Name: "ttyUSB9"}
	enrichUSBInfo(info)

	if info.VendorID != "" || info.ProductID != "" {
		t.Errorf("fields should stay empty without sysfs data, got %+v", info)
	}
}
