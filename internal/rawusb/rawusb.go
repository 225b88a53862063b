// Package rawusb is a fallback transport over libusb for hosts where
// the HID path is unavailable (e.g. the kernel driver cannot be
// detached through hidraw).
package rawusb

import (
	"fmt"

	"github.com/karalabe/usb"
)

// Device is the bridge chip opened as a raw USB HID interface.
type Device struct {
	dev usb.Device
}

// Open finds and opens the first device matching the vendor and
// product identifiers.
func Open(vid, pid uint16) (*Device, error) {
	infos, err := usb.Enumerate(vid, pid)
	if err != nil {
		return nil, fmt.Errorf("usb enumerate: %w", err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("device not found (VID:0x%04X PID:0x%04X)", vid, pid)
	}
	dev, err := infos[0].Open()
	if err != nil {
		return nil, fmt.Errorf("open device: %w", err)
	}
	return &Device{dev: dev}, nil
}

// Write sends one 64-byte report to the interrupt OUT endpoint.
func (d *Device) Write(p []byte) (int, error) {
	n, err := d.dev.Write(p)
	if err != nil {
		return n, fmt.Errorf("usb write: %w", err)
	}
	return n, nil
}

// Read fills p from the interrupt IN endpoint.
func (d *Device) Read(p []byte) (int, error) {
	n, err := d.dev.Read(p)
	if err != nil {
		return n, fmt.Errorf("usb read: %w", err)
	}
	return n, nil
}

// Close releases the device.
func (d *Device) Close() error {
	return d.dev.Close()
}
