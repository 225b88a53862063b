// Package hid provides the default transport for the bridge chip: an
// opened USB HID handle exchanging 64-byte reports with no report ID.
package hid

import (
	usbhid "rafaelmartins.com/p/usbhid"
)

// Info describes an attached HID device.
type Info struct {
	Path         string
	VendorID     uint16
	ProductID    uint16
	Product      string
	Manufacturer string
}

// List enumerates attached HID devices.
func List() ([]Info, error) {
	devs, err := usbhid.Enumerate(nil)
	if err != nil {
		return nil, err
	}
	out := make([]Info, 0, len(devs))
	for _, d := range devs {
		out = append(out, Info{
			Path:         d.Path(),
			VendorID:     d.VendorId(),
			ProductID:    d.ProductId(),
			Product:      d.Product(),
			Manufacturer: d.Manufacturer(),
		})
	}
	return out, nil
}

// Device is one exclusively-opened HID handle.
type Device struct {
	d *usbhid.Device
}

// Open opens the device previously returned by List.
func Open(info Info) (*Device, error) {
	d, err := usbhid.Get(func(dev *usbhid.Device) bool {
		return dev.Path() == info.Path
	}, true, false)
	if err != nil {
		return nil, err
	}
	return &Device{d}, nil
}

// OpenVIDPID opens the first device matching the vendor and product
// identifiers.
func OpenVIDPID(vendorID, productID uint16) (*Device, error) {
	d, err := usbhid.Get(func(dev *usbhid.Device) bool {
		return dev.VendorId() == vendorID && dev.ProductId() == productID
	}, true, false)
	if err != nil {
		return nil, err
	}
	return &Device{d}, nil
}

// Write sends p as one output report. The chip's reports carry no
// report ID, so the payload goes out as-is under report ID zero.
func (d *Device) Write(p []byte) (int, error) {
	if err := d.d.SetOutputReport(0, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Read fills p from the next input report.
func (d *Device) Read(p []byte) (int, error) {
	_, buf, err := d.d.GetInputReport()
	if err != nil {
		return 0, err
	}
	return copy(p, buf), nil
}

// Close releases the handle.
func (d *Device) Close() error { return d.d.Close() }
