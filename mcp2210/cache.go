package mcp2210

import "github.com/hwlabs/go-mcp2210/protocol"

// property is a lazily-fetched, write-through cache over one remote
// setting. A get returns the cached value when present and otherwise
// fetches, caches and returns it; nothing is cached when the fetch
// fails. A set validates, caches, then writes through; there is no
// read-back verification and no automatic invalidation. The cache
// lives and dies with the session.
type property[T any] struct {
	dev      *Device
	getFrame func() []byte
	setFrame func(T) ([]byte, error)
	parse    func([]byte) (T, error)
	value    *T
}

func (p *property[T]) get() (T, error) {
	if p.value != nil {
		return *p.value, nil
	}
	var zero T
	resp, err := p.dev.exchange(p.getFrame())
	if err != nil {
		return zero, err
	}
	v, err := p.parse(resp)
	if err != nil {
		return zero, err
	}
	p.value = &v
	return v, nil
}

func (p *property[T]) set(v T) error {
	frame, err := p.setFrame(v)
	if err != nil {
		// Local validation failure: nothing was sent, cache untouched.
		return err
	}
	p.value = &v
	_, err = p.dev.exchange(frame)
	return err
}

func (d *Device) initProperties() {
	d.manufacturer = &property[string]{
		dev:      d,
		getFrame: func() []byte { return protocol.BuildGetNVRAMCmd(protocol.NVRAMManufacturerName) },
		setFrame: func(s string) ([]byte, error) {
			return protocol.BuildSetUSBStringCmd(protocol.NVRAMManufacturerName, s)
		},
		parse: protocol.ParseUSBString,
	}
	d.product = &property[string]{
		dev:      d,
		getFrame: func() []byte { return protocol.BuildGetNVRAMCmd(protocol.NVRAMProductName) },
		setFrame: func(s string) ([]byte, error) {
			return protocol.BuildSetUSBStringCmd(protocol.NVRAMProductName, s)
		},
		parse: protocol.ParseUSBString,
	}
	d.chip = &property[protocol.ChipSettings]{
		dev:      d,
		getFrame: protocol.BuildGetChipSettingsCmd,
		setFrame: func(s protocol.ChipSettings) ([]byte, error) {
			return protocol.BuildSetChipSettingsCmd(s), nil
		},
		parse: parseOK(protocol.ParseChipSettings),
	}
	d.bootChip = &property[protocol.ChipSettings]{
		dev:      d,
		getFrame: func() []byte { return protocol.BuildGetNVRAMCmd(protocol.NVRAMChipSettings) },
		setFrame: func(s protocol.ChipSettings) ([]byte, error) {
			return protocol.BuildSetNVRAMChipSettingsCmd(s), nil
		},
		parse: parseOK(protocol.ParseChipSettings),
	}
	d.spi = &property[protocol.SPISettings]{
		dev:      d,
		getFrame: protocol.BuildGetSPISettingsCmd,
		setFrame: func(s protocol.SPISettings) ([]byte, error) {
			return protocol.BuildSetSPISettingsCmd(s), nil
		},
		parse: parseOK(protocol.ParseSPISettings),
	}
	d.bootSPI = &property[protocol.SPISettings]{
		dev:      d,
		getFrame: func() []byte { return protocol.BuildGetNVRAMCmd(protocol.NVRAMSPISettings) },
		setFrame: func(s protocol.SPISettings) ([]byte, error) {
			return protocol.BuildSetNVRAMSPISettingsCmd(s), nil
		},
		parse: parseOK(protocol.ParseSPISettings),
	}
	d.bootUSB = &property[protocol.USBSettings]{
		dev:      d,
		getFrame: func() []byte { return protocol.BuildGetNVRAMCmd(protocol.NVRAMUSBSettings) },
		setFrame: func(s protocol.USBSettings) ([]byte, error) {
			return protocol.BuildSetNVRAMUSBSettingsCmd(s), nil
		},
		parse: parseOK(protocol.ParseUSBSettings),
	}
}

// parseOK adapts an infallible payload decoder to the property parse
// signature.
func parseOK[T any](f func([]byte) T) func([]byte) (T, error) {
	return func(frame []byte) (T, error) {
		return f(frame), nil
	}
}

// ManufacturerName reads the USB manufacturer descriptor string,
// cached after the first fetch.
func (d *Device) ManufacturerName() (string, error) { return d.manufacturer.get() }

// SetManufacturerName writes the USB manufacturer descriptor string.
// Strings whose UTF-16LE payload exceeds 56 bytes fail validation
// before any report is sent.
func (d *Device) SetManufacturerName(s string) error { return d.manufacturer.set(s) }

// ProductName reads the USB product descriptor string, cached after
// the first fetch.
func (d *Device) ProductName() (string, error) { return d.product.get() }

// SetProductName writes the USB product descriptor string.
func (d *Device) SetProductName(s string) error { return d.product.set(s) }

// ChipSettings reads the current (volatile) chip settings.
func (d *Device) ChipSettings() (protocol.ChipSettings, error) { return d.chip.get() }

// SetChipSettings writes the current chip settings.
func (d *Device) SetChipSettings(s protocol.ChipSettings) error { return d.chip.set(s) }

// BootChipSettings reads the power-up chip settings from NVRAM.
func (d *Device) BootChipSettings() (protocol.ChipSettings, error) { return d.bootChip.get() }

// SetBootChipSettings writes the power-up chip settings to NVRAM.
func (d *Device) SetBootChipSettings(s protocol.ChipSettings) error { return d.bootChip.set(s) }

// SPISettings reads the current SPI transfer settings.
func (d *Device) SPISettings() (protocol.SPISettings, error) { return d.spi.get() }

// SetSPISettings writes the current SPI transfer settings.
func (d *Device) SetSPISettings(s protocol.SPISettings) error { return d.spi.set(s) }

// BootSPISettings reads the power-up SPI settings from NVRAM.
func (d *Device) BootSPISettings() (protocol.SPISettings, error) { return d.bootSPI.get() }

// SetBootSPISettings writes the power-up SPI settings to NVRAM.
func (d *Device) SetBootSPISettings(s protocol.SPISettings) error { return d.bootSPI.set(s) }

// BootUSBSettings reads the power-up USB enumeration parameters.
func (d *Device) BootUSBSettings() (protocol.USBSettings, error) { return d.bootUSB.get() }

// SetBootUSBSettings writes the power-up USB enumeration parameters.
func (d *Device) SetBootUSBSettings(s protocol.USBSettings) error { return d.bootUSB.set(s) }
