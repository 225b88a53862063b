package mcp2210

import (
	"fmt"

	"github.com/hwlabs/go-mcp2210/protocol"
)

// NumPins is the width of the GPIO registers. Pins GP0..GP8 exist on
// the package; the registers are nevertheless 16 bits wide on the
// wire.
const NumPins = 16

// Pins is a bit-indexed view over one 16-bit GPIO register (value or
// direction). The raw register is fetched on first access and cached
// until an explicit write. The device has no single-bit command, so
// every bit write reads the cache, flips one bit and writes the whole
// register back.
type Pins struct {
	dev      *Device
	getFrame func() []byte
	setFrame func(uint16) []byte
	value    *uint16
}

// Raw returns the register, fetching it on first access.
func (p *Pins) Raw() (uint16, error) {
	if p.value != nil {
		return *p.value, nil
	}
	resp, err := p.dev.exchange(p.getFrame())
	if err != nil {
		return 0, err
	}
	v := protocol.ParseGPIO(resp)
	p.value = &v
	return v, nil
}

// SetRaw writes the whole register and updates the cache.
func (p *Pins) SetRaw(v uint16) error {
	p.value = &v
	_, err := p.dev.exchange(p.setFrame(v))
	return err
}

// Pin returns bit i of the register.
func (p *Pins) Pin(i int) (bool, error) {
	if err := checkPin(i); err != nil {
		return false, err
	}
	raw, err := p.Raw()
	if err != nil {
		return false, err
	}
	return raw>>i&1 == 1, nil
}

// SetPin sets or clears bit i and writes the full register back.
func (p *Pins) SetPin(i int, level bool) error {
	if err := checkPin(i); err != nil {
		return err
	}
	raw, err := p.Raw()
	if err != nil {
		return err
	}
	if level {
		raw |= 1 << i
	} else {
		raw &^= 1 << i
	}
	return p.SetRaw(raw)
}

func checkPin(i int) error {
	if i < 0 || i >= NumPins {
		return &protocol.ValidationError{
			Reason: fmt.Sprintf("pin index %d out of range 0..%d", i, NumPins-1),
		}
	}
	return nil
}
