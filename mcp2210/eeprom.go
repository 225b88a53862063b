package mcp2210

import (
	"fmt"

	"github.com/hwlabs/go-mcp2210/protocol"
)

// EEPROM is a byte-addressable accessor over the chip's 255-cell user
// store. It is deliberately uncached: the store is mutable external
// hardware state, so every single-cell access is one round trip.
type EEPROM struct {
	dev *Device
}

// ReadByte reads the cell at address (0..254).
func (e *EEPROM) ReadByte(address int) (byte, error) {
	if err := checkAddress(address); err != nil {
		return 0, err
	}
	frame, err := protocol.BuildReadEEPROMCmd(byte(address))
	if err != nil {
		return 0, err
	}
	resp, err := e.dev.exchange(frame)
	if err != nil {
		return 0, err
	}
	return protocol.ParseEEPROMByte(resp), nil
}

// WriteByte writes the cell at address (0..254).
func (e *EEPROM) WriteByte(address int, value byte) error {
	if err := checkAddress(address); err != nil {
		return err
	}
	frame, err := protocol.BuildWriteEEPROMCmd(byte(address), value)
	if err != nil {
		return err
	}
	_, err = e.dev.exchange(frame)
	return err
}

// ReadRange reads [start, end) as end-start sequential single-cell
// reads in ascending address order. There is no batch command.
func (e *EEPROM) ReadRange(start, end int) ([]byte, error) {
	if err := checkSpan(start, end); err != nil {
		return nil, err
	}
	out := make([]byte, 0, end-start)
	for a := start; a < end; a++ {
		b, err := e.ReadByte(a)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// WriteRange writes values to [start, end). The value count must equal
// end-start exactly; a mismatch fails before any cell is written.
func (e *EEPROM) WriteRange(start, end int, values []byte) error {
	if err := checkSpan(start, end); err != nil {
		return err
	}
	if len(values) != end-start {
		return &protocol.ValidationError{
			Reason: fmt.Sprintf("range [%d,%d) needs %d values, got %d", start, end, end-start, len(values)),
		}
	}
	for i, v := range values {
		if err := e.WriteByte(start+i, v); err != nil {
			return err
		}
	}
	return nil
}

func checkAddress(a int) error {
	if a < 0 || a >= protocol.EEPROMSize {
		return &protocol.ValidationError{
			Reason: fmt.Sprintf("EEPROM address %d out of range 0..%d", a, protocol.EEPROMSize-1),
		}
	}
	return nil
}

func checkSpan(start, end int) error {
	if start < 0 || end < start || end > protocol.EEPROMSize {
		return &protocol.ValidationError{
			Reason: fmt.Sprintf("EEPROM range [%d,%d) outside store of %d cells", start, end, protocol.EEPROMSize),
		}
	}
	return nil
}
