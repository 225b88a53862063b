package mcp2210

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hwlabs/go-mcp2210/protocol"
)

// gpioResp builds a register read response carrying raw.
func gpioResp(cmd byte, raw uint16) []byte {
	return okResp(cmd, byte(raw), byte(raw>>8))
}

func TestSetPinWritesWholeRegister(t *testing.T) {
	m := newMockTransport()
	d := newTestDevice(t, m)
	m.handlers[protocol.CmdGetGPIOValue] = func([]byte) []byte {
		return gpioResp(protocol.CmdGetGPIOValue, 0x0000)
	}

	if err := d.GPIO().SetPin(3, true); err != nil {
		t.Fatalf("SetPin: %v", err)
	}

	frame := m.writes[len(m.writes)-1]
	if frame[0] != protocol.CmdSetGPIOValue {
		t.Fatalf("last command = 0x%02X, want set-value 0x%02X", frame[0], protocol.CmdSetGPIOValue)
	}
	if frame[4] != 0x08 || frame[5] != 0x00 {
		t.Errorf("register on the wire = 0x%02X%02X, want 0x0008", frame[5], frame[4])
	}

	// The cached register must now read back without device traffic.
	before := len(m.writes)
	raw, err := d.GPIO().Raw()
	if err != nil {
		t.Fatalf("Raw: %v", err)
	}
	if raw != 0x0008 {
		t.Errorf("cached raw = 0x%04X, want 0x0008", raw)
	}
	if len(m.writes) != before {
		t.Error("cached read issued device traffic")
	}
}

func TestSetPinPreservesOtherBits(t *testing.T) {
	for i := 0; i < NumPins; i++ {
		t.Run(fmt.Sprintf("pin%d", i), func(t *testing.T) {
			m := newMockTransport()
			d := newTestDevice(t, m)
			m.handlers[protocol.CmdGetGPIOValue] = func([]byte) []byte {
				return gpioResp(protocol.CmdGetGPIOValue, 0x0000)
			}

			if err := d.GPIO().SetPin(i, true); err != nil {
				t.Fatalf("SetPin(%d): %v", i, err)
			}
			level, err := d.GPIO().Pin(i)
			if err != nil {
				t.Fatalf("Pin(%d): %v", i, err)
			}
			if !level {
				t.Errorf("pin %d reads low after being set high", i)
			}
			raw, err := d.GPIO().Raw()
			if err != nil {
				t.Fatalf("Raw: %v", err)
			}
			if raw != 1<<i {
				t.Errorf("raw = 0x%04X, want 0x%04X (only bit %d set)", raw, 1<<i, i)
			}
		})
	}
}

func TestClearPin(t *testing.T) {
	m := newMockTransport()
	d := newTestDevice(t, m)
	m.handlers[protocol.CmdGetGPIOValue] = func([]byte) []byte {
		return gpioResp(protocol.CmdGetGPIOValue, 0xFFFF)
	}

	if err := d.GPIO().SetPin(9, false); err != nil {
		t.Fatalf("SetPin: %v", err)
	}
	raw, err := d.GPIO().Raw()
	if err != nil {
		t.Fatalf("Raw: %v", err)
	}
	if raw != 0xFDFF {
		t.Errorf("raw = 0x%04X, want 0xFDFF", raw)
	}
}

func TestPinIndexOutOfRange(t *testing.T) {
	m := newMockTransport()
	d := newTestDevice(t, m)
	before := len(m.writes)

	for _, i := range []int{-1, 16, 100} {
		var validationErr *protocol.ValidationError
		if _, err := d.GPIO().Pin(i); !errors.As(err, &validationErr) {
			t.Errorf("Pin(%d) = %v, want ValidationError", i, err)
		}
		if err := d.GPIO().SetPin(i, true); !errors.As(err, &validationErr) {
			t.Errorf("SetPin(%d) = %v, want ValidationError", i, err)
		}
	}
	if len(m.writes) != before {
		t.Error("out-of-range index reached the device")
	}
}

func TestValueAndDirectionCachesAreIndependent(t *testing.T) {
	m := newMockTransport()
	d := newTestDevice(t, m)
	m.handlers[protocol.CmdGetGPIOValue] = func([]byte) []byte {
		return gpioResp(protocol.CmdGetGPIOValue, 0x00FF)
	}
	m.handlers[protocol.CmdGetGPIODirection] = func([]byte) []byte {
		return gpioResp(protocol.CmdGetGPIODirection, 0xFF00)
	}

	value, err := d.GPIO().Raw()
	if err != nil {
		t.Fatalf("value Raw: %v", err)
	}
	dir, err := d.GPIODirection().Raw()
	if err != nil {
		t.Fatalf("direction Raw: %v", err)
	}
	if value != 0x00FF || dir != 0xFF00 {
		t.Errorf("value = 0x%04X, direction = 0x%04X; want 0x00FF and 0xFF00", value, dir)
	}
}

func TestDirectionWriteUsesDirectionCommand(t *testing.T) {
	m := newMockTransport()
	d := newTestDevice(t, m)

	if err := d.GPIODirection().SetRaw(0x1234); err != nil {
		t.Fatalf("SetRaw: %v", err)
	}
	frame := m.writes[len(m.writes)-1]
	if frame[0] != protocol.CmdSetGPIODirection {
		t.Errorf("command = 0x%02X, want 0x%02X", frame[0], protocol.CmdSetGPIODirection)
	}
	if frame[4] != 0x34 || frame[5] != 0x12 {
		t.Errorf("register bytes = [0x%02X 0x%02X], want [0x34 0x12]", frame[4], frame[5])
	}
}

func TestRawFetchFailureLeavesCacheUnset(t *testing.T) {
	m := newMockTransport()
	d := newTestDevice(t, m)

	m.enqueue(errResp(protocol.CmdGetGPIOValue, 0x01))
	if _, err := d.GPIO().Raw(); err == nil {
		t.Fatal("Raw succeeded despite status error")
	}

	m.handlers[protocol.CmdGetGPIOValue] = func([]byte) []byte {
		return gpioResp(protocol.CmdGetGPIOValue, 0xBEEF)
	}
	raw, err := d.GPIO().Raw()
	if err != nil {
		t.Fatalf("retry Raw: %v", err)
	}
	if raw != 0xBEEF {
		t.Errorf("raw = 0x%04X, want 0xBEEF", raw)
	}
	if got := m.countWrites(protocol.CmdGetGPIOValue); got != 2 {
		t.Errorf("issued %d fetches, want 2 (failed + retry)", got)
	}
}
