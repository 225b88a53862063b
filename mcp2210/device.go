package mcp2210

import (
	"fmt"
	"sync"

	"github.com/hwlabs/go-mcp2210/hid"
	"github.com/hwlabs/go-mcp2210/protocol"
)

// VID and PID are the default Microchip-assigned identifiers the chip
// enumerates with before its NVRAM USB settings are customized.
const (
	VID uint16 = 0x04D8
	PID uint16 = 0x00DE
)

// Transport is one exclusive handle to the physical HID device. The
// hid package provides the default implementation; internal/rawusb
// provides a libusb-based fallback. Write sends one 64-byte output
// report, Read fills one 64-byte input report.
type Transport interface {
	Write(p []byte) (int, error)
	Read(p []byte) (int, error)
	Close() error
}

// Device is an open session with one MCP2210. All I/O funnels through
// a single mutex-guarded exchange; see the package documentation for
// the concurrency contract.
type Device struct {
	mu     sync.Mutex
	tr     Transport
	config Config

	manufacturer *property[string]
	product      *property[string]
	chip         *property[protocol.ChipSettings]
	bootChip     *property[protocol.ChipSettings]
	spi          *property[protocol.SPISettings]
	bootSPI      *property[protocol.SPISettings]
	bootUSB      *property[protocol.USBSettings]

	gpio    *Pins
	gpioDir *Pins
	eeprom  *EEPROM
}

// New wraps an already-opened transport in a session. It issues a
// cancel-transfer command before anything else, clearing any
// half-finished transfer left behind by a previous session or crash;
// construction fails if that exchange fails.
func New(tr Transport, opts ...Option) (*Device, error) {
	if tr == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &Device{tr: tr, config: cfg}
	d.initProperties()
	d.gpio = &Pins{
		dev:      d,
		getFrame: protocol.BuildGetGPIOValueCmd,
		setFrame: protocol.BuildSetGPIOValueCmd,
	}
	d.gpioDir = &Pins{
		dev:      d,
		getFrame: protocol.BuildGetGPIODirectionCmd,
		setFrame: protocol.BuildSetGPIODirectionCmd,
	}
	d.eeprom = &EEPROM{dev: d}

	if _, err := d.CancelTransfer(); err != nil {
		return nil, fmt.Errorf("reset to idle: %w", err)
	}
	return d, nil
}

// Open finds the chip by VID/PID on the default HID transport and
// wraps it in a session.
func Open(vid, pid uint16, opts ...Option) (*Device, error) {
	tr, err := hid.OpenVIDPID(vid, pid)
	if err != nil {
		return nil, err
	}
	d, err := New(tr, opts...)
	if err != nil {
		tr.Close()
		return nil, err
	}
	return d, nil
}

// Close releases the underlying transport. The session's caches die
// with it.
func (d *Device) Close() error {
	return d.tr.Close()
}

// exchange performs one request/reply pair: write 64 bytes, read 64
// bytes, validate the echoed command byte and the status byte. It is
// the only place that touches the transport. Exactly one exchange may
// be outstanding per device; the wire format has no correlation
// identifier, so overlapping senders would corrupt each other.
func (d *Device) exchange(frame []byte) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.tr.Write(frame); err != nil {
		return nil, fmt.Errorf("hid write: %w", err)
	}

	resp := make([]byte, protocol.ReportLen)
	n, err := d.tr.Read(resp)
	if err != nil {
		return nil, fmt.Errorf("hid read: %w", err)
	}

	status, err := protocol.ParseHeader(resp[:n], frame[0])
	if err != nil {
		return nil, err
	}
	if d.config.Logger != nil {
		d.config.Logger.Debug("exchange",
			"command", fmt.Sprintf("0x%02X", frame[0]),
			"status", fmt.Sprintf("0x%02X", status))
	}
	if status != protocol.StatusSuccess {
		return nil, &protocol.StatusError{Command: frame[0], Code: status}
	}
	return resp, nil
}

// CancelTransfer forces the SPI engine back to idle, discarding any
// transfer in flight, and reports the device status.
func (d *Device) CancelTransfer() (protocol.DeviceStatus, error) {
	resp, err := d.exchange(protocol.BuildCancelTransferCmd())
	if err != nil {
		return protocol.DeviceStatus{}, err
	}
	return protocol.ParseDeviceStatus(resp), nil
}

// Authenticate submits the access password for chips configured with
// conditional access control.
func (d *Device) Authenticate(password string) error {
	frame, err := protocol.BuildSendPasswordCmd(password)
	if err != nil {
		return err
	}
	_, err = d.exchange(frame)
	return err
}

// GPIO returns the bit view over the GPIO value register.
func (d *Device) GPIO() *Pins { return d.gpio }

// GPIODirection returns the bit view over the GPIO direction register.
func (d *Device) GPIODirection() *Pins { return d.gpioDir }

// EEPROM returns the accessor for the user EEPROM.
func (d *Device) EEPROM() *EEPROM { return d.eeprom }
