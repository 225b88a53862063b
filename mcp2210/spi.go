package mcp2210

import (
	"errors"
	"fmt"

	"github.com/hwlabs/go-mcp2210/protocol"
)

// ErrTransferStalled is returned when a transfer's drain phase
// exhausts its poll budget before the device has clocked back a full
// result. The device may be mid-transfer; issue CancelTransfer before
// reusing the session.
var ErrTransferStalled = errors.New("mcp2210: spi transfer stalled before completing")

// Transfer clocks data over the SPI bus and returns the bytes clocked
// back, always exactly len(data) of them on success.
//
// The engine only accepts data reports whose running total matches the
// spiTxSize it was configured with, so the transfer first rewrites the
// SPI settings with spiTxSize = len(data). Data then goes out in
// reports of at most 60 bytes; each response carries however many
// bytes the engine has clocked back so far, which lags the bytes sent
// due to the engine's internal buffering. Once everything is sent,
// empty reports poll the engine until the result is complete.
//
// A zero-length transfer still performs the settings write and returns
// an empty slice. Any error aborts immediately and may leave the
// device mid-transfer; the caller is responsible for CancelTransfer
// before further use.
func (d *Device) Transfer(data []byte) ([]byte, error) {
	if len(data) > protocol.MaxTransferSize {
		return nil, &protocol.ValidationError{
			Reason: fmt.Sprintf("transfer of %d bytes exceeds the %d-byte limit", len(data), protocol.MaxTransferSize),
		}
	}

	settings, err := d.SPISettings()
	if err != nil {
		return nil, err
	}
	settings.SPITxSize = uint16(len(data))
	if err := d.SetSPISettings(settings); err != nil {
		return nil, err
	}
	if d.config.Logger != nil {
		d.config.Logger.Debug("spi transfer", "bytes", len(data))
	}

	received := make([]byte, 0, len(data))
	for off := 0; off < len(data); off += protocol.MaxTransferChunk {
		end := off + protocol.MaxTransferChunk
		if end > len(data) {
			end = len(data)
		}
		part, err := d.transferChunk(data[off:end])
		if err != nil {
			return nil, err
		}
		received = append(received, part...)

		// Throttle between data reports to respect the engine's SPI
		// clocking rate; the protocol offers no flow control.
		d.config.Sleep(d.config.ChunkDelay)
	}

	for polls := 0; len(received) < len(data); polls++ {
		if polls >= d.config.DrainLimit {
			return nil, ErrTransferStalled
		}
		part, err := d.transferChunk(nil)
		if err != nil {
			return nil, err
		}
		received = append(received, part...)
	}

	return received[:len(data)], nil
}

func (d *Device) transferChunk(chunk []byte) ([]byte, error) {
	frame, err := protocol.BuildSPITransferCmd(chunk)
	if err != nil {
		return nil, err
	}
	resp, err := d.exchange(frame)
	if err != nil {
		return nil, err
	}
	return protocol.ParseSPITransferData(resp)
}
