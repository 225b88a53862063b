package protocol

import (
	"encoding/binary"
	"fmt"
)

// ParseHeader validates the shape shared by every response: exactly 64
// bytes, command byte echoing wantCmd. It returns the raw status byte;
// callers decide whether a nonzero status is fatal for them. A length
// or echo mismatch is a FramingError, never silently ignored.
func ParseHeader(frame []byte, wantCmd byte) (byte, error) {
	if len(frame) != ReportLen {
		return 0, &FramingError{
			Reason: fmt.Sprintf("response is %d bytes, want %d", len(frame), ReportLen),
		}
	}
	if frame[0] != wantCmd {
		return 0, &FramingError{
			Reason: fmt.Sprintf("response echoes command 0x%02X, request was 0x%02X", frame[0], wantCmd),
		}
	}
	return frame[1], nil
}

// ParseChipSettings decodes a chip-settings payload (current or
// power-up; both use the same layout after the response header).
func ParseChipSettings(frame []byte) ChipSettings {
	var s ChipSettings
	s.parse(frame[4 : 4+chipSettingsLen])
	return s
}

// ParseSPISettings decodes an SPI-settings payload.
func ParseSPISettings(frame []byte) SPISettings {
	var s SPISettings
	s.parse(frame[4 : 4+spiSettingsLen])
	return s
}

// ParseUSBSettings decodes the power-up USB parameter response. Unlike
// the set command, the read response scatters the fields across the
// report.
//
// Response structure (absolute offsets):
//
//	[0x61][STATUS][0x30][..][RESERVED(8)][VID(2)][PID(2)][RESERVED(13)][POWER][CURRENT]
func ParseUSBSettings(frame []byte) USBSettings {
	return USBSettings{
		VID:            binary.LittleEndian.Uint16(frame[12:14]),
		PID:            binary.LittleEndian.Uint16(frame[14:16]),
		PowerOption:    frame[29],
		CurrentRequest: frame[30],
	}
}

// ParseGPIO decodes a 16-bit GPIO register response (value or
// direction).
func ParseGPIO(frame []byte) uint16 {
	return binary.LittleEndian.Uint16(frame[4:6])
}

// ParseUSBString decodes a USB string descriptor response.
func ParseUSBString(frame []byte) (string, error) {
	return parseUSBString(frame[4:])
}

// ParseEEPROMByte decodes a single-cell EEPROM read response.
//
// Response structure:
//
//	[0x50][STATUS][ADDRESS][VALUE]
func ParseEEPROMByte(frame []byte) byte {
	return frame[3]
}

// ParseSPITransferData decodes an SPI transfer response: the number of
// bytes the engine has clocked back, which may be fewer than the chunk
// just sent, or zero while the engine is still shifting.
//
// Response structure:
//
//	[0x42][STATUS][LEN][ENGINE][DATA(60)]
//
// The returned slice is a copy and aliases nothing in frame.
func ParseSPITransferData(frame []byte) ([]byte, error) {
	n := int(frame[2])
	if n > MaxTransferChunk {
		return nil, &FramingError{
			Reason: fmt.Sprintf("SPI response claims %d data bytes, limit is %d", n, MaxTransferChunk),
		}
	}
	data := make([]byte, n)
	copy(data, frame[4:4+n])
	return data, nil
}

// ParseEngineStatus returns the SPI engine status byte of a transfer
// response (EngineFinished, EngineStarted or EngineDataReady).
func ParseEngineStatus(frame []byte) byte {
	return frame[3]
}

// ParseDeviceStatus decodes the cancel-transfer/status response.
//
// Response structure:
//
//	[0x11][STATUS][RELEASE][OWNER][ATTEMPTS][GUESSED]
func ParseDeviceStatus(frame []byte) DeviceStatus {
	return DeviceStatus{
		BusReleaseStatus: frame[2],
		BusOwner:         frame[3],
		PasswordAttempts: frame[4],
		PasswordGuessed:  frame[5],
	}
}
