package protocol

import "fmt"

// newFrame allocates a zeroed 64-byte report with the standard 4-byte
// command header filled in.
//
// Frame structure:
//
//	[CMD][SUB][0x00][0x00][PAYLOAD...]
func newFrame(cmd, sub byte) []byte {
	f := make([]byte, ReportLen)
	f[0] = cmd
	f[1] = sub
	return f
}

// BuildCancelTransferCmd constructs the cancel-transfer command. The
// response doubles as the device status report.
func BuildCancelTransferCmd() []byte {
	return newFrame(CmdCancelTransfer, 0x00)
}

// BuildGetChipSettingsCmd constructs a read of the current chip
// settings.
func BuildGetChipSettingsCmd() []byte {
	return newFrame(CmdGetChipSettings, 0x00)
}

// BuildSetChipSettingsCmd constructs a write of the current chip
// settings.
//
// Frame structure:
//
//	[0x21][0x00][0x00][0x00][CHIP SETTINGS(23)]
func BuildSetChipSettingsCmd(s ChipSettings) []byte {
	f := newFrame(CmdSetChipSettings, 0x00)
	s.put(f[4:])
	return f
}

// BuildGetSPISettingsCmd constructs a read of the current SPI transfer
// settings.
func BuildGetSPISettingsCmd() []byte {
	return newFrame(CmdGetSPISettings, 0x00)
}

// BuildSetSPISettingsCmd constructs a write of the current SPI
// transfer settings.
//
// Frame structure:
//
//	[0x40][0x00][0x00][0x00][SPI SETTINGS(17)]
func BuildSetSPISettingsCmd(s SPISettings) []byte {
	f := newFrame(CmdSetSPISettings, 0x00)
	s.put(f[4:])
	return f
}

// BuildGetGPIOValueCmd constructs a read of the GPIO value register.
func BuildGetGPIOValueCmd() []byte {
	return newFrame(CmdGetGPIOValue, 0x00)
}

// BuildSetGPIOValueCmd constructs a write of the GPIO value register.
// The device has no single-bit command; the full register is always
// written.
func BuildSetGPIOValueCmd(v uint16) []byte {
	f := newFrame(CmdSetGPIOValue, 0x00)
	f[4] = byte(v)
	f[5] = byte(v >> 8)
	return f
}

// BuildGetGPIODirectionCmd constructs a read of the GPIO direction
// register.
func BuildGetGPIODirectionCmd() []byte {
	return newFrame(CmdGetGPIODirection, 0x00)
}

// BuildSetGPIODirectionCmd constructs a write of the GPIO direction
// register.
func BuildSetGPIODirectionCmd(v uint16) []byte {
	f := newFrame(CmdSetGPIODirection, 0x00)
	f[4] = byte(v)
	f[5] = byte(v >> 8)
	return f
}

// BuildGetNVRAMCmd constructs a power-up parameter read for the given
// subcommand selector (NVRAMSPISettings, NVRAMChipSettings,
// NVRAMUSBSettings, NVRAMProductName or NVRAMManufacturerName).
func BuildGetNVRAMCmd(sub byte) []byte {
	return newFrame(CmdGetNVRAM, sub)
}

// BuildSetNVRAMChipSettingsCmd constructs a write of the power-up chip
// settings.
func BuildSetNVRAMChipSettingsCmd(s ChipSettings) []byte {
	f := newFrame(CmdSetNVRAM, NVRAMChipSettings)
	s.put(f[4:])
	return f
}

// BuildSetNVRAMSPISettingsCmd constructs a write of the power-up SPI
// transfer settings.
func BuildSetNVRAMSPISettingsCmd(s SPISettings) []byte {
	f := newFrame(CmdSetNVRAM, NVRAMSPISettings)
	s.put(f[4:])
	return f
}

// BuildSetNVRAMUSBSettingsCmd constructs a write of the power-up USB
// enumeration parameters.
//
// Frame structure:
//
//	[0x60][0x30][0x00][0x00][VID(2)][PID(2)][POWER][CURRENT]
func BuildSetNVRAMUSBSettingsCmd(s USBSettings) []byte {
	f := newFrame(CmdSetNVRAM, NVRAMUSBSettings)
	f[4] = byte(s.VID)
	f[5] = byte(s.VID >> 8)
	f[6] = byte(s.PID)
	f[7] = byte(s.PID >> 8)
	f[8] = s.PowerOption
	f[9] = s.CurrentRequest
	return f
}

// BuildSetUSBStringCmd constructs a write of a USB string descriptor
// (NVRAMManufacturerName or NVRAMProductName). Fails with a
// ValidationError if the string does not fit its field; it is never
// truncated.
//
// Frame structure:
//
//	[0x60][SUB][0x00][0x00][STR_LEN][0x03][RAW(58)]
func BuildSetUSBStringCmd(sub byte, s string) ([]byte, error) {
	f := newFrame(CmdSetNVRAM, sub)
	if err := putUSBString(f[4:], s); err != nil {
		return nil, err
	}
	return f, nil
}

// BuildSendPasswordCmd constructs the access password command. The
// password may be at most PasswordLen bytes; shorter values are
// zero-padded on the wire.
//
// Frame structure:
//
//	[0x70][0x00][0x00][0x00][PASSWORD(8)]
func BuildSendPasswordCmd(password string) ([]byte, error) {
	if len(password) > PasswordLen {
		return nil, &ValidationError{
			Reason: fmt.Sprintf("password is %d bytes, limit is %d", len(password), PasswordLen),
		}
	}
	f := newFrame(CmdSendPassword, 0x00)
	copy(f[4:4+PasswordLen], password)
	return f, nil
}

// BuildSPITransferCmd constructs one SPI data report carrying up to
// MaxTransferChunk bytes. An empty chunk is valid and is used to poll
// the engine for received data during the drain phase.
//
// Frame structure (no subcommand; byte 1 is the chunk length):
//
//	[0x42][LEN][0x00][0x00][DATA(60)]
func BuildSPITransferCmd(chunk []byte) ([]byte, error) {
	if len(chunk) > MaxTransferChunk {
		return nil, &ValidationError{
			Reason: fmt.Sprintf("SPI chunk is %d bytes, limit is %d", len(chunk), MaxTransferChunk),
		}
	}
	f := make([]byte, ReportLen)
	f[0] = CmdSPITransfer
	f[1] = byte(len(chunk))
	copy(f[4:], chunk)
	return f, nil
}

// BuildReadEEPROMCmd constructs a single-cell EEPROM read. EEPROM
// commands use a short 3-byte header instead of the standard command
// header.
//
// Frame structure:
//
//	[0x50][ADDRESS][0x00]
func BuildReadEEPROMCmd(address byte) ([]byte, error) {
	if int(address) >= EEPROMSize {
		return nil, &ValidationError{
			Reason: fmt.Sprintf("EEPROM address %d out of range 0..%d", address, EEPROMSize-1),
		}
	}
	f := make([]byte, ReportLen)
	f[0] = CmdReadEEPROM
	f[1] = address
	return f, nil
}

// BuildWriteEEPROMCmd constructs a single-cell EEPROM write.
//
// Frame structure:
//
//	[0x51][ADDRESS][VALUE]
func BuildWriteEEPROMCmd(address, value byte) ([]byte, error) {
	if int(address) >= EEPROMSize {
		return nil, &ValidationError{
			Reason: fmt.Sprintf("EEPROM address %d out of range 0..%d", address, EEPROMSize-1),
		}
	}
	f := make([]byte, ReportLen)
	f[0] = CmdWriteEEPROM
	f[1] = address
	f[2] = value
	return f, nil
}
