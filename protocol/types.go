package protocol

import "encoding/binary"

// ChipSettings is the GP pin function table plus access control, as
// carried by the chip-settings commands (current and power-up copies).
type ChipSettings struct {
	// PinDesignations selects the function of GP0..GP8
	// (GPIO, chip select, or dedicated function).
	PinDesignations [9]byte

	// GPIOOutputs is the default output latch, one bit per pin.
	GPIOOutputs uint16

	// GPIODirections is the direction register, 1 = input.
	GPIODirections uint16

	// OtherSettings packs remote wakeup, interrupt mode and the
	// SPI-bus-release enable bit.
	OtherSettings byte

	// AccessControl selects unprotected, password-guarded or
	// permanently-locked NVRAM access.
	AccessControl byte

	// Password is the new access password on writes; not readable.
	Password [8]byte
}

// chipSettingsLen is the packed payload size of ChipSettings.
const chipSettingsLen = 23

func (s *ChipSettings) put(p []byte) {
	copy(p[0:9], s.PinDesignations[:])
	binary.LittleEndian.PutUint16(p[9:11], s.GPIOOutputs)
	binary.LittleEndian.PutUint16(p[11:13], s.GPIODirections)
	p[13] = s.OtherSettings
	p[14] = s.AccessControl
	copy(p[15:23], s.Password[:])
}

func (s *ChipSettings) parse(p []byte) {
	copy(s.PinDesignations[:], p[0:9])
	s.GPIOOutputs = binary.LittleEndian.Uint16(p[9:11])
	s.GPIODirections = binary.LittleEndian.Uint16(p[11:13])
	s.OtherSettings = p[13]
	s.AccessControl = p[14]
	copy(s.Password[:], p[15:23])
}

// SPISettings is the SPI transfer parameter block. BitRate is in Hz.
// All delay fields are in units of 100 us. SPITxSize must equal the
// total byte count of the next logical transfer before that transfer's
// first data report is sent.
type SPISettings struct {
	BitRate        uint32
	IdleCS         uint16
	ActiveCS       uint16
	CSDataDelay    uint16
	LBCSDelay      uint16
	InterByteDelay uint16
	SPITxSize      uint16
	SPIMode        byte
}

// spiSettingsLen is the packed payload size of SPISettings.
const spiSettingsLen = 17

func (s *SPISettings) put(p []byte) {
	binary.LittleEndian.PutUint32(p[0:4], s.BitRate)
	binary.LittleEndian.PutUint16(p[4:6], s.IdleCS)
	binary.LittleEndian.PutUint16(p[6:8], s.ActiveCS)
	binary.LittleEndian.PutUint16(p[8:10], s.CSDataDelay)
	binary.LittleEndian.PutUint16(p[10:12], s.LBCSDelay)
	binary.LittleEndian.PutUint16(p[12:14], s.InterByteDelay)
	binary.LittleEndian.PutUint16(p[14:16], s.SPITxSize)
	p[16] = s.SPIMode
}

func (s *SPISettings) parse(p []byte) {
	s.BitRate = binary.LittleEndian.Uint32(p[0:4])
	s.IdleCS = binary.LittleEndian.Uint16(p[4:6])
	s.ActiveCS = binary.LittleEndian.Uint16(p[6:8])
	s.CSDataDelay = binary.LittleEndian.Uint16(p[8:10])
	s.LBCSDelay = binary.LittleEndian.Uint16(p[10:12])
	s.InterByteDelay = binary.LittleEndian.Uint16(p[12:14])
	s.SPITxSize = binary.LittleEndian.Uint16(p[14:16])
	s.SPIMode = p[16]
}

// USBSettings is the power-up USB enumeration block.
type USBSettings struct {
	VID uint16
	PID uint16

	// PowerOption packs the self/bus powered and remote wakeup bits.
	PowerOption byte

	// CurrentRequest is the requested bus current in 2 mA units.
	CurrentRequest byte
}

// DeviceStatus is returned by the cancel-transfer/status command.
type DeviceStatus struct {
	// BusReleaseStatus: 0 when an external bus-release request is
	// pending, 1 otherwise.
	BusReleaseStatus byte

	// BusOwner reports who owns the SPI bus: 0 none, 1 USB bridge,
	// 2 external master.
	BusOwner byte

	// PasswordAttempts counts password tries since power-up.
	PasswordAttempts byte

	// PasswordGuessed is nonzero once the correct password was seen.
	PasswordGuessed byte
}
