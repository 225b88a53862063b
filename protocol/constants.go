package protocol

// ReportLen is the size of every command and response report. The
// MCP2210 exchanges fixed 64-byte HID reports with no report ID.
const ReportLen = 64

// Command codes per datasheet section 3.
const (
	// CmdCancelTransfer terminates an in-flight SPI transfer and
	// returns the device status.
	CmdCancelTransfer = 0x11

	// CmdGetChipSettings reads the current (volatile) chip settings.
	CmdGetChipSettings = 0x20

	// CmdSetChipSettings writes the current chip settings.
	CmdSetChipSettings = 0x21

	// CmdSetGPIOValue writes the 16-bit GPIO output register.
	CmdSetGPIOValue = 0x30

	// CmdGetGPIOValue reads the 16-bit GPIO value register.
	CmdGetGPIOValue = 0x31

	// CmdSetGPIODirection writes the 16-bit GPIO direction register.
	CmdSetGPIODirection = 0x32

	// CmdGetGPIODirection reads the 16-bit GPIO direction register.
	CmdGetGPIODirection = 0x33

	// CmdSetSPISettings writes the current SPI transfer settings.
	CmdSetSPISettings = 0x40

	// CmdGetSPISettings reads the current SPI transfer settings.
	CmdGetSPISettings = 0x41

	// CmdSPITransfer clocks up to 60 bytes over the SPI bus and
	// returns whatever the engine has clocked back so far.
	CmdSPITransfer = 0x42

	// CmdReadEEPROM reads one EEPROM cell. Uses the short 3-byte
	// header, not the standard command header.
	CmdReadEEPROM = 0x50

	// CmdWriteEEPROM writes one EEPROM cell. Short header as well.
	CmdWriteEEPROM = 0x51

	// CmdSetNVRAM writes a power-up (NVRAM) parameter selected by
	// subcommand.
	CmdSetNVRAM = 0x60

	// CmdGetNVRAM reads a power-up (NVRAM) parameter selected by
	// subcommand.
	CmdGetNVRAM = 0x61

	// CmdSendPassword submits the access password for chips with
	// conditional access control.
	CmdSendPassword = 0x70
)

// NVRAM subcommand selectors for CmdGetNVRAM / CmdSetNVRAM.
const (
	NVRAMSPISettings      = 0x10
	NVRAMChipSettings     = 0x20
	NVRAMUSBSettings      = 0x30
	NVRAMProductName      = 0x40
	NVRAMManufacturerName = 0x50
)

// Response status codes. Zero is success; everything else is surfaced
// to the caller unmodified inside a StatusError.
const (
	StatusSuccess = 0x00

	// StatusBusNotAvailable: the SPI bus is owned by the external host.
	StatusBusNotAvailable = 0xF7

	// StatusTransferInProgress: a transfer is already in flight and the
	// command cannot be honored until it completes or is cancelled.
	StatusTransferInProgress = 0xF8

	// StatusUnknownCommand: the command code was not recognized.
	StatusUnknownCommand = 0xF9

	// StatusWriteFailure: the EEPROM write did not complete.
	StatusWriteFailure = 0xFA

	// StatusLocked: the NVRAM is permanently locked.
	StatusLocked = 0xFB

	// StatusAccessRejected: access conditions not met.
	StatusAccessRejected = 0xFC

	// StatusWrongPassword: the supplied access password did not match.
	StatusWrongPassword = 0xFD
)

// SPI engine status byte of a transfer response.
const (
	// EngineFinished: transfer finished, no more data available.
	EngineFinished = 0x10

	// EngineStarted: transfer started, no data to receive yet.
	EngineStarted = 0x20

	// EngineDataReady: received data is available in this response.
	EngineDataReady = 0x30
)

const (
	// MaxTransferChunk is the largest SPI payload one report can carry.
	MaxTransferChunk = 60

	// MaxTransferSize is the largest value representable in the 16-bit
	// spiTxSize settings field, and therefore the largest single
	// logical SPI transfer.
	MaxTransferSize = 0xFFFF

	// EEPROMSize is the number of byte cells in the user EEPROM.
	// Valid addresses are 0 through EEPROMSize-1.
	EEPROMSize = 255

	// PasswordLen is the size of the access password field.
	PasswordLen = 8

	// stringFieldLen is the size of the raw USB string field within a
	// NVRAM string report.
	stringFieldLen = 58

	// MaxStringBytes is the largest UTF-16LE payload a USB string
	// descriptor can hold once the 2-byte descriptor header is
	// accounted for.
	MaxStringBytes = stringFieldLen - 2

	// descriptorIDString tags both the manufacturer and product
	// records. 0x03 is the USB STRING descriptor type; the original
	// implementation uses it for both fields and that convention is
	// kept here.
	descriptorIDString = 0x03
)
