package protocol

import "fmt"

// StatusError is a nonzero status byte returned by the device. The raw
// code is carried unmodified; the name lookup is cosmetic.
type StatusError struct {
	// Command is the echoed command code of the failing exchange.
	Command byte

	// Code is the raw status byte from the response.
	Code byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("command 0x%02X failed: %s (0x%02X)", e.Command, statusName(e.Code), e.Code)
}

// FramingError is a malformed exchange: a response that is not exactly
// 64 bytes, or whose echoed command byte does not match the request.
type FramingError struct {
	Reason string
}

func (e *FramingError) Error() string {
	return "framing error: " + e.Reason
}

// ValidationError is a local precondition failure raised before any
// report is built or sent.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Reason
}

func statusName(code byte) string {
	switch code {
	case StatusSuccess:
		return "success"
	case StatusBusNotAvailable:
		return "SPI bus not available"
	case StatusTransferInProgress:
		return "SPI transfer in progress"
	case StatusUnknownCommand:
		return "unknown command"
	case StatusWriteFailure:
		return "EEPROM write failure"
	case StatusLocked:
		return "NVRAM is locked"
	case StatusAccessRejected:
		return "access rejected"
	case StatusWrongPassword:
		return "wrong password"
	default:
		return "device error"
	}
}
