package protocol

import (
	"fmt"
	"unicode/utf16"
)

// USB strings are stored as UTF-16 in a 58-byte field behind a 2-byte
// header of [STR_LEN][DESCRIPTOR_ID]. The stored stream is a 2-byte
// little-endian byte-order mark, the UTF-16LE code units, and a NUL
// terminator, and STR_LEN is 2*units + 4, exactly reproducing the
// original host tool. The formula mixes the BOM and terminator into
// the count in a way the datasheet has not confirmed; it is kept
// bit-for-bit rather than corrected.

// putUSBString encodes s into a string-record payload
// ([STR_LEN][0x03][RAW(58)]). Strings whose UTF-16LE payload exceeds
// MaxStringBytes fail with a ValidationError before anything is
// written.
func putUSBString(p []byte, s string) error {
	units := utf16.Encode([]rune(s))
	if 2*len(units) > MaxStringBytes {
		return &ValidationError{
			Reason: fmt.Sprintf("string is %d UTF-16 bytes, limit is %d", 2*len(units), MaxStringBytes),
		}
	}

	p[0] = byte(2*len(units) + 4)
	p[1] = descriptorIDString

	raw := p[2 : 2+stringFieldLen]
	raw[0] = 0xFF // UTF-16LE byte-order mark
	raw[1] = 0xFE
	for i, u := range units {
		raw[2+2*i] = byte(u)
		raw[3+2*i] = byte(u >> 8)
	}
	// NUL terminator, if the field still has room for it.
	if end := 2 + 2*len(units); end+2 <= stringFieldLen {
		raw[end] = 0x00
		raw[end+1] = 0x00
	}
	return nil
}

// parseUSBString decodes a string-record payload produced by
// putUSBString or read back from the chip.
func parseUSBString(p []byte) (string, error) {
	strLen := int(p[0])

	// STR_LEN counts the BOM, the code units and the terminator; the
	// unit stream is the middle strLen-4 bytes.
	take := strLen - 2
	switch {
	case take < 2 || take > stringFieldLen:
		return "", &FramingError{
			Reason: fmt.Sprintf("string length field %d outside its 58-byte field", strLen),
		}
	case (take-2)%2 != 0:
		return "", &FramingError{
			Reason: fmt.Sprintf("string length field %d is not an even number of UTF-16 units", strLen),
		}
	}

	raw := p[2 : 2+stringFieldLen]
	units := make([]uint16, 0, (take-2)/2)
	for i := 2; i < take; i += 2 {
		units = append(units, uint16(raw[i])|uint16(raw[i+1])<<8)
	}
	return string(utf16.Decode(units)), nil
}
