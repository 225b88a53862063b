package protocol

import (
	"errors"
	"strings"
	"testing"
)

func TestUSBStringRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"x",
		"MCP2210 USB-to-SPI Master",
		"Nordic Semiconductør", // non-ASCII
		"µC bridge",
		strings.Repeat("a", 28), // exactly fills the 56-byte payload
	}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			f, err := BuildSetUSBStringCmd(NVRAMProductName, s)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			resp := asResponse(CmdGetNVRAM, f)
			got, err := ParseUSBString(resp)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != s {
				t.Errorf("round trip = %q, want %q", got, s)
			}
		})
	}
}

func TestUSBStringEncoding(t *testing.T) {
	f, err := BuildSetUSBStringCmd(NVRAMManufacturerName, "12345678901234567890")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// 20 characters: STR_LEN = 2*20 + 4 = 44, string descriptor tag.
	if f[4] != 44 {
		t.Errorf("STR_LEN = %d, want 44", f[4])
	}
	if f[5] != 0x03 {
		t.Errorf("descriptor ID = 0x%02X, want 0x03", f[5])
	}

	// Little-endian byte-order mark, then the code units.
	if f[6] != 0xFF || f[7] != 0xFE {
		t.Errorf("BOM = [0x%02X 0x%02X], want [0xFF 0xFE]", f[6], f[7])
	}
	if f[8] != '1' || f[9] != 0x00 || f[10] != '2' || f[11] != 0x00 {
		t.Errorf("first units = % X, want 31 00 32 00", f[8:12])
	}

	// NUL terminator after the last unit.
	end := 8 + 2*20
	if f[end] != 0x00 || f[end+1] != 0x00 {
		t.Errorf("terminator = [0x%02X 0x%02X], want zero", f[end], f[end+1])
	}
}

func TestUSBStringTooLong(t *testing.T) {
	var validationErr *ValidationError
	_, err := BuildSetUSBStringCmd(NVRAMProductName, strings.Repeat("a", 29))
	if !errors.As(err, &validationErr) {
		t.Errorf("29 chars (58 bytes): got %v, want ValidationError", err)
	}
}

func TestParseUSBStringRejectsCorruptLength(t *testing.T) {
	build := func(strLen byte) []byte {
		resp := make([]byte, ReportLen)
		resp[0] = CmdGetNVRAM
		resp[4] = strLen
		resp[5] = 0x03
		resp[6] = 0xFF
		resp[7] = 0xFE
		return resp
	}

	var framingErr *FramingError
	for _, strLen := range []byte{0, 3, 61} {
		if _, err := ParseUSBString(build(strLen)); !errors.As(err, &framingErr) {
			t.Errorf("STR_LEN %d: got %v, want FramingError", strLen, err)
		}
	}
	// Odd lengths cannot hold whole UTF-16 units.
	if _, err := ParseUSBString(build(7)); !errors.As(err, &framingErr) {
		t.Errorf("odd STR_LEN: got %v, want FramingError", err)
	}
}
