// Package mcp2210 drives a Microchip MCP2210 USB-to-SPI bridge over
// its 64-byte HID report protocol.
//
// # Overview
//
// A Device owns one opened transport and exposes the chip's modules:
//   - SPI transfers with automatic chunking across data reports
//   - the two 16-bit GPIO registers as bit-indexed views
//   - the 255-byte user EEPROM
//   - current and power-up settings, cached per session
//
// # Basic usage
//
//	tr, err := hid.OpenVIDPID(mcp2210.VID, mcp2210.PID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dev, err := mcp2210.New(tr)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Close()
//
//	out, err := dev.Transfer([]byte{0x9F, 0x00, 0x00, 0x00})
//
// # Concurrency
//
// The protocol is strictly synchronous request/reply with no sequence
// numbers, so a Device serializes its report exchanges internally.
// Compound operations (an SPI transfer, a bit write) are made of
// several exchanges and are not atomic against other goroutines using
// the same Device; callers wanting compound atomicity must serialize
// at their level.
//
// # Error handling
//
// Failures are typed: protocol.StatusError for a nonzero device status
// byte, protocol.FramingError for malformed exchanges,
// protocol.ValidationError for local precondition failures raised
// before any report is sent, and ErrTransferStalled when a transfer's
// drain phase exhausts its poll budget. Transport errors are wrapped
// with %w and never translated. Nothing is retried internally.
package mcp2210
