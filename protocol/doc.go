// Package protocol implements the MCP2210 HID command protocol: the
// 64-byte report layouts for every command and response the chip
// understands, per the Microchip MCP2210 datasheet (DS22288).
//
// The package is pure codec. Build*Cmd functions produce complete
// 64-byte output reports, Parse* functions decode 64-byte input
// reports, and neither performs any I/O. Field offsets and widths are
// part of the hardware contract and are asserted by the package tests.
package protocol
