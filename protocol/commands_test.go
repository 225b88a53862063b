package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestFrameHeaders(t *testing.T) {
	tests := []struct {
		name  string
		frame []byte
		cmd   byte
		sub   byte
	}{
		{"cancel transfer", BuildCancelTransferCmd(), CmdCancelTransfer, 0x00},
		{"get chip settings", BuildGetChipSettingsCmd(), CmdGetChipSettings, 0x00},
		{"set chip settings", BuildSetChipSettingsCmd(ChipSettings{}), CmdSetChipSettings, 0x00},
		{"get spi settings", BuildGetSPISettingsCmd(), CmdGetSPISettings, 0x00},
		{"set spi settings", BuildSetSPISettingsCmd(SPISettings{}), CmdSetSPISettings, 0x00},
		{"get gpio value", BuildGetGPIOValueCmd(), CmdGetGPIOValue, 0x00},
		{"get gpio direction", BuildGetGPIODirectionCmd(), CmdGetGPIODirection, 0x00},
		{"get nvram spi", BuildGetNVRAMCmd(NVRAMSPISettings), CmdGetNVRAM, NVRAMSPISettings},
		{"get nvram product name", BuildGetNVRAMCmd(NVRAMProductName), CmdGetNVRAM, NVRAMProductName},
		{"set nvram chip settings", BuildSetNVRAMChipSettingsCmd(ChipSettings{}), CmdSetNVRAM, NVRAMChipSettings},
		{"set nvram spi settings", BuildSetNVRAMSPISettingsCmd(SPISettings{}), CmdSetNVRAM, NVRAMSPISettings},
		{"set nvram usb settings", BuildSetNVRAMUSBSettingsCmd(USBSettings{}), CmdSetNVRAM, NVRAMUSBSettings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.frame) != ReportLen {
				t.Fatalf("frame is %d bytes, want %d", len(tt.frame), ReportLen)
			}
			if tt.frame[0] != tt.cmd || tt.frame[1] != tt.sub {
				t.Errorf("header = [0x%02X 0x%02X], want [0x%02X 0x%02X]",
					tt.frame[0], tt.frame[1], tt.cmd, tt.sub)
			}
			if tt.frame[2] != 0 || tt.frame[3] != 0 {
				t.Errorf("reserved bytes = [0x%02X 0x%02X], want zero", tt.frame[2], tt.frame[3])
			}
		})
	}
}

func TestChipSettingsLayout(t *testing.T) {
	s := ChipSettings{
		PinDesignations: [9]byte{1, 2, 0, 1, 2, 0, 1, 2, 0},
		GPIOOutputs:     0x1234,
		GPIODirections:  0xABCD,
		OtherSettings:   0x10,
		AccessControl:   0x40,
		Password:        [8]byte{'s', 'e', 'c', 'r', 'e', 't', 0, 0},
	}
	f := BuildSetChipSettingsCmd(s)

	if !bytes.Equal(f[4:13], s.PinDesignations[:]) {
		t.Errorf("pin designations = % X", f[4:13])
	}
	if f[13] != 0x34 || f[14] != 0x12 {
		t.Errorf("outputs = [0x%02X 0x%02X], want [0x34 0x12]", f[13], f[14])
	}
	if f[15] != 0xCD || f[16] != 0xAB {
		t.Errorf("directions = [0x%02X 0x%02X], want [0xCD 0xAB]", f[15], f[16])
	}
	if f[17] != 0x10 || f[18] != 0x40 {
		t.Errorf("other/access = [0x%02X 0x%02X], want [0x10 0x40]", f[17], f[18])
	}
	if !bytes.Equal(f[19:27], s.Password[:]) {
		t.Errorf("password field = % X", f[19:27])
	}
	for i := 27; i < ReportLen; i++ {
		if f[i] != 0 {
			t.Fatalf("byte %d = 0x%02X, want zero padding", i, f[i])
		}
	}
}

func TestSPISettingsLayout(t *testing.T) {
	s := SPISettings{
		BitRate:        12_000_000, // 0x00B71B00
		IdleCS:         0x0101,
		ActiveCS:       0x0202,
		CSDataDelay:    0x0303,
		LBCSDelay:      0x0404,
		InterByteDelay: 0x0505,
		SPITxSize:      0x0682,
		SPIMode:        3,
	}
	f := BuildSetSPISettingsCmd(s)

	want := []byte{
		0x00, 0x1B, 0xB7, 0x00, // bit rate LE
		0x01, 0x01, 0x02, 0x02,
		0x03, 0x03, 0x04, 0x04,
		0x05, 0x05,
		0x82, 0x06, // spiTxSize LE
		0x03,
	}
	if !bytes.Equal(f[4:4+len(want)], want) {
		t.Errorf("payload = % X\n       want % X", f[4:4+len(want)], want)
	}
}

func TestUSBSettingsSetLayout(t *testing.T) {
	f := BuildSetNVRAMUSBSettingsCmd(USBSettings{
		VID: 0x04D8, PID: 0x00DE, PowerOption: 0x80, CurrentRequest: 50,
	})
	want := []byte{0xD8, 0x04, 0xDE, 0x00, 0x80, 50}
	if !bytes.Equal(f[4:10], want) {
		t.Errorf("payload = % X, want % X", f[4:10], want)
	}
}

func TestGPIOWriteIsLittleEndian(t *testing.T) {
	f := BuildSetGPIOValueCmd(0xBEEF)
	if f[4] != 0xEF || f[5] != 0xBE {
		t.Errorf("value bytes = [0x%02X 0x%02X], want [0xEF 0xBE]", f[4], f[5])
	}
	f = BuildSetGPIODirectionCmd(0xBEEF)
	if f[0] != CmdSetGPIODirection {
		t.Errorf("command = 0x%02X, want 0x%02X", f[0], CmdSetGPIODirection)
	}
	if f[4] != 0xEF || f[5] != 0xBE {
		t.Errorf("direction bytes = [0x%02X 0x%02X], want [0xEF 0xBE]", f[4], f[5])
	}
}

func TestSPITransferCmd(t *testing.T) {
	chunk := make([]byte, MaxTransferChunk)
	for i := range chunk {
		chunk[i] = byte(i + 1)
	}
	f, err := BuildSPITransferCmd(chunk)
	if err != nil {
		t.Fatalf("full chunk: %v", err)
	}
	if f[1] != MaxTransferChunk {
		t.Errorf("length byte = %d, want %d", f[1], MaxTransferChunk)
	}
	if !bytes.Equal(f[4:64], chunk) {
		t.Error("chunk bytes not at offset 4")
	}

	f, err = BuildSPITransferCmd(nil)
	if err != nil {
		t.Fatalf("empty poll: %v", err)
	}
	if f[1] != 0 {
		t.Errorf("poll length byte = %d, want 0", f[1])
	}

	var validationErr *ValidationError
	if _, err := BuildSPITransferCmd(make([]byte, MaxTransferChunk+1)); !errors.As(err, &validationErr) {
		t.Errorf("oversized chunk: got %v, want ValidationError", err)
	}
}

func TestEEPROMShortHeader(t *testing.T) {
	f, err := BuildReadEEPROMCmd(200)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if f[0] != CmdReadEEPROM || f[1] != 200 || f[2] != 0 {
		t.Errorf("read header = [0x%02X 0x%02X 0x%02X], want [0x50 0xC8 0x00]", f[0], f[1], f[2])
	}

	f, err = BuildWriteEEPROMCmd(200, 0x7E)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if f[0] != CmdWriteEEPROM || f[1] != 200 || f[2] != 0x7E {
		t.Errorf("write header = [0x%02X 0x%02X 0x%02X], want [0x51 0xC8 0x7E]", f[0], f[1], f[2])
	}

	var validationErr *ValidationError
	if _, err := BuildReadEEPROMCmd(255); !errors.As(err, &validationErr) {
		t.Errorf("read address 255: got %v, want ValidationError", err)
	}
	if _, err := BuildWriteEEPROMCmd(255, 0); !errors.As(err, &validationErr) {
		t.Errorf("write address 255: got %v, want ValidationError", err)
	}
}

func TestSendPasswordCmd(t *testing.T) {
	f, err := BuildSendPasswordCmd("pass")
	if err != nil {
		t.Fatalf("BuildSendPasswordCmd: %v", err)
	}
	want := []byte{'p', 'a', 's', 's', 0, 0, 0, 0}
	if !bytes.Equal(f[4:12], want) {
		t.Errorf("password field = % X, want % X", f[4:12], want)
	}

	if _, err := BuildSendPasswordCmd("12345678"); err != nil {
		t.Errorf("eight-byte password rejected: %v", err)
	}
	var validationErr *ValidationError
	if _, err := BuildSendPasswordCmd("123456789"); !errors.As(err, &validationErr) {
		t.Errorf("nine-byte password: got %v, want ValidationError", err)
	}
}
