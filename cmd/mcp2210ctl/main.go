// Command mcp2210ctl pokes an attached MCP2210 USB-to-SPI bridge from
// the shell: device status, GPIO pins, the user EEPROM, USB descriptor
// strings and raw SPI transfers.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/hwlabs/go-mcp2210/internal/rawusb"
	"github.com/hwlabs/go-mcp2210/mcp2210"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGINT,
	)
	defer stop()

	cmd := &cli.Command{
		Name:  "mcp2210ctl",
		Usage: "control an MCP2210 USB-to-SPI bridge",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "vid",
				Value: "0x04D8",
				Usage: "USB vendor ID (hex)",
			},
			&cli.StringFlag{
				Name:  "pid",
				Value: "0x00DE",
				Usage: "USB product ID (hex)",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "use the libusb transport instead of hidraw",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log every report exchange",
			},
		},
		Commands: []*cli.Command{
			statusCommand(),
			gpioCommand(),
			eepromCommand(),
			spiCommand(),
			nameCommand(),
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "mcp2210ctl: %v\n", err)
		os.Exit(1)
	}
}

// openDevice builds a session from the root flags.
func openDevice(cmd *cli.Command) (*mcp2210.Device, error) {
	vid, err := parseID(cmd.String("vid"))
	if err != nil {
		return nil, fmt.Errorf("bad --vid: %w", err)
	}
	pid, err := parseID(cmd.String("pid"))
	if err != nil {
		return nil, fmt.Errorf("bad --pid: %w", err)
	}

	var opts []mcp2210.Option
	if cmd.Bool("verbose") {
		opts = append(opts, mcp2210.WithLogger(
			slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}

	if cmd.Bool("raw") {
		tr, err := rawusb.Open(vid, pid)
		if err != nil {
			return nil, err
		}
		return mcp2210.New(tr, opts...)
	}
	return mcp2210.Open(vid, pid, opts...)
}

func parseID(s string) (uint16, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "print the device status",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dev, err := openDevice(cmd)
			if err != nil {
				return err
			}
			defer dev.Close()

			status, err := dev.CancelTransfer()
			if err != nil {
				return err
			}
			fmt.Printf("bus owner:          %s\n", busOwnerName(status.BusOwner))
			fmt.Printf("bus release:        %d\n", status.BusReleaseStatus)
			fmt.Printf("password attempts:  %d\n", status.PasswordAttempts)
			fmt.Printf("password accepted:  %t\n", status.PasswordGuessed != 0)
			return nil
		},
	}
}

func busOwnerName(owner byte) string {
	switch owner {
	case 0:
		return "none"
	case 1:
		return "usb bridge"
	case 2:
		return "external master"
	default:
		return fmt.Sprintf("unknown (%d)", owner)
	}
}

func gpioCommand() *cli.Command {
	return &cli.Command{
		Name:  "gpio",
		Usage: "read and drive the GPIO pins",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "read a pin level, or the whole register with no argument",
				ArgsUsage: "[pin]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					dev, err := openDevice(cmd)
					if err != nil {
						return err
					}
					defer dev.Close()

					if cmd.Args().Len() == 0 {
						raw, err := dev.GPIO().Raw()
						if err != nil {
							return err
						}
						fmt.Printf("0x%04X\n", raw)
						return nil
					}
					pin, err := strconv.Atoi(cmd.Args().Get(0))
					if err != nil {
						return fmt.Errorf("bad pin %q: %w", cmd.Args().Get(0), err)
					}
					level, err := dev.GPIO().Pin(pin)
					if err != nil {
						return err
					}
					fmt.Println(boolToBit(level))
					return nil
				},
			},
			{
				Name:      "set",
				Usage:     "drive a pin high or low",
				ArgsUsage: "<pin> <0|1>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 2 {
						return fmt.Errorf("usage: gpio set <pin> <0|1>")
					}
					pin, err := strconv.Atoi(cmd.Args().Get(0))
					if err != nil {
						return fmt.Errorf("bad pin %q: %w", cmd.Args().Get(0), err)
					}
					level, err := parseBit(cmd.Args().Get(1))
					if err != nil {
						return err
					}

					dev, err := openDevice(cmd)
					if err != nil {
						return err
					}
					defer dev.Close()
					return dev.GPIO().SetPin(pin, level)
				},
			},
			{
				Name:      "dir",
				Usage:     "set a pin direction",
				ArgsUsage: "<pin> <in|out>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 2 {
						return fmt.Errorf("usage: gpio dir <pin> <in|out>")
					}
					pin, err := strconv.Atoi(cmd.Args().Get(0))
					if err != nil {
						return fmt.Errorf("bad pin %q: %w", cmd.Args().Get(0), err)
					}
					var input bool
					switch cmd.Args().Get(1) {
					case "in":
						input = true
					case "out":
						input = false
					default:
						return fmt.Errorf("direction must be in or out, got %q", cmd.Args().Get(1))
					}

					dev, err := openDevice(cmd)
					if err != nil {
						return err
					}
					defer dev.Close()
					return dev.GPIODirection().SetPin(pin, input)
				},
			},
		},
	}
}

func parseBit(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, fmt.Errorf("level must be 0 or 1, got %q", s)
}

func boolToBit(b bool) int {
	if b {
		return 1
	}
	return 0
}

func eepromCommand() *cli.Command {
	return &cli.Command{
		Name:  "eeprom",
		Usage: "access the 255-byte user EEPROM",
		Commands: []*cli.Command{
			{
				Name:      "read",
				Usage:     "dump a cell range as hex",
				ArgsUsage: "<start> [end]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("usage: eeprom read <start> [end]")
					}
					start, err := strconv.Atoi(cmd.Args().Get(0))
					if err != nil {
						return fmt.Errorf("bad address %q: %w", cmd.Args().Get(0), err)
					}
					end := start + 1
					if cmd.Args().Len() > 1 {
						if end, err = strconv.Atoi(cmd.Args().Get(1)); err != nil {
							return fmt.Errorf("bad address %q: %w", cmd.Args().Get(1), err)
						}
					}

					dev, err := openDevice(cmd)
					if err != nil {
						return err
					}
					defer dev.Close()

					data, err := dev.EEPROM().ReadRange(start, end)
					if err != nil {
						return err
					}
					fmt.Println(hex.EncodeToString(data))
					return nil
				},
			},
			{
				Name:      "write",
				Usage:     "write hex bytes starting at an address",
				ArgsUsage: "<start> <hexbytes>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 2 {
						return fmt.Errorf("usage: eeprom write <start> <hexbytes>")
					}
					start, err := strconv.Atoi(cmd.Args().Get(0))
					if err != nil {
						return fmt.Errorf("bad address %q: %w", cmd.Args().Get(0), err)
					}
					data, err := hex.DecodeString(cmd.Args().Get(1))
					if err != nil {
						return fmt.Errorf("bad hex payload: %w", err)
					}

					dev, err := openDevice(cmd)
					if err != nil {
						return err
					}
					defer dev.Close()
					return dev.EEPROM().WriteRange(start, start+len(data), data)
				},
			},
		},
	}
}

func spiCommand() *cli.Command {
	return &cli.Command{
		Name:      "spi",
		Usage:     "clock hex bytes over the SPI bus and print the reply",
		ArgsUsage: "<hexbytes>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "speed",
				Usage: "bit rate in Hz (0 keeps the current setting)",
				Value: "0",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "SPI mode 0..3 (empty keeps the current setting)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("usage: spi <hexbytes>")
			}
			data, err := hex.DecodeString(cmd.Args().Get(0))
			if err != nil {
				return fmt.Errorf("bad hex payload: %w", err)
			}

			dev, err := openDevice(cmd)
			if err != nil {
				return err
			}
			defer dev.Close()

			if cmd.String("speed") != "0" || cmd.String("mode") != "" {
				settings, err := dev.SPISettings()
				if err != nil {
					return err
				}
				if s := cmd.String("speed"); s != "0" {
					speed, err := strconv.ParseUint(s, 10, 32)
					if err != nil {
						return fmt.Errorf("bad --speed: %w", err)
					}
					settings.BitRate = uint32(speed)
				}
				if m := cmd.String("mode"); m != "" {
					mode, err := strconv.ParseUint(m, 10, 8)
					if err != nil || mode > 3 {
						return fmt.Errorf("bad --mode %q", m)
					}
					settings.SPIMode = byte(mode)
				}
				if err := dev.SetSPISettings(settings); err != nil {
					return err
				}
			}

			reply, err := dev.Transfer(data)
			if err != nil {
				return err
			}
			fmt.Println(hex.EncodeToString(reply))
			return nil
		},
	}
}

func nameCommand() *cli.Command {
	return &cli.Command{
		Name:  "name",
		Usage: "read or set the USB descriptor strings",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "print the manufacturer and product strings",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					dev, err := openDevice(cmd)
					if err != nil {
						return err
					}
					defer dev.Close()

					manufacturer, err := dev.ManufacturerName()
					if err != nil {
						return err
					}
					product, err := dev.ProductName()
					if err != nil {
						return err
					}
					fmt.Printf("manufacturer: %s\n", manufacturer)
					fmt.Printf("product:      %s\n", product)
					return nil
				},
			},
			{
				Name:      "set",
				Usage:     "store a new descriptor string",
				ArgsUsage: "<manufacturer|product> <string>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 2 {
						return fmt.Errorf("usage: name set <manufacturer|product> <string>")
					}

					dev, err := openDevice(cmd)
					if err != nil {
						return err
					}
					defer dev.Close()

					switch cmd.Args().Get(0) {
					case "manufacturer":
						return dev.SetManufacturerName(cmd.Args().Get(1))
					case "product":
						return dev.SetProductName(cmd.Args().Get(1))
					}
					return fmt.Errorf("unknown field %q", cmd.Args().Get(0))
				},
			},
		},
	}
}
