package mcp2210

import (
	"log/slog"
	"time"
)

// Config holds the session configuration.
type Config struct {
	// ChunkDelay is the pause inserted after each SPI data report.
	// The protocol has no flow control; this throttle keeps the host
	// from outrunning the engine's SPI clocking.
	ChunkDelay time.Duration

	// DrainLimit bounds the number of empty poll reports a transfer's
	// drain phase may issue before giving up with ErrTransferStalled.
	DrainLimit int

	// Sleep implements the chunk delay. Injectable so tests can run
	// without wall-clock waits.
	Sleep func(time.Duration)

	// Logger receives debug records of report exchanges (optional).
	Logger *slog.Logger
}

func defaultConfig() Config {
	return Config{
		ChunkDelay: 10 * time.Millisecond,
		DrainLimit: 250,
		Sleep:      time.Sleep,
	}
}

// Option is a functional option for configuring a Device.
type Option func(*Config)

// WithChunkDelay sets the pause between SPI data reports.
// Default is 10ms.
func WithChunkDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.ChunkDelay = d
		}
	}
}

// WithDrainLimit sets the drain-phase poll budget. Default is 250.
func WithDrainLimit(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.DrainLimit = n
		}
	}
}

// WithSleep replaces the sleep function used for the chunk delay.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Config) {
		if sleep != nil {
			c.Sleep = sleep
		}
	}
}

// WithLogger sets a logger for debug records of report exchanges.
//
// Example:
//
//	dev, err := mcp2210.New(tr, mcp2210.WithLogger(slog.Default()))
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
