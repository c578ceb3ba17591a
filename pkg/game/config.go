package game

import (
	"time"

	"github.com/matzehuels/blockfall/pkg/errors"
)

// Default configuration values, matching the classic 10x20 field.
const (
	DefaultWidth     = 10
	DefaultHeight    = 20
	DefaultBlockSize = 30
	DefaultSpeed     = time.Second
)

// Config fixes the dimensions of a session.
//
// BlockSize and Speed are carried for the benefit of the rendering and
// scheduling collaborators; the engine stores them but never reads them.
type Config struct {
	Width     int           `json:"width" toml:"width"`
	Height    int           `json:"height" toml:"height"`
	BlockSize int           `json:"block_size" toml:"block_size"`
	Speed     time.Duration `json:"speed" toml:"speed"`
}

// DefaultConfig returns the standard 10x20 configuration.
func DefaultConfig() Config {
	return Config{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		BlockSize: DefaultBlockSize,
		Speed:     DefaultSpeed,
	}
}

// Validate reports whether the configuration can back a session.
func (c Config) Validate() error {
	if err := errors.ValidateDimensions(c.Width, c.Height); err != nil {
		return err
	}
	if c.BlockSize < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "block size must not be negative, got %d", c.BlockSize)
	}
	if c.Speed < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "speed must not be negative, got %s", c.Speed)
	}
	return nil
}

// SpawnX returns the column every new piece is anchored at.
func (c Config) SpawnX() int {
	return c.Width/2 - 2
}
