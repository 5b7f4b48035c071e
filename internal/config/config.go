/*
Package config loads the settings of the re-chunking pipeline from toml.

An example configuration looks like this:

	# "bytes" frames count bytes, "text" frames count runes.
	mode = "text"
	frame_size = 80

	# Bytes requested from the source per read.
	read_size = 16384

	# Written after every frame by chunkq.
	separator = "\n"

	# Emit the final frame even when it is shorter than frame_size.
	partial = true

	log_level = "debug"

	# Optional, errors are reported to sentry when set.
	sentry_dsn = "https://key@sentry.example.com/1"

Anything left out keeps the value from Default.
*/
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/timzifer/chunkqueue"
)

// Mode selects the unit frames are counted in.
type Mode string

const (
	// ModeBytes frames count bytes.
	ModeBytes Mode = "bytes"
	// ModeText frames count runes.
	ModeText Mode = "text"
)

const (
	// DefaultFrameSize is the number of units per frame.
	DefaultFrameSize = 4096
	// DefaultReadSize is the number of bytes requested per read, the same
	// as ByteBuffer.ReadFrom uses.
	DefaultReadSize = chunkqueue.DefaultReadSize
)

// Config holds the pipeline settings.
type Config struct {
	Mode      Mode   `toml:"mode"`
	FrameSize int    `toml:"frame_size"`
	ReadSize  int    `toml:"read_size"`
	Separator string `toml:"separator"`
	Partial   bool   `toml:"partial"`
	LogLevel  string `toml:"log_level"`
	SentryDSN string `toml:"sentry_dsn"`
}

// Error describes a single invalid field.
type Error struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: field %s (value: %v): %s", e.Field, e.Value, e.Reason)
}

// Default returns the built in settings.
func Default() Config {
	return Config{
		Mode:      ModeBytes,
		FrameSize: DefaultFrameSize,
		ReadSize:  DefaultReadSize,
		Separator: "\n",
		Partial:   true,
		LogLevel:  "info",
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "config: decode %s", path)
	}

	return cfg, cfg.check(md)
}

// Parse decodes toml text over the defaults and validates the result.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return cfg, errors.Wrap(err, "config: decode")
	}

	return cfg, cfg.check(md)
}

func (c Config) check(md toml.MetaData) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return &Error{Field: undecoded[0].String(), Reason: "unknown key"}
	}
	return c.Validate()
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeBytes, ModeText:
	default:
		return &Error{Field: "mode", Value: c.Mode, Reason: `must be "bytes" or "text"`}
	}
	if c.FrameSize < 1 {
		return &Error{Field: "frame_size", Value: c.FrameSize, Reason: "must be positive"}
	}
	if c.ReadSize < 1 {
		return &Error{Field: "read_size", Value: c.ReadSize, Reason: "must be positive"}
	}
	if _, err := c.Level(); err != nil {
		return &Error{Field: "log_level", Value: c.LogLevel, Reason: err.Error()}
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}
