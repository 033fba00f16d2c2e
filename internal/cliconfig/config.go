// Package cliconfig holds the configuration of the gwf command line tool.
//
// Values are resolved from lowest to highest precedence: defaults, the TOML
// config file, GWF_* environment variables and explicitly set flags.
package cliconfig

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/arloliu/gwf"
	"github.com/arloliu/gwf/compress"
	"github.com/arloliu/gwf/format"
)

// Config holds CLI configuration for gwf.
type Config struct {
	LogLevel string

	Compression      string
	CompressionLevel int
	FrameName        string
	Run              int
	Verify           bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		LogLevel:         "info",
		Compression:      "gzip",
		CompressionLevel: format.DefaultCompressionLevel,
		FrameName:        gwf.DefaultFrameName,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}

	ct, err := c.CompressionType()
	if err != nil {
		return err
	}
	if _, err := compress.CreateCodec(ct, c.CompressionLevel); err != nil {
		return err
	}

	if c.FrameName == "" {
		return fmt.Errorf("frame name must not be empty")
	}

	return nil
}

// Level returns the zerolog level named by LogLevel.
func (c *Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log-level: %w", err)
	}

	return level, nil
}

// CompressionType returns the codec named by Compression.
func (c *Config) CompressionType() (format.CompressionType, error) {
	ct, ok := format.ParseCompression(c.Compression)
	if !ok {
		return 0, fmt.Errorf("unknown compression %q, please select one of none, gzip, zstd, s2 or lz4", c.Compression)
	}

	return ct, nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value from a pointer if not nil and flag not changed.
// Zero and negative values are meaningful for levels and run numbers.
func (s *configSetter) setInt(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i

	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
