package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with optional fields, so that zero values in the
// file can be told apart from missing ones.
type FileConfig struct {
	LogLevel         string `toml:"log_level"`
	Compression      string `toml:"compression"`
	CompressionLevel *int   `toml:"compression_level"`
	FrameName        string `toml:"frame_name"`
	Run              *int   `toml:"run"`
	Verify           *bool  `toml:"verify"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}

	return fc, nil
}

// DefaultConfigPath returns ~/.gwf/config.toml, or "" when the home directory
// is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".gwf", "config.toml")
	}

	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("compression", fc.Compression, &cfg.Compression)
	s.setInt("level", fc.CompressionLevel, &cfg.CompressionLevel)
	s.setString("name", fc.FrameName, &cfg.FrameName)
	s.setInt("run", fc.Run, &cfg.Run)
	s.setBool("verify", fc.Verify, &cfg.Verify)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
