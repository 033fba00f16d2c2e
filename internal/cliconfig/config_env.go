package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (GWF_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("log-level", os.Getenv("GWF_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("compression", os.Getenv("GWF_COMPRESSION"), &cfg.Compression)
	s.setString("name", os.Getenv("GWF_FRAME_NAME"), &cfg.FrameName)

	if err := s.setIntFromString("level", os.Getenv("GWF_COMPRESSION_LEVEL"), &cfg.CompressionLevel); err != nil {
		return err
	}
	if err := s.setIntFromString("run", os.Getenv("GWF_RUN"), &cfg.Run); err != nil {
		return err
	}

	s.setBoolFromString("verify", os.Getenv("GWF_VERIFY"), &cfg.Verify)

	return nil
}
