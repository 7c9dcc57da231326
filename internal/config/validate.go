package config

import (
	"fmt"
	"path/filepath"
)

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if _, err := parseTimeout(c.Timeout); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}

	if err := validateLog(&c.Log); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	// Relative socket paths would resolve against whatever directory
	// the hotkey daemon happens to run us from
	if c.Socket != "" && !filepath.IsAbs(c.Socket) {
		return fmt.Errorf("socket: must be an absolute path, got %q", c.Socket)
	}

	return nil
}

func validateLog(log *LogConfig) error {
	switch log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown level %q (want debug, info, warn or error)", log.Level)
	}

	return nil
}
