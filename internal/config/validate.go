package config

import "fmt"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	if c.Transfer.FreeSpaceMarginMiB < 0 {
		return fmt.Errorf("transfer.free_space_margin_mib must not be negative, got %d", c.Transfer.FreeSpaceMarginMiB)
	}
	return nil
}
