package config

import (
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("output.jpeg_quality must be between 1 and 100, got %d", c.Output.JPEGQuality)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	if c.Engine.TimeoutSeconds <= 0 {
		return fmt.Errorf("engine.timeout_seconds must be positive, got %d", c.Engine.TimeoutSeconds)
	}
	return nil
}
