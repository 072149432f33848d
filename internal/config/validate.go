package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateAtlas(); err != nil {
		return err
	}
	if c.Staging.StaleAfterHours <= 0 {
		return errors.New("staging.stale_after_hours must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format must be one of auto, console, json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateAtlas() error {
	anchors := map[string][2]int{
		"atlas.hold_fallback":    c.Atlas.HoldFallback,
		"atlas.hold_mh_fallback": c.Atlas.HoldMHFallback,
	}
	for key, value := range anchors {
		if value[0] < 0 || value[1] < 0 {
			return fmt.Errorf("%s must contain non-negative coordinates", key)
		}
	}
	return nil
}
