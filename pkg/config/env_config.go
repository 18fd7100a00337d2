// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
)

// ApplyEnvironmentOverrides layers BARNSTORM_* environment variables over
// the configuration. Unset variables leave the existing value alone; a set
// but unparsable variable is an error rather than a silent default.
func ApplyEnvironmentOverrides(c *Config) error {
	if v := os.Getenv("BARNSTORM_RENDERER"); v != "" {
		c.Display.Renderer = v
	}
	if err := overrideInt("BARNSTORM_WIDTH", &c.Display.Width); err != nil {
		return err
	}
	if err := overrideInt("BARNSTORM_HEIGHT", &c.Display.Height); err != nil {
		return err
	}
	if err := overrideBool("BARNSTORM_FULLSCREEN", &c.Display.Fullscreen); err != nil {
		return err
	}
	if err := overrideFloat("BARNSTORM_TICK_RATE", &c.Sim.TickRate); err != nil {
		return err
	}
	if err := overrideFloat("BARNSTORM_FLOOR_HEIGHT", &c.Flight.FloorHeight); err != nil {
		return err
	}
	if err := overrideFloat("BARNSTORM_INITIAL_ALTITUDE", &c.Flight.InitialAltitude); err != nil {
		return err
	}
	if err := overrideFloat("BARNSTORM_INITIAL_THROTTLE", &c.Flight.InitialThrottle); err != nil {
		return err
	}
	return nil
}

func overrideInt(name string, dst *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = parsed
	return nil
}

func overrideFloat(name string, dst *float64) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = parsed
	return nil
}

func overrideBool(name string, dst *bool) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = parsed
	return nil
}
