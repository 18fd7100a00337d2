// pkg/config/env_config_test.go
package config

import "testing"

func TestApplyEnvironmentOverrides_SetVariablesApplied(t *testing.T) {
	t.Setenv("BARNSTORM_RENDERER", "null")
	t.Setenv("BARNSTORM_WIDTH", "800")
	t.Setenv("BARNSTORM_HEIGHT", "600")
	t.Setenv("BARNSTORM_FULLSCREEN", "true")
	t.Setenv("BARNSTORM_TICK_RATE", "30")
	t.Setenv("BARNSTORM_FLOOR_HEIGHT", "2.5")
	t.Setenv("BARNSTORM_INITIAL_ALTITUDE", "150")
	t.Setenv("BARNSTORM_INITIAL_THROTTLE", "0.75")

	cfg := DefaultConfig()
	if err := ApplyEnvironmentOverrides(cfg); err != nil {
		t.Fatalf("ApplyEnvironmentOverrides: %v", err)
	}

	if cfg.Display.Renderer != "null" {
		t.Errorf("renderer = %q, want null", cfg.Display.Renderer)
	}
	if cfg.Display.Width != 800 || cfg.Display.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", cfg.Display.Width, cfg.Display.Height)
	}
	if !cfg.Display.Fullscreen {
		t.Error("fullscreen not applied")
	}
	if cfg.Sim.TickRate != 30 {
		t.Errorf("tickRate = %g, want 30", cfg.Sim.TickRate)
	}
	if cfg.Flight.FloorHeight != 2.5 {
		t.Errorf("floorHeight = %g, want 2.5", cfg.Flight.FloorHeight)
	}
	if cfg.Flight.InitialAltitude != 150 {
		t.Errorf("initialAltitude = %g, want 150", cfg.Flight.InitialAltitude)
	}
	if cfg.Flight.InitialThrottle != 0.75 {
		t.Errorf("initialThrottle = %g, want 0.75", cfg.Flight.InitialThrottle)
	}
}

func TestApplyEnvironmentOverrides_UnsetVariablesLeaveDefaults(t *testing.T) {
	cfg := DefaultConfig()
	before := *cfg

	if err := ApplyEnvironmentOverrides(cfg); err != nil {
		t.Fatalf("ApplyEnvironmentOverrides: %v", err)
	}
	if *cfg != before {
		t.Errorf("config changed with no variables set: %+v", cfg)
	}
}

func TestApplyEnvironmentOverrides_UnparsableValuesError(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric width", "BARNSTORM_WIDTH", "wide"},
		{"non-numeric tick rate", "BARNSTORM_TICK_RATE", "fast"},
		{"non-boolean fullscreen", "BARNSTORM_FULLSCREEN", "maybe"},
		{"non-numeric throttle", "BARNSTORM_INITIAL_THROTTLE", "half"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if err := ApplyEnvironmentOverrides(DefaultConfig()); err == nil {
				t.Errorf("no error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
