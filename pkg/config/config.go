// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-barnstorm/pkg/physics"
)

// Config contains configuration for the flight demo
type Config struct {
	Flight  FlightConfig  `json:"flight"`
	Camera  CameraConfig  `json:"camera"`
	Display DisplayConfig `json:"display"`
	Sim     SimConfig     `json:"sim"`
}

// FlightConfig contains the flight model parameters. Angular rates are in
// degrees per second; they are converted to radians when handed to the
// integrator.
type FlightConfig struct {
	PitchRateDeg float64 `json:"pitchRateDeg"`
	RollRateDeg  float64 `json:"rollRateDeg"`
	YawRateDeg   float64 `json:"yawRateDeg"`

	ThrottleRate float64 `json:"throttleRate"`
	MinSpeed     float64 `json:"minSpeed"`
	MaxSpeed     float64 `json:"maxSpeed"`

	Gravity       float64 `json:"gravity"`
	LiftFactor    float64 `json:"liftFactor"`
	VelocityAlign float64 `json:"velocityAlign"`
	FloorHeight   float64 `json:"floorHeight"`

	InitialAltitude float64 `json:"initialAltitude"`
	InitialThrottle float64 `json:"initialThrottle"`
}

// CameraConfig contains chase camera and lens parameters
type CameraConfig struct {
	Offset    [3]float64 `json:"offset"`
	Smoothing float64    `json:"smoothing"`

	FOVDegrees float64 `json:"fovDegrees"`
	Near       float64 `json:"near"`
	Far        float64 `json:"far"`
}

// DisplayConfig contains renderer selection and window settings
type DisplayConfig struct {
	Renderer   string `json:"renderer"` // "engo", "terminal", or "null"
	Title      string `json:"title"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Fullscreen bool   `json:"fullscreen"`
}

// SimConfig contains headless loop settings
type SimConfig struct {
	TickRate     float64 `json:"tickRate"`     // frames per second for the headless loop
	StallWarning float64 `json:"stallWarning"` // seconds of frame time that triggers a stall warning
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the canonical demo configuration
func DefaultConfig() *Config {
	return &Config{
		Flight: FlightConfig{
			PitchRateDeg:    30,
			RollRateDeg:     45,
			YawRateDeg:      15,
			ThrottleRate:    0.3,
			MinSpeed:        20,
			MaxSpeed:        250,
			Gravity:         9.81,
			LiftFactor:      0.4,
			VelocityAlign:   0.1,
			FloorHeight:     5,
			InitialAltitude: 20,
			InitialThrottle: 0.5,
		},
		Camera: CameraConfig{
			Offset:     [3]float64{0, 20, 60},
			Smoothing:  0.1,
			FOVDegrees: 60,
			Near:       1,
			Far:        25000,
		},
		Display: DisplayConfig{
			Renderer: "terminal",
			Title:    "barnstorm",
			Width:    1024,
			Height:   768,
		},
		Sim: SimConfig{
			TickRate:     60,
			StallWarning: 0.1,
		},
	}
}

// Tuning converts the flight section into integrator tuning, degrees to
// radians.
func (f FlightConfig) Tuning() physics.Tuning {
	return physics.Tuning{
		PitchRate:     mgl64.DegToRad(f.PitchRateDeg),
		RollRate:      mgl64.DegToRad(f.RollRateDeg),
		YawRate:       mgl64.DegToRad(f.YawRateDeg),
		ThrottleRate:  f.ThrottleRate,
		MinSpeed:      f.MinSpeed,
		MaxSpeed:      f.MaxSpeed,
		Gravity:       f.Gravity,
		LiftFactor:    f.LiftFactor,
		VelocityAlign: f.VelocityAlign,
		FloorHeight:   f.FloorHeight,
	}
}

// CameraOffset returns the camera offset as a vector.
func (c CameraConfig) CameraOffset() mgl64.Vec3 {
	return mgl64.Vec3{c.Offset[0], c.Offset[1], c.Offset[2]}
}

// Validate checks the configuration for values the simulation cannot run
// with.
func (c *Config) Validate() error {
	f := c.Flight
	if f.PitchRateDeg <= 0 || f.RollRateDeg <= 0 || f.YawRateDeg <= 0 {
		return fmt.Errorf("rotation rates must be positive")
	}
	if f.ThrottleRate <= 0 {
		return fmt.Errorf("throttleRate must be positive, got %g", f.ThrottleRate)
	}
	if f.MinSpeed < 0 || f.MaxSpeed <= f.MinSpeed {
		return fmt.Errorf("speed range invalid: minSpeed=%g maxSpeed=%g", f.MinSpeed, f.MaxSpeed)
	}
	if f.VelocityAlign <= 0 || f.VelocityAlign > 1 {
		return fmt.Errorf("velocityAlign must be in (0,1], got %g", f.VelocityAlign)
	}
	if f.InitialThrottle < 0 || f.InitialThrottle > 1 {
		return fmt.Errorf("initialThrottle must be in [0,1], got %g", f.InitialThrottle)
	}
	if f.InitialAltitude < f.FloorHeight {
		return fmt.Errorf("initialAltitude %g below floor height %g", f.InitialAltitude, f.FloorHeight)
	}

	cam := c.Camera
	if cam.Smoothing <= 0 || cam.Smoothing > 1 {
		return fmt.Errorf("camera smoothing must be in (0,1], got %g", cam.Smoothing)
	}
	if cam.FOVDegrees <= 0 || cam.FOVDegrees >= 180 {
		return fmt.Errorf("fovDegrees must be in (0,180), got %g", cam.FOVDegrees)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return fmt.Errorf("lens planes invalid: near=%g far=%g", cam.Near, cam.Far)
	}

	switch c.Display.Renderer {
	case "engo", "terminal", "null":
	default:
		return fmt.Errorf("unknown renderer %q", c.Display.Renderer)
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display size invalid: %dx%d", c.Display.Width, c.Display.Height)
	}

	if c.Sim.TickRate <= 0 {
		return fmt.Errorf("tickRate must be positive, got %g", c.Sim.TickRate)
	}
	return nil
}
