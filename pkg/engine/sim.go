// pkg/engine/sim.go
package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-barnstorm/pkg/camera"
	"github.com/opd-ai/go-barnstorm/pkg/config"
	"github.com/opd-ai/go-barnstorm/pkg/event"
	"github.com/opd-ai/go-barnstorm/pkg/input"
	"github.com/opd-ai/go-barnstorm/pkg/logging"
	"github.com/opd-ai/go-barnstorm/pkg/perf"
	"github.com/opd-ai/go-barnstorm/pkg/physics"
	"github.com/opd-ai/go-barnstorm/pkg/render"
	"github.com/opd-ai/go-barnstorm/pkg/scene"
)

// Simulation is the explicit context for one demo run: aircraft state,
// throttle, controls, chase camera, and the scene they drive. It is owned
// and mutated by exactly one goroutine; Update advances everything by one
// frame in a fixed order.
type Simulation struct {
	cfg    *config.Config
	tuning physics.Tuning

	aircraft physics.FlightState
	tracker  *input.Tracker
	follower *camera.Follower
	world    *scene.World

	bus     *event.Bus
	logger  *logging.Logger
	monitor *perf.FrameMonitor

	frame     uint64
	grounded  bool
	saturated bool
}

// Snapshot is a read-only view of the simulation for HUDs and tests.
type Snapshot struct {
	Frame       uint64
	Position    mgl64.Vec3
	Velocity    mgl64.Vec3
	Orientation mgl64.Quat
	Throttle    float64
	Speed       float64
	HeadingDeg  float64
	Camera      camera.State
	Grounded    bool
}

// NewSimulation builds a simulation from the given configuration. The
// aircraft starts level over the runway threshold at the configured
// altitude and throttle.
func NewSimulation(cfg *config.Config, logger *logging.Logger) *Simulation {
	if logger == nil {
		logger = logging.NewLogger()
	}
	bus := event.NewEventBus()
	monitor := perf.NewFrameMonitor(cfg.Sim.StallWarning, logger)
	monitor.Attach(bus)

	s := &Simulation{
		cfg:      cfg,
		tuning:   cfg.Flight.Tuning(),
		aircraft: physics.NewFlightState(mgl64.Vec3{0, cfg.Flight.InitialAltitude, 0}, cfg.Flight.InitialThrottle),
		tracker:  input.NewTracker(),
		follower: camera.NewFollower(cfg.Camera.CameraOffset(), cfg.Camera.Smoothing),
		world:    scene.BuildWorld(scene.DefaultWorldOptions()),
		bus:      bus,
		logger:   logger,
		monitor:  monitor,
	}
	s.syncScene()
	s.follower.Snap(s.aircraft.Position, s.aircraft.Orientation)
	return s
}

// Tracker returns the control input tracker. Input sources feed key events
// into it; the integrator reads its flags once per frame.
func (s *Simulation) Tracker() *input.Tracker {
	return s.tracker
}

// Bus returns the simulation's event bus.
func (s *Simulation) Bus() *event.Bus {
	return s.bus
}

// World returns the scene the simulation drives.
func (s *Simulation) World() *scene.World {
	return s.world
}

// Monitor returns the frame-time monitor.
func (s *Simulation) Monitor() *perf.FrameMonitor {
	return s.monitor
}

// Lens returns the configured projection for the given aspect ratio.
func (s *Simulation) Lens(aspect float64) camera.Lens {
	return camera.Lens{
		FOVDegrees: s.cfg.Camera.FOVDegrees,
		Aspect:     aspect,
		Near:       s.cfg.Camera.Near,
		Far:        s.cfg.Camera.Far,
	}
}

// Update advances the simulation by dt seconds: integrate the aircraft,
// pose its scene node, then derive the chase camera. Events for ground
// contact and throttle saturation fire on the transition frame only.
func (s *Simulation) Update(dt float64) error {
	sinkRate := -s.aircraft.Velocity.Y()

	grounded, err := physics.UpdateFlight(&s.aircraft, s.tracker.Controls(), s.tuning, dt)
	if err != nil {
		return logging.WrapError(err, "frame %d", s.frame)
	}

	if grounded && !s.grounded {
		if sinkRate < 0 {
			sinkRate = 0
		}
		s.bus.Publish(event.NewGroundContactEvent(s, s.aircraft.Position, sinkRate))
	}
	s.grounded = grounded

	atLimit := s.aircraft.Throttle == 0 || s.aircraft.Throttle == 1
	if atLimit && !s.saturated {
		s.bus.Publish(event.NewThrottleEvent(s, s.aircraft.Throttle))
	}
	s.saturated = atLimit

	s.syncScene()
	s.follower.Update(s.aircraft.Position, s.aircraft.Orientation)

	s.frame++
	s.bus.Publish(event.NewFrameEvent(s, s.frame, dt))
	return nil
}

// syncScene copies the aircraft pose onto its scene node.
func (s *Simulation) syncScene() {
	s.world.Aircraft.SetPose(s.aircraft.Position, s.aircraft.Orientation)
}

// Snapshot returns the current state for display and assertions.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Frame:       s.frame,
		Position:    s.aircraft.Position,
		Velocity:    s.aircraft.Velocity,
		Orientation: s.aircraft.Orientation,
		Throttle:    s.aircraft.Throttle,
		Speed:       s.aircraft.Speed(s.tuning),
		HeadingDeg:  headingDeg(s.aircraft.Forward()),
		Camera:      s.follower.State(),
		Grounded:    s.grounded,
	}
}

// StatusLine formats the HUD instrument readout.
func (s *Simulation) StatusLine() string {
	snap := s.Snapshot()
	ground := ""
	if snap.Grounded {
		ground = "  GND"
	}
	return fmt.Sprintf("THR %3.0f%%  SPD %5.1f m/s  ALT %7.1f m  HDG %03.0f%s",
		snap.Throttle*100, snap.Speed, snap.Position.Y(), snap.HeadingDeg, ground)
}

// Run drives the simulation headlessly at the configured tick rate until
// the context is cancelled or quit closes. Key events from the input
// source are drained at the top of each frame; sources that cannot report
// key releases rely on the sustainer to synthesize them.
func (s *Simulation) Run(ctx context.Context, r render.Renderer, events <-chan input.KeyEvent, quit <-chan struct{}) error {
	interval := time.Duration(float64(time.Second) / s.cfg.Sim.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sustain := input.NewSustainer(render.TerminalHoldWindow)
	status, _ := r.(render.StatusSink)

	s.bus.Publish(&event.BaseEvent{EventType: event.SimStarted, Source: s})
	defer s.bus.Publish(&event.BaseEvent{EventType: event.SimStopped, Source: s})

	s.logger.Info(ctx, "simulation started",
		"tick_rate", s.cfg.Sim.TickRate,
		"renderer", s.cfg.Display.Renderer,
	)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-quit:
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt <= 0 {
				dt = interval.Seconds()
			}
			last = now

			s.drainInput(events, sustain, now)
			if err := s.Update(dt); err != nil {
				return err
			}

			r.Clear()
			width, height := s.cfg.Display.Width, s.cfg.Display.Height
			r.RenderScene(s.world.Root, s.follower.State(), s.Lens(float64(width)/float64(height)))
			if status != nil {
				status.SetStatus(s.StatusLine())
			}
			r.Present()
		}
	}
}

// drainInput applies pending key events and synthesized releases.
func (s *Simulation) drainInput(events <-chan input.KeyEvent, sustain *input.Sustainer, now time.Time) {
	if events != nil {
		for {
			select {
			case ev := <-events:
				if ev.Pressed {
					s.tracker.HandleEvent(sustain.Press(ev.Code, now))
				} else {
					s.tracker.HandleEvent(ev)
				}
				continue
			default:
			}
			break
		}
	}
	for _, released := range sustain.Expire(now) {
		s.tracker.HandleEvent(released)
	}
}

// headingDeg maps a world-space forward vector onto a 0-360 compass
// heading, north being the -Z axis.
func headingDeg(forward mgl64.Vec3) float64 {
	deg := math.Atan2(forward.X(), -forward.Z()) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}
