// pkg/physics/flight.go
package physics

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-barnstorm/pkg/input"
)

// ErrInvalidDeltaTime is returned when the frame delta is negative or
// non-finite. A corrupt delta would propagate NaN through every state
// component, so integration refuses it outright.
var ErrInvalidDeltaTime = errors.New("physics: delta time must be finite and non-negative")

// localForward is the aircraft's nose direction in its own frame.
var localForward = mgl64.Vec3{0, 0, -1}

// FlightState tracks aircraft physics. Position and velocity are in world
// space, meters and meters/second. Orientation is a unit quaternion;
// UpdateFlight re-normalizes it every step to keep repeated incremental
// rotations from drifting off unit length. Throttle is the persisted [0,1]
// control value.
type FlightState struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Velocity    mgl64.Vec3
	Throttle    float64
}

// NewFlightState returns a level aircraft at the given position with zero
// velocity and the given initial throttle.
func NewFlightState(position mgl64.Vec3, throttle float64) FlightState {
	return FlightState{
		Position:    position,
		Orientation: mgl64.QuatIdent(),
		Throttle:    clamp01(throttle),
	}
}

// Forward returns the world-space unit nose vector.
func (s *FlightState) Forward() mgl64.Vec3 {
	return s.Orientation.Rotate(localForward)
}

// Speed returns the commanded airspeed for the current throttle.
func (s *FlightState) Speed(t Tuning) float64 {
	return t.MinSpeed + s.Throttle*(t.MaxSpeed-t.MinSpeed)
}

// Tuning holds the flight model constants. Angular rates are radians per
// second, speeds meters per second.
type Tuning struct {
	PitchRate float64
	RollRate  float64
	YawRate   float64

	ThrottleRate float64 // throttle units per second
	MinSpeed     float64 // commanded speed at throttle 0
	MaxSpeed     float64 // commanded speed at throttle 1

	Gravity    float64 // downward acceleration, positive magnitude
	LiftFactor float64 // upward acceleration per unit of commanded speed

	// VelocityAlign blends velocity toward forward*speed by this fraction
	// each frame. Deliberately not scaled by dt; see DESIGN.md.
	VelocityAlign float64

	FloorHeight float64 // one-sided inelastic ground plane
}

// DefaultTuning returns the canonical arcade parameter set.
func DefaultTuning() Tuning {
	return Tuning{
		PitchRate:     30 * math.Pi / 180,
		RollRate:      45 * math.Pi / 180,
		YawRate:       15 * math.Pi / 180,
		ThrottleRate:  0.3,
		MinSpeed:      20,
		MaxSpeed:      250,
		Gravity:       9.81,
		LiftFactor:    0.4,
		VelocityAlign: 0.1,
		FloorHeight:   5,
	}
}

// UpdateFlight advances the aircraft by one frame of dt seconds, mutating
// state in place. The step order is fixed: throttle, commanded speed,
// attitude, forward vector, velocity, position, ground clamp. It returns
// whether the ground clamp engaged this frame.
//
// dt must be finite and non-negative; there is no upper cap, so a stalled
// host frame produces a proportionally large jump.
func UpdateFlight(state *FlightState, controls input.Controls, t Tuning, dt float64) (grounded bool, err error) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return false, ErrInvalidDeltaTime
	}

	// Throttle. Up and down both apply when both keys are held; the net
	// is zero without special-casing simultaneous input.
	if controls.ThrottleUp {
		state.Throttle += t.ThrottleRate * dt
	}
	if controls.ThrottleDown {
		state.Throttle -= t.ThrottleRate * dt
	}
	state.Throttle = clamp01(state.Throttle)

	// Commanded speed is a pure function of throttle, no inertia.
	speed := state.Speed(t)

	// Attitude. Opposing flags sum to zero net rotation. The incremental
	// rotation is composed pitch(X), yaw(Y), roll(Z) and right-multiplied
	// onto the current orientation so it applies in the aircraft's own
	// frame.
	var pitch, roll, yaw float64
	if controls.PitchUp {
		pitch += t.PitchRate * dt
	}
	if controls.PitchDown {
		pitch -= t.PitchRate * dt
	}
	if controls.RollLeft {
		roll += t.RollRate * dt
	}
	if controls.RollRight {
		roll -= t.RollRate * dt
	}
	if controls.YawLeft {
		yaw += t.YawRate * dt
	}
	if controls.YawRight {
		yaw -= t.YawRate * dt
	}
	if pitch != 0 || roll != 0 || yaw != 0 {
		incr := mgl64.QuatRotate(pitch, mgl64.Vec3{1, 0, 0}).
			Mul(mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0})).
			Mul(mgl64.QuatRotate(roll, mgl64.Vec3{0, 0, 1}))
		state.Orientation = state.Orientation.Mul(incr)
	}
	state.Orientation = state.Orientation.Normalize()

	forward := state.Forward()

	// Velocity: gravity, then the crude speed-proportional lift stand-in,
	// then a fixed-fraction blend toward flying straight along the nose.
	state.Velocity = state.Velocity.Add(mgl64.Vec3{0, (speed*t.LiftFactor - t.Gravity) * dt, 0})
	desired := forward.Mul(speed)
	state.Velocity = state.Velocity.Add(desired.Sub(state.Velocity).Mul(t.VelocityAlign))

	// Explicit Euler position step.
	state.Position = state.Position.Add(state.Velocity.Mul(dt))

	// One-sided inelastic floor.
	if state.Position.Y() < t.FloorHeight {
		state.Position[1] = t.FloorHeight
		if state.Velocity.Y() < 0 {
			state.Velocity[1] = 0
		}
		grounded = true
	}
	return grounded, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
