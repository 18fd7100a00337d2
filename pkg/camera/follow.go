// pkg/camera/follow.go
package camera

import "github.com/go-gl/mathgl/mgl64"

// State is the chase camera pose for one frame: a world-space position and
// the point the camera looks at. The target snaps to the aircraft every
// frame; only the position lags.
type State struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
}

// Lens holds the projection parameters handed to the render backend.
type Lens struct {
	FOVDegrees float64
	Aspect     float64
	Near       float64
	Far        float64
}

// Follower is an exponentially smoothed chase camera. The desired position
// is a fixed local offset rotated into world space by the aircraft's
// orientation; the actual position lerps toward it by a fixed fraction each
// frame (not scaled by dt; see DESIGN.md).
type Follower struct {
	offset    mgl64.Vec3
	smoothing float64

	state   State
	tracked bool
}

// NewFollower creates a follower with the given local offset (behind and
// above the aircraft for the stock (0,20,60)) and per-frame smoothing
// fraction in (0,1].
func NewFollower(offset mgl64.Vec3, smoothing float64) *Follower {
	return &Follower{
		offset:    offset,
		smoothing: smoothing,
	}
}

// Snap places the camera at the desired offset immediately, discarding any
// accumulated lag. Used when the followed aircraft first appears.
func (f *Follower) Snap(aircraftPos mgl64.Vec3, orientation mgl64.Quat) State {
	f.state = State{
		Position: aircraftPos.Add(orientation.Rotate(f.offset)),
		Target:   aircraftPos,
	}
	f.tracked = true
	return f.state
}

// Update derives the next camera state from the aircraft's new pose. The
// first update snaps so the camera does not sweep in from the origin.
func (f *Follower) Update(aircraftPos mgl64.Vec3, orientation mgl64.Quat) State {
	if !f.tracked {
		return f.Snap(aircraftPos, orientation)
	}
	desired := aircraftPos.Add(orientation.Rotate(f.offset))
	f.state.Position = f.state.Position.Add(desired.Sub(f.state.Position).Mul(f.smoothing))
	f.state.Target = aircraftPos
	return f.state
}

// State returns the camera pose from the most recent update.
func (f *Follower) State() State {
	return f.state
}

// Offset returns the follower's local offset.
func (f *Follower) Offset() mgl64.Vec3 {
	return f.offset
}

// Smoothing returns the per-frame lerp fraction.
func (f *Follower) Smoothing() float64 {
	return f.smoothing
}
