// pkg/input/controls.go
package input

// Controls is the set of held control flags consumed by the flight
// integrator once per frame. Each flag has exactly one writer: the
// press/release handler of the key bound to it.
type Controls struct {
	PitchUp   bool
	PitchDown bool
	RollLeft  bool
	RollRight bool
	YawLeft   bool
	YawRight  bool

	ThrottleUp   bool
	ThrottleDown bool
}

// Key identifies a physical key as reported by an input backend.
type Key string

// Fixed key bindings. One physical key per flag, no rebinding,
// no modifiers. All other keys are ignored.
const (
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyA          Key = "KeyA"
	KeyD          Key = "KeyD"
	KeyW          Key = "KeyW"
	KeyS          Key = "KeyS"
)

// KeyEvent is a discrete press or release delivered by an input source.
type KeyEvent struct {
	Code    Key
	Pressed bool
}

// Tracker maintains the Controls record from edge-triggered key events.
// Holding a key produces a continuous true state across frames until the
// matching release arrives.
type Tracker struct {
	controls Controls
	bindings map[Key]func(*Controls, bool)
}

// NewTracker creates a tracker with the fixed key mapping:
// arrows for pitch and roll, A/D for yaw, W/S for throttle.
func NewTracker() *Tracker {
	return &Tracker{
		bindings: map[Key]func(*Controls, bool){
			KeyArrowUp:    func(c *Controls, down bool) { c.PitchUp = down },
			KeyArrowDown:  func(c *Controls, down bool) { c.PitchDown = down },
			KeyArrowLeft:  func(c *Controls, down bool) { c.RollLeft = down },
			KeyArrowRight: func(c *Controls, down bool) { c.RollRight = down },
			KeyA:          func(c *Controls, down bool) { c.YawLeft = down },
			KeyD:          func(c *Controls, down bool) { c.YawRight = down },
			KeyW:          func(c *Controls, down bool) { c.ThrottleUp = down },
			KeyS:          func(c *Controls, down bool) { c.ThrottleDown = down },
		},
	}
}

// HandleKey applies a press or release event. It returns true if the key
// is bound to a control flag, false for ignored keys.
func (t *Tracker) HandleKey(code Key, pressed bool) bool {
	set, ok := t.bindings[code]
	if !ok {
		return false
	}
	set(&t.controls, pressed)
	return true
}

// HandleEvent applies a KeyEvent from an input source.
func (t *Tracker) HandleEvent(ev KeyEvent) bool {
	return t.HandleKey(ev.Code, ev.Pressed)
}

// Controls returns the current flag state for the frame's integration step.
func (t *Tracker) Controls() Controls {
	return t.controls
}

// Reset clears every flag, as if all keys were released.
func (t *Tracker) Reset() {
	t.controls = Controls{}
}
