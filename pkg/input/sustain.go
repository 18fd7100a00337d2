// pkg/input/sustain.go
package input

import "time"

// Sustainer synthesizes key releases for input sources that only deliver
// press events (terminals report key repeat, never key-up). Each press
// refreshes a hold window; keys whose window lapses without a repeat are
// reported as released.
type Sustainer struct {
	holdFor time.Duration
	lastHit map[Key]time.Time
}

// NewSustainer creates a sustainer with the given hold window. The window
// must exceed the terminal's key-repeat interval or held keys will flicker.
func NewSustainer(holdFor time.Duration) *Sustainer {
	return &Sustainer{
		holdFor: holdFor,
		lastHit: make(map[Key]time.Time),
	}
}

// Press records a press event at the given time and returns the press
// KeyEvent to forward to the tracker.
func (s *Sustainer) Press(code Key, at time.Time) KeyEvent {
	s.lastHit[code] = at
	return KeyEvent{Code: code, Pressed: true}
}

// Expire returns release events for every key whose hold window lapsed
// before now, removing them from the held set. Call once per frame.
func (s *Sustainer) Expire(now time.Time) []KeyEvent {
	var released []KeyEvent
	for code, at := range s.lastHit {
		if now.Sub(at) >= s.holdFor {
			delete(s.lastHit, code)
			released = append(released, KeyEvent{Code: code, Pressed: false})
		}
	}
	return released
}

// HeldCount returns the number of keys currently considered held.
func (s *Sustainer) HeldCount() int {
	return len(s.lastHit)
}
