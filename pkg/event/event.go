// pkg/event/event.go
package event

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Type represents the type of event
type Type string

// Common event types
const (
	SimStarted        Type = "sim_started"
	SimStopped        Type = "sim_stopped"
	FrameCompleted    Type = "frame_completed"
	GroundContact     Type = "ground_contact"
	ThrottleSaturated Type = "throttle_saturated"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type]map[int]Handler
	nextID   int
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type]map[int]Handler),
	}
}

// Subscribe registers a handler for a specific event type and returns a
// subscription ID for Unsubscribe.
func (b *Bus) Subscribe(eventType Type, handler Handler) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[int]Handler)
	}
	b.handlers[eventType][b.nextID] = handler
	return b.nextID
}

// Unsubscribe removes a handler by its subscription ID.
func (b *Bus) Unsubscribe(eventType Type, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if handlers, ok := b.handlers[eventType]; ok {
		delete(handlers, id)
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers, ok := b.handlers[event.GetType()]
	if !ok {
		b.mu.RUnlock()
		return
	}
	snapshot := make([]Handler, 0, len(handlers))
	for _, h := range handlers {
		snapshot = append(snapshot, h)
	}
	b.mu.RUnlock()

	for _, handler := range snapshot {
		handler(event)
	}
}

// FrameEvent is published after each completed integration frame.
type FrameEvent struct {
	BaseEvent
	Frame uint64
	Dt    float64
}

// NewFrameEvent creates a frame-completed event.
func NewFrameEvent(source interface{}, frame uint64, dt float64) *FrameEvent {
	return &FrameEvent{
		BaseEvent: BaseEvent{EventType: FrameCompleted, Source: source},
		Frame:     frame,
		Dt:        dt,
	}
}

// GroundContactEvent is published on the frame the floor clamp engages.
// Impact is the downward speed absorbed by the clamp, meters/second.
type GroundContactEvent struct {
	BaseEvent
	Position mgl64.Vec3
	Impact   float64
}

// NewGroundContactEvent creates a ground contact event.
func NewGroundContactEvent(source interface{}, position mgl64.Vec3, impact float64) *GroundContactEvent {
	return &GroundContactEvent{
		BaseEvent: BaseEvent{EventType: GroundContact, Source: source},
		Position:  position,
		Impact:    impact,
	}
}

// ThrottleEvent is published when the throttle first reaches either end of
// its range, not on every saturated frame.
type ThrottleEvent struct {
	BaseEvent
	Value float64
}

// NewThrottleEvent creates a throttle saturation event.
func NewThrottleEvent(source interface{}, value float64) *ThrottleEvent {
	return &ThrottleEvent{
		BaseEvent: BaseEvent{EventType: ThrottleSaturated, Source: source},
		Value:     value,
	}
}
