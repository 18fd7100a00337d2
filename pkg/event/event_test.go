// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus() returned nil")
	}
	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}
}

func TestBaseEvent_Accessors(t *testing.T) {
	src := "simulation"
	e := &BaseEvent{EventType: SimStarted, Source: src}

	if e.GetType() != SimStarted {
		t.Errorf("GetType() = %v, want %v", e.GetType(), SimStarted)
	}
	if e.GetSource() != src {
		t.Errorf("GetSource() = %v, want %v", e.GetSource(), src)
	}
}

func TestBus_Publish_DeliversToSubscribers(t *testing.T) {
	bus := NewEventBus()
	received := 0
	bus.Subscribe(FrameCompleted, func(e Event) {
		received++
		if e.GetType() != FrameCompleted {
			t.Errorf("handler got type %v", e.GetType())
		}
	})

	bus.Publish(NewFrameEvent(nil, 1, 1.0/60))
	bus.Publish(NewFrameEvent(nil, 2, 1.0/60))

	if received != 2 {
		t.Errorf("handler called %d times, want 2", received)
	}
}

func TestBus_Publish_TypeFiltered(t *testing.T) {
	bus := NewEventBus()
	var got []Type
	bus.Subscribe(GroundContact, func(e Event) {
		got = append(got, e.GetType())
	})

	bus.Publish(NewFrameEvent(nil, 1, 0.016))
	bus.Publish(NewGroundContactEvent(nil, mgl64.Vec3{0, 5, -200}, 1.2))
	bus.Publish(NewThrottleEvent(nil, 1))

	if len(got) != 1 || got[0] != GroundContact {
		t.Errorf("received %v, want only the ground contact", got)
	}
}

func TestBus_Publish_NoSubscribersIsNoOp(t *testing.T) {
	bus := NewEventBus()
	// Must not panic or block.
	bus.Publish(NewThrottleEvent(nil, 0))
}

func TestBus_Unsubscribe_StopsDelivery(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	id := bus.Subscribe(FrameCompleted, func(Event) { calls++ })

	bus.Publish(NewFrameEvent(nil, 1, 0.016))
	bus.Unsubscribe(FrameCompleted, id)
	bus.Publish(NewFrameEvent(nil, 2, 0.016))

	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
}

func TestBus_Unsubscribe_OnlyRemovesTargetHandler(t *testing.T) {
	bus := NewEventBus()
	var first, second int
	idFirst := bus.Subscribe(FrameCompleted, func(Event) { first++ })
	bus.Subscribe(FrameCompleted, func(Event) { second++ })

	bus.Unsubscribe(FrameCompleted, idFirst)
	bus.Publish(NewFrameEvent(nil, 1, 0.016))

	if first != 0 {
		t.Errorf("removed handler called %d times", first)
	}
	if second != 1 {
		t.Errorf("remaining handler called %d times, want 1", second)
	}
}

func TestBus_Unsubscribe_UnknownIDIsNoOp(t *testing.T) {
	bus := NewEventBus()
	bus.Unsubscribe(FrameCompleted, 42)
	bus.Unsubscribe(Type("never-seen"), 1)
}

func TestBus_ConcurrentPublishAndSubscribe(t *testing.T) {
	bus := NewEventBus()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			id := bus.Subscribe(FrameCompleted, func(Event) {})
			bus.Unsubscribe(FrameCompleted, id)
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bus.Publish(NewFrameEvent(nil, uint64(j), 0.016))
			}
		}()
	}
	wg.Wait()
}

func TestFrameEvent_CarriesFrameAndDelta(t *testing.T) {
	e := NewFrameEvent("sim", 120, 1.0/60)
	if e.Frame != 120 || e.Dt != 1.0/60 {
		t.Errorf("frame event = %+v", e)
	}
	if e.GetType() != FrameCompleted {
		t.Errorf("type = %v, want %v", e.GetType(), FrameCompleted)
	}
}

func TestGroundContactEvent_CarriesImpact(t *testing.T) {
	pos := mgl64.Vec3{10, 5, -340}
	e := NewGroundContactEvent(nil, pos, 2.5)
	if e.Position != pos {
		t.Errorf("position = %v, want %v", e.Position, pos)
	}
	if e.Impact != 2.5 {
		t.Errorf("impact = %v, want 2.5", e.Impact)
	}
	if e.GetType() != GroundContact {
		t.Errorf("type = %v, want %v", e.GetType(), GroundContact)
	}
}

func TestThrottleEvent_CarriesValue(t *testing.T) {
	e := NewThrottleEvent(nil, 1)
	if e.Value != 1 {
		t.Errorf("value = %v, want 1", e.Value)
	}
	if e.GetType() != ThrottleSaturated {
		t.Errorf("type = %v, want %v", e.GetType(), ThrottleSaturated)
	}
}
