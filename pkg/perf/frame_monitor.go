// pkg/perf/frame_monitor.go
package perf

import (
	"context"
	"sync"

	"github.com/opd-ai/go-barnstorm/pkg/event"
	"github.com/opd-ai/go-barnstorm/pkg/logging"
)

// FrameMonitor tracks per-frame delta times and flags host stalls. A frame
// whose delta exceeds the stall threshold (a backgrounded tab, a blocked
// main loop) produces one structured warning; rolling statistics are kept
// for HUD display.
type FrameMonitor struct {
	stallThreshold float64 // seconds

	mu      sync.Mutex
	frames  uint64
	total   float64
	worst   float64
	stalls  uint64
	lastDt  float64
	logger  *logging.Logger
	subID   int
	subType event.Type
	bus     *event.Bus
}

// FrameStats is a snapshot of the monitor's counters.
type FrameStats struct {
	Frames  uint64
	AvgDt   float64
	WorstDt float64
	LastDt  float64
	Stalls  uint64
}

// NewFrameMonitor creates a monitor that warns when a frame delta exceeds
// stallThreshold seconds.
func NewFrameMonitor(stallThreshold float64, logger *logging.Logger) *FrameMonitor {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &FrameMonitor{
		stallThreshold: stallThreshold,
		logger:         logger,
	}
}

// Attach subscribes the monitor to FrameCompleted events on the bus.
func (m *FrameMonitor) Attach(bus *event.Bus) {
	m.bus = bus
	m.subType = event.FrameCompleted
	m.subID = bus.Subscribe(event.FrameCompleted, func(e event.Event) {
		if fe, ok := e.(*event.FrameEvent); ok {
			m.Record(fe.Dt)
		}
	})
}

// Detach removes the monitor's bus subscription.
func (m *FrameMonitor) Detach() {
	if m.bus != nil {
		m.bus.Unsubscribe(m.subType, m.subID)
		m.bus = nil
	}
}

// Record folds one frame delta into the statistics.
func (m *FrameMonitor) Record(dt float64) {
	m.mu.Lock()
	m.frames++
	m.total += dt
	m.lastDt = dt
	if dt > m.worst {
		m.worst = dt
	}
	stalled := dt > m.stallThreshold
	if stalled {
		m.stalls++
	}
	frame := m.frames
	m.mu.Unlock()

	if stalled {
		m.logger.Warn(context.Background(), "frame stall detected",
			"frame", frame,
			"dt_seconds", dt,
			"threshold_seconds", m.stallThreshold,
		)
	}
}

// Stats returns a snapshot of the counters.
func (m *FrameMonitor) Stats() FrameStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := FrameStats{
		Frames:  m.frames,
		WorstDt: m.worst,
		LastDt:  m.lastDt,
		Stalls:  m.stalls,
	}
	if m.frames > 0 {
		stats.AvgDt = m.total / float64(m.frames)
	}
	return stats
}
