// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-barnstorm/pkg/camera"
	"github.com/opd-ai/go-barnstorm/pkg/logging"
	"github.com/opd-ai/go-barnstorm/pkg/scene"
)

// Renderer draws one frame of the scene graph from a camera pose. The
// simulation core only ever talks to this interface; backends own windows,
// screens, and GPU state.
type Renderer interface {
	// Init acquires the output surface. Failure here is a fatal
	// environment error, not a simulation error.
	Init() error
	// Clear begins a frame.
	Clear()
	// RenderScene draws the scene tree with the given camera pose and lens.
	RenderScene(root *scene.Node, cam camera.State, lens camera.Lens)
	// Present flips the finished frame to the output.
	Present()
	// Resize updates the output size after a host window resize.
	Resize(width, height int)
	// Close releases the output surface.
	Close()
}

// StatusSink is implemented by backends that can show a HUD status line.
type StatusSink interface {
	SetStatus(line string)
}

// NullRenderer is a renderer that draws nothing, for headless runs and
// tests. It logs calls at debug level.
type NullRenderer struct {
	logger *logging.Logger

	frames uint64
	status string
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{
		logger: logging.NewLogger(),
	}
}

// Init implements Renderer.
func (r *NullRenderer) Init() error {
	r.logger.Debug(context.Background(), "null renderer initialized")
	return nil
}

// Clear implements Renderer.
func (r *NullRenderer) Clear() {}

// RenderScene implements Renderer.
func (r *NullRenderer) RenderScene(root *scene.Node, cam camera.State, lens camera.Lens) {
	r.frames++
	r.logger.Debug(context.Background(), "frame rendered",
		"frame", r.frames,
		"nodes", root.CountNodes(),
		"camera_x", cam.Position.X(),
		"camera_y", cam.Position.Y(),
		"camera_z", cam.Position.Z(),
	)
}

// Present implements Renderer.
func (r *NullRenderer) Present() {}

// Resize implements Renderer.
func (r *NullRenderer) Resize(width, height int) {
	r.logger.Debug(context.Background(), "resize", "width", width, "height", height)
}

// Close implements Renderer.
func (r *NullRenderer) Close() {}

// SetStatus implements StatusSink.
func (r *NullRenderer) SetStatus(line string) {
	r.status = line
}

// Frames returns the number of frames rendered.
func (r *NullRenderer) Frames() uint64 {
	return r.frames
}
