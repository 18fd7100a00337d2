// pkg/render/engo/scene.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-barnstorm/pkg/engine"
)

// FlightScene is the engo scene hosting the demo: it wires the simulation
// update, the control polling, the sprite projection, and the HUD into
// engo's frame loop.
type FlightScene struct {
	sim *engine.Simulation

	world    *ecs.World
	renderer *Renderer
}

// NewFlightScene creates the scene around an existing simulation.
func NewFlightScene(sim *engine.Simulation) *FlightScene {
	return &FlightScene{sim: sim}
}

// Type returns the scene identifier (required by engo).
func (scene *FlightScene) Type() string {
	return "FlightScene"
}

// Preload is called before the scene starts (required by engo). All demo
// geometry is procedural, so there is nothing to load.
func (scene *FlightScene) Preload() {}

// Setup is called when the scene starts (required by engo).
func (scene *FlightScene) Setup(u engo.Updater) {
	scene.world, _ = u.(*ecs.World)

	scene.world.AddSystem(&common.RenderSystem{})

	scene.renderer = NewRenderer(scene.world, float64(engo.GameWidth()), float64(engo.GameHeight()))
	if err := scene.renderer.Init(); err != nil {
		panic("failed to initialize renderer: " + err.Error())
	}

	SetupInputBindings()

	scene.world.AddSystem(&flightSystem{sim: scene.sim, renderer: scene.renderer})
	scene.world.AddSystem(NewHUDSystem(scene.sim, scene.world))

	// Window resizes update the projection aspect; the render system
	// handles the framebuffer itself.
	engo.Mailbox.Listen("WindowResizeMessage", func(message engo.Message) {
		msg, ok := message.(engo.WindowResizeMessage)
		if !ok {
			return
		}
		scene.renderer.Resize(msg.NewWidth, msg.NewHeight)
	})
}

// flightSystem advances the simulation once per engo frame and reprojects
// the scene sprites through the chase camera.
type flightSystem struct {
	sim      *engine.Simulation
	renderer *Renderer
}

// Remove satisfies the ecs.System interface.
func (fs *flightSystem) Remove(basic ecs.BasicEntity) {}

// Update runs one simulation frame with engo's elapsed time.
func (fs *flightSystem) Update(dt float32) {
	PollControls(fs.sim.Tracker())

	if err := fs.sim.Update(float64(dt)); err != nil {
		// Corrupt frame delta from the host; skip the frame rather than
		// integrating garbage.
		return
	}

	snap := fs.sim.Snapshot()
	aspect := float64(engo.GameWidth()) / float64(engo.GameHeight())
	fs.renderer.Clear()
	fs.renderer.RenderScene(fs.sim.World().Root, snap.Camera, fs.sim.Lens(aspect))
	fs.renderer.Present()
}
