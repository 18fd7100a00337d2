// pkg/render/engo/hud.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-barnstorm/pkg/engine"
)

const (
	hudBarWidth  = 200
	hudBarHeight = 14
	hudMargin    = 12
)

// HUDSystem draws flight instruments: a throttle gauge and a speed gauge
// in the corner, with the full readout mirrored into the window title.
type HUDSystem struct {
	sim   *engine.Simulation
	world *ecs.World

	throttleBack bar
	throttleFill bar
	speedBack    bar
	speedFill    bar

	built bool
}

type bar struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
}

// NewHUDSystem creates a HUD bound to the simulation's snapshots.
func NewHUDSystem(sim *engine.Simulation, world *ecs.World) *HUDSystem {
	return &HUDSystem{sim: sim, world: world}
}

// Remove satisfies the ecs.System interface.
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update redraws the gauges from the latest snapshot.
func (hud *HUDSystem) Update(dt float32) {
	if !hud.built {
		hud.build()
	}
	snap := hud.sim.Snapshot()

	hud.throttleFill.space.Width = float32(hudBarWidth * snap.Throttle)

	speedRange := snap.Speed / 250
	if speedRange > 1 {
		speedRange = 1
	}
	hud.speedFill.space.Width = float32(hudBarWidth * speedRange)

	engo.SetTitle("barnstorm — " + hud.sim.StatusLine())
}

func (hud *HUDSystem) build() {
	renderSystem := hud.renderSystem()
	if renderSystem == nil {
		return
	}

	makeBar := func(b *bar, y float32, width float32, c color.RGBA, z float32) {
		b.basic = ecs.NewBasic()
		b.render = common.RenderComponent{Drawable: common.Rectangle{}, Color: c}
		b.render.SetZIndex(z)
		b.render.SetShader(common.HUDShader)
		b.space = common.SpaceComponent{
			Position: engo.Point{X: hudMargin, Y: y},
			Width:    width,
			Height:   hudBarHeight,
		}
		renderSystem.Add(&b.basic, &b.render, &b.space)
	}

	makeBar(&hud.throttleBack, hudMargin, hudBarWidth, color.RGBA{R: 40, G: 40, B: 40, A: 200}, 1000)
	makeBar(&hud.throttleFill, hudMargin, 0, color.RGBA{R: 240, G: 160, B: 30, A: 255}, 1001)
	makeBar(&hud.speedBack, hudMargin*2+hudBarHeight, hudBarWidth, color.RGBA{R: 40, G: 40, B: 40, A: 200}, 1000)
	makeBar(&hud.speedFill, hudMargin*2+hudBarHeight, 0, color.RGBA{R: 80, G: 200, B: 80, A: 255}, 1001)
	hud.built = true
}

func (hud *HUDSystem) renderSystem() *common.RenderSystem {
	for _, system := range hud.world.Systems() {
		if rs, ok := system.(*common.RenderSystem); ok {
			return rs
		}
	}
	return nil
}
