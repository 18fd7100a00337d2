// pkg/render/engo/renderer.go
package engo

import (
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-barnstorm/pkg/camera"
	"github.com/opd-ai/go-barnstorm/pkg/scene"
)

// Renderer implements render.Renderer on top of the engo render system.
// Each mesh node in the scene tree gets a sprite entity; every frame the
// nodes are projected through the chase camera into screen space and the
// sprites repositioned, scaled by inverse depth.
type Renderer struct {
	world        *ecs.World
	renderSystem *common.RenderSystem

	// sprite state per scene node
	sprites map[*scene.Node]*nodeSprite

	width  float64
	height float64
}

type nodeSprite struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
}

// NewRenderer creates an engo-backed renderer attached to the given world.
func NewRenderer(world *ecs.World, width, height float64) *Renderer {
	return &Renderer{
		world:   world,
		sprites: make(map[*scene.Node]*nodeSprite),
		width:   width,
		height:  height,
	}
}

// Init implements render.Renderer. The render system must exist before
// sprites are added.
func (r *Renderer) Init() error {
	for _, system := range r.world.Systems() {
		if rs, ok := system.(*common.RenderSystem); ok {
			r.renderSystem = rs
			return nil
		}
	}
	r.renderSystem = &common.RenderSystem{}
	r.world.AddSystem(r.renderSystem)
	return nil
}

// Clear implements render.Renderer. engo clears the framebuffer itself;
// stale sprites are hidden during RenderScene instead.
func (r *Renderer) Clear() {}

// RenderScene implements render.Renderer.
func (r *Renderer) RenderScene(root *scene.Node, cam camera.State, lens camera.Lens) {
	forward := cam.Target.Sub(cam.Position)
	if forward.Len() < 1e-9 {
		forward = mgl64.Vec3{0, 0, -1}
	}
	forward = forward.Normalize()
	right := forward.Cross(mgl64.Vec3{0, 1, 0})
	if right.Len() < 1e-9 {
		right = mgl64.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	up := right.Cross(forward)

	tanHalf := math.Tan(mgl64.DegToRad(lens.FOVDegrees) / 2)
	aspect := lens.Aspect
	if aspect <= 0 {
		aspect = r.width / r.height
	}

	seen := make(map[*scene.Node]bool)
	root.Walk(func(node *scene.Node, world scene.Transform) bool {
		if node.Mesh == nil || node.Mesh.Material.Shader != "" {
			return true
		}
		sprite := r.getOrCreateSprite(node)
		seen[node] = true

		v := world.Position.Sub(cam.Position)
		depth := v.Dot(forward)
		if depth < lens.Near || depth > lens.Far {
			sprite.render.Hidden = true
			return true
		}

		sx := v.Dot(right) / (depth * tanHalf * aspect)
		sy := v.Dot(up) / (depth * tanHalf)
		px := (sx*0.5 + 0.5) * r.width
		py := (0.5 - sy*0.5) * r.height

		size := node.Mesh.Radius() * 2 / (depth * tanHalf) * r.height / 2
		if size < 1 {
			size = 1
		}

		sprite.render.Hidden = false
		sprite.render.SetZIndex(float32(-depth))
		sprite.space.Position = engo.Point{X: float32(px - size/2), Y: float32(py - size/2)}
		sprite.space.Width = float32(size)
		sprite.space.Height = float32(size)
		return true
	})

	// Hide sprites for nodes that left the tree.
	for node, sprite := range r.sprites {
		if !seen[node] {
			sprite.render.Hidden = true
		}
	}
}

// Present implements render.Renderer; engo flips buffers itself.
func (r *Renderer) Present() {}

// Resize implements render.Renderer.
func (r *Renderer) Resize(width, height int) {
	r.width = float64(width)
	r.height = float64(height)
}

// Close implements render.Renderer.
func (r *Renderer) Close() {}

// getOrCreateSprite returns the sprite entity for a scene node, creating
// and registering it on first sight.
func (r *Renderer) getOrCreateSprite(node *scene.Node) *nodeSprite {
	if sprite, exists := r.sprites[node]; exists {
		return sprite
	}

	sprite := &nodeSprite{basic: ecs.NewBasic()}
	sprite.render = common.RenderComponent{
		Drawable: drawableFor(node.Mesh.Primitive),
		Color:    node.Mesh.Material.Color,
	}
	sprite.space = common.SpaceComponent{
		Position: engo.Point{X: 0, Y: 0},
		Width:    1,
		Height:   1,
	}
	r.renderSystem.Add(&sprite.basic, &sprite.render, &sprite.space)
	r.sprites[node] = sprite
	return sprite
}

// drawableFor picks a flat shape approximating each primitive.
func drawableFor(p scene.Primitive) common.Drawable {
	switch p {
	case scene.Sphere, scene.Cylinder:
		return common.Circle{}
	case scene.Cone:
		return common.Triangle{}
	default:
		return common.Rectangle{}
	}
}
