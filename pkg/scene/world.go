// pkg/scene/world.go
package scene

import (
	"image/color"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// Sky dome fragment program. Opaque payload for shader-capable backends;
// it fades the horizon color into the zenith color and applies distance
// fog from the supplied uniforms.
const skyShader = `
uniform vec3 zenithColor;
uniform vec3 horizonColor;
uniform float fogNear;
uniform float fogFar;
uniform float elapsed;
varying vec3 vWorldPosition;
void main() {
	float h = normalize(vWorldPosition).y;
	vec3 col = mix(horizonColor, zenithColor, max(h, 0.0));
	float fog = smoothstep(fogNear, fogFar, length(vWorldPosition));
	gl_FragColor = vec4(mix(col, horizonColor, fog), 1.0);
}
`

// World is the built demo scene: the root of the node tree plus direct
// handles to the nodes the simulation drives or the renderer treats
// specially.
type World struct {
	Root     *Node
	Aircraft *Node
	Sky      *Node
	Ground   *Node
	Runway   *Node
}

// WorldOptions controls procedural scene construction.
type WorldOptions struct {
	GroundSize    float64
	RunwayLength  float64
	RunwayWidth   float64
	BuildingCount int
	BuildingSeed  uint64
}

// DefaultWorldOptions returns the stock demo world layout.
func DefaultWorldOptions() WorldOptions {
	return WorldOptions{
		GroundSize:    20000,
		RunwayLength:  1200,
		RunwayWidth:   40,
		BuildingCount: 24,
		BuildingSeed:  7,
	}
}

// BuildWorld constructs the static demo scene: sky dome, ground plane,
// runway with centerline stripes, a deterministic cluster of buildings,
// and the aircraft mesh group. Construction is pure setup; nothing here
// moves except the aircraft node, which the simulation poses each frame.
func BuildWorld(opts WorldOptions) *World {
	root := NewNode("world")

	sky := buildSky(opts.GroundSize)
	ground := buildGround(opts.GroundSize)
	runway := buildRunway(opts.RunwayLength, opts.RunwayWidth)
	aircraft := BuildAircraft()

	root.AddChild(sky, ground, runway, buildBuildings(opts), aircraft)

	return &World{
		Root:     root,
		Aircraft: aircraft,
		Sky:      sky,
		Ground:   ground,
		Runway:   runway,
	}
}

func buildSky(size float64) *Node {
	mesh := NewSphere(size*2, color.RGBA{R: 110, G: 170, B: 255, A: 255})
	mesh.Material.Shaded = false
	mesh.Material.Shader = skyShader
	return NewMeshNode("sky", mesh)
}

func buildGround(size float64) *Node {
	return NewMeshNode("ground", NewPlane(size, size, color.RGBA{R: 70, G: 120, B: 60, A: 255}))
}

func buildRunway(length, width float64) *Node {
	runway := NewNode("runway")
	surface := NewMeshNode("runway.surface", NewPlane(width, length, color.RGBA{R: 60, G: 60, B: 65, A: 255}))
	surface.Position = mgl64.Vec3{0, 0.1, 0}
	runway.AddChild(surface)

	// Centerline stripes every 40 m, slightly above the surface to avoid
	// z-fighting in depth-buffered backends.
	stripeLen := 20.0
	for z := -length/2 + stripeLen; z < length/2-stripeLen; z += 40 {
		stripe := NewMeshNode("runway.stripe", NewPlane(2, stripeLen, color.RGBA{R: 230, G: 230, B: 230, A: 255}))
		stripe.Position = mgl64.Vec3{0, 0.2, z}
		runway.AddChild(stripe)
	}
	return runway
}

func buildBuildings(opts WorldOptions) *Node {
	group := NewNode("buildings")
	rng := rand.New(rand.NewPCG(opts.BuildingSeed, 0))

	for i := 0; i < opts.BuildingCount; i++ {
		w := 20 + rng.Float64()*40
		h := 30 + rng.Float64()*120
		d := 20 + rng.Float64()*40

		// Scatter on either side of the runway, clear of the strip itself.
		x := opts.RunwayWidth + 60 + rng.Float64()*800
		if rng.IntN(2) == 0 {
			x = -x
		}
		z := -opts.RunwayLength/2 + rng.Float64()*opts.RunwayLength*2

		shade := uint8(90 + rng.IntN(80))
		b := NewMeshNode("building", NewBox(w, h, d, color.RGBA{R: shade, G: shade, B: shade, A: 255}))
		b.Position = mgl64.Vec3{x, h / 2, z}
		group.AddChild(b)
	}
	return group
}

// BuildAircraft constructs the aircraft mesh group: fuselage, nose cone,
// wings, tailplane, and fin, all children of one pose-driven node.
func BuildAircraft() *Node {
	aircraft := NewNode("aircraft")

	body := color.RGBA{R: 200, G: 30, B: 30, A: 255}
	trim := color.RGBA{R: 230, G: 230, B: 230, A: 255}

	fuselage := NewMeshNode("aircraft.fuselage", NewCylinder(2, 10, body))
	// Cylinder height runs along Y; lay it down the -Z nose axis.
	fuselage.Rotation = mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{1, 0, 0})

	nose := NewMeshNode("aircraft.nose", NewCone(2, 3, trim))
	nose.Position = mgl64.Vec3{0, 0, -6.5}
	nose.Rotation = mgl64.QuatRotate(mgl64.DegToRad(-90), mgl64.Vec3{1, 0, 0})

	wings := NewMeshNode("aircraft.wings", NewBox(14, 0.3, 3, trim))
	wings.Position = mgl64.Vec3{0, 0, -0.5}

	tailplane := NewMeshNode("aircraft.tailplane", NewBox(6, 0.25, 1.6, trim))
	tailplane.Position = mgl64.Vec3{0, 0.4, 4.4}

	fin := NewMeshNode("aircraft.fin", NewBox(0.25, 2.4, 1.8, body))
	fin.Position = mgl64.Vec3{0, 1.4, 4.4}

	aircraft.AddChild(fuselage, nose, wings, tailplane, fin)
	return aircraft
}
