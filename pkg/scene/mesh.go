// pkg/scene/mesh.go
package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Primitive enumerates the visual shapes a render backend can draw.
type Primitive int

const (
	Box Primitive = iota
	Cylinder
	Cone
	Sphere
	Plane
)

// String returns the primitive name for logs and terminal glyph lookup.
func (p Primitive) String() string {
	switch p {
	case Box:
		return "box"
	case Cylinder:
		return "cylinder"
	case Cone:
		return "cone"
	case Sphere:
		return "sphere"
	case Plane:
		return "plane"
	default:
		return "unknown"
	}
}

// Material describes how a mesh is colored. Shader, when non-empty, is an
// opaque fragment-program payload handed through to backends that can run
// it; other backends fall back to Color.
type Material struct {
	Color  color.RGBA
	Shaded bool
	Shader string
}

// Mesh is a primitive with per-axis extents and a material. Size is the
// full extent along each local axis (diameter, not radius, for round
// shapes).
type Mesh struct {
	Primitive Primitive
	Size      mgl64.Vec3
	Material  Material
}

// NewBox returns a box mesh with the given extents and color.
func NewBox(w, h, d float64, c color.RGBA) *Mesh {
	return &Mesh{Primitive: Box, Size: mgl64.Vec3{w, h, d}, Material: Material{Color: c, Shaded: true}}
}

// NewCylinder returns a cylinder mesh: diameter across X/Z, height along Y.
func NewCylinder(diameter, height float64, c color.RGBA) *Mesh {
	return &Mesh{Primitive: Cylinder, Size: mgl64.Vec3{diameter, height, diameter}, Material: Material{Color: c, Shaded: true}}
}

// NewCone returns a cone mesh: base diameter across X/Z, height along Y.
func NewCone(diameter, height float64, c color.RGBA) *Mesh {
	return &Mesh{Primitive: Cone, Size: mgl64.Vec3{diameter, height, diameter}, Material: Material{Color: c, Shaded: true}}
}

// NewSphere returns a sphere mesh with the given diameter.
func NewSphere(diameter float64, c color.RGBA) *Mesh {
	return &Mesh{Primitive: Sphere, Size: mgl64.Vec3{diameter, diameter, diameter}, Material: Material{Color: c, Shaded: true}}
}

// NewPlane returns a flat plane mesh spanning X/Z.
func NewPlane(w, d float64, c color.RGBA) *Mesh {
	return &Mesh{Primitive: Plane, Size: mgl64.Vec3{w, 0, d}, Material: Material{Color: c}}
}

// Radius returns a bounding-sphere radius for coarse projection sizing.
func (m *Mesh) Radius() float64 {
	r := m.Size.X()
	if m.Size.Y() > r {
		r = m.Size.Y()
	}
	if m.Size.Z() > r {
		r = m.Size.Z()
	}
	return r / 2
}
