// pkg/scene/node.go
package scene

import "github.com/go-gl/mathgl/mgl64"

// Node is one element of the scene tree: a local transform, an optional
// mesh, and owned children. Parents own children and the tree has no
// cycles, so plain tree ownership is the whole lifetime story.
type Node struct {
	Name     string
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
	Mesh     *Mesh

	children []*Node
}

// NewNode creates an empty group node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// NewMeshNode creates a node carrying a mesh.
func NewMeshNode(name string, mesh *Mesh) *Node {
	n := NewNode(name)
	n.Mesh = mesh
	return n
}

// AddChild appends children to the node, returning the node for chaining.
func (n *Node) AddChild(children ...*Node) *Node {
	n.children = append(n.children, children...)
	return n
}

// Children returns the node's direct children.
func (n *Node) Children() []*Node {
	return n.children
}

// SetPose updates the node's local position and rotation in place. The
// aircraft node is driven through this once per frame.
func (n *Node) SetPose(position mgl64.Vec3, rotation mgl64.Quat) {
	n.Position = position
	n.Rotation = rotation
}

// Find returns the first node in the subtree with the given name, or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Transform is an accumulated world-space pose.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Compose applies a child's local transform under the parent transform t.
func (t Transform) Compose(local *Node) Transform {
	scaled := mgl64.Vec3{
		local.Position.X() * t.Scale.X(),
		local.Position.Y() * t.Scale.Y(),
		local.Position.Z() * t.Scale.Z(),
	}
	return Transform{
		Position: t.Position.Add(t.Rotation.Rotate(scaled)),
		Rotation: t.Rotation.Mul(local.Rotation),
		Scale: mgl64.Vec3{
			t.Scale.X() * local.Scale.X(),
			t.Scale.Y() * local.Scale.Y(),
			t.Scale.Z() * local.Scale.Z(),
		},
	}
}

// Walk visits every node in the subtree depth-first, passing each node's
// accumulated world transform. Returning false from fn prunes that branch.
func (n *Node) Walk(fn func(node *Node, world Transform) bool) {
	n.walk(Identity(), fn)
}

func (n *Node) walk(parent Transform, fn func(*Node, Transform) bool) {
	world := parent.Compose(n)
	if !fn(n, world) {
		return
	}
	for _, c := range n.children {
		c.walk(world, fn)
	}
}

// CountNodes returns the number of nodes in the subtree, including n.
func (n *Node) CountNodes() int {
	count := 1
	for _, c := range n.children {
		count += c.CountNodes()
	}
	return count
}
