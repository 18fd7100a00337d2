// pkg/render/engo/input_test.go
package engo

import (
	"testing"

	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-barnstorm/pkg/scene"
)

// Every control flag has exactly one button, and names, codes, and keys
// never collide.
func TestButtonBindings_CompleteAndUnique(t *testing.T) {
	if len(buttonBindings) != 8 {
		t.Fatalf("bindings = %d, want one per control flag", len(buttonBindings))
	}

	names := map[string]bool{}
	codes := map[string]bool{}
	keys := map[int]bool{}
	for _, b := range buttonBindings {
		if names[b.name] {
			t.Errorf("duplicate button name %q", b.name)
		}
		if codes[string(b.code)] {
			t.Errorf("duplicate key code %q", b.code)
		}
		if keys[int(b.key)] {
			t.Errorf("duplicate engo key %v", b.key)
		}
		names[b.name] = true
		codes[string(b.code)] = true
		keys[int(b.key)] = true
	}
}

func TestDrawableFor_PrimitiveShapes(t *testing.T) {
	tests := []struct {
		name      string
		primitive scene.Primitive
		want      common.Drawable
	}{
		{"sphere is a circle", scene.Sphere, common.Circle{}},
		{"cylinder is a circle", scene.Cylinder, common.Circle{}},
		{"cone is a triangle", scene.Cone, common.Triangle{}},
		{"box is a rectangle", scene.Box, common.Rectangle{}},
		{"plane is a rectangle", scene.Plane, common.Rectangle{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := drawableFor(tt.primitive); got != tt.want {
				t.Errorf("drawableFor(%v) = %T, want %T", tt.primitive, got, tt.want)
			}
		})
	}
}
