// pkg/render/terminal_test.go
package render

import (
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-barnstorm/pkg/camera"
	"github.com/opd-ai/go-barnstorm/pkg/input"
	"github.com/opd-ai/go-barnstorm/pkg/scene"
)

func newTestScreen(t *testing.T) (tcell.SimulationScreen, *TerminalRenderer) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	r := NewTerminalRenderer(screen)
	if err := r.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(r.Close)
	screen.SetSize(80, 24)
	return screen, r
}

func testLens() camera.Lens {
	return camera.Lens{FOVDegrees: 60, Aspect: 80.0 / 24, Near: 1, Far: 1000}
}

func TestTerminalRenderer_RenderScene_DrawsMeshGlyph(t *testing.T) {
	screen, r := newTestScreen(t)

	root := scene.NewNode("root")
	box := scene.NewMeshNode("box", scene.NewBox(4, 4, 4, color.RGBA{R: 200, A: 255}))
	box.Position = mgl64.Vec3{0, 10, -10}
	root.AddChild(box)

	cam := camera.State{
		Position: mgl64.Vec3{0, 10, 0},
		Target:   mgl64.Vec3{0, 10, -10},
	}
	r.Clear()
	r.RenderScene(root, cam, testLens())

	// The box is dead ahead: its glyph lands at the view center.
	primary, _, _, _ := screen.GetContent(40, 11)
	if primary != '#' {
		t.Errorf("center cell = %q, want box glyph '#'", primary)
	}
}

func TestTerminalRenderer_RenderScene_HorizonFillsLowerHalf(t *testing.T) {
	screen, r := newTestScreen(t)

	cam := camera.State{
		Position: mgl64.Vec3{0, 50, 0},
		Target:   mgl64.Vec3{0, 50, -100},
	}
	r.Clear()
	r.RenderScene(scene.NewNode("empty"), cam, testLens())

	// Level flight: ground texture from mid-view down, sky above.
	if primary, _, _, _ := screen.GetContent(10, 20); primary != '.' {
		t.Errorf("lower view cell = %q, want ground '.'", primary)
	}
	if primary, _, _, _ := screen.GetContent(10, 2); primary == '.' {
		t.Error("upper view cell shows ground while looking level")
	}
}

func TestTerminalRenderer_RenderScene_CullsOutsideLensRange(t *testing.T) {
	screen, r := newTestScreen(t)

	root := scene.NewNode("root")
	tooFar := scene.NewMeshNode("far", scene.NewBox(4, 4, 4, color.RGBA{A: 255}))
	tooFar.Position = mgl64.Vec3{0, 50, -5000}
	behind := scene.NewMeshNode("behind", scene.NewBox(4, 4, 4, color.RGBA{A: 255}))
	behind.Position = mgl64.Vec3{0, 50, 100}
	root.AddChild(tooFar, behind)

	cam := camera.State{
		Position: mgl64.Vec3{0, 50, 0},
		Target:   mgl64.Vec3{0, 50, -100},
	}
	r.Clear()
	r.RenderScene(root, cam, testLens())

	width, height := screen.Size()
	for row := 0; row < height-1; row++ {
		for col := 0; col < width; col++ {
			if primary, _, _, _ := screen.GetContent(col, row); primary == '#' {
				t.Fatalf("culled mesh drawn at (%d,%d)", col, row)
			}
		}
	}
}

// Near meshes overwrite far ones regardless of walk order.
func TestTerminalRenderer_RenderScene_PainterOrder(t *testing.T) {
	screen, r := newTestScreen(t)

	root := scene.NewNode("root")
	near := scene.NewMeshNode("near", scene.NewBox(6, 6, 6, color.RGBA{A: 255}))
	near.Position = mgl64.Vec3{0, 10, -15}
	far := scene.NewMeshNode("far", scene.NewCylinder(3, 6, color.RGBA{A: 255}))
	far.Position = mgl64.Vec3{0, 10, -30}
	// Deliberately add the near mesh first.
	root.AddChild(near, far)

	cam := camera.State{
		Position: mgl64.Vec3{0, 10, 0},
		Target:   mgl64.Vec3{0, 10, -10},
	}
	r.Clear()
	r.RenderScene(root, cam, testLens())

	primary, _, _, _ := screen.GetContent(40, 11)
	if primary != '#' {
		t.Errorf("center cell = %q, want the near box to win the depth sort", primary)
	}
}

func TestTerminalRenderer_RenderScene_SkipsShaderMaterials(t *testing.T) {
	screen, r := newTestScreen(t)

	world := scene.BuildWorld(scene.DefaultWorldOptions())
	cam := camera.State{
		Position: mgl64.Vec3{0, 40, 60},
		Target:   mgl64.Vec3{0, 20, 0},
	}
	r.Clear()
	r.RenderScene(world.Root, cam, testLens())

	// The sky dome encloses the camera; if it were projected it would paint
	// a sphere glyph over the whole view.
	width, height := screen.Size()
	for row := 0; row < height-1; row++ {
		for col := 0; col < width; col++ {
			if primary, _, _, _ := screen.GetContent(col, row); primary == 'O' {
				t.Fatalf("sky dome projected at (%d,%d)", col, row)
			}
		}
	}
}

func TestTerminalRenderer_SetStatus_DrawnOnBottomRow(t *testing.T) {
	screen, r := newTestScreen(t)

	r.SetStatus("THR  50%")
	cam := camera.State{
		Position: mgl64.Vec3{0, 50, 0},
		Target:   mgl64.Vec3{0, 50, -100},
	}
	r.Clear()
	r.RenderScene(scene.NewNode("empty"), cam, testLens())

	_, height := screen.Size()
	got := make([]rune, 0, 8)
	for col := 0; col < 8; col++ {
		primary, _, _, _ := screen.GetContent(col, height-1)
		got = append(got, primary)
	}
	if string(got) != "THR  50%" {
		t.Errorf("status row = %q, want %q", string(got), "THR  50%")
	}
}

func TestTerminalRenderer_PollEvents_TranslatesKeys(t *testing.T) {
	screen, r := newTestScreen(t)

	screen.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)

	want := []input.Key{input.KeyArrowUp, input.KeyW}
	for _, code := range want {
		select {
		case ev := <-r.Events():
			if ev.Code != code || !ev.Pressed {
				t.Fatalf("event = %+v, want press of %q", ev, code)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("no event for %q", code)
		}
	}
}

func TestTerminalRenderer_PollEvents_EscapeClosesDone(t *testing.T) {
	screen, r := newTestScreen(t)

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	select {
	case <-r.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Done not closed on escape")
	}
}

func TestTranslateKey_Mapping(t *testing.T) {
	tests := []struct {
		name  string
		key   tcell.Key
		r     rune
		want  input.Key
		bound bool
	}{
		{"up arrow", tcell.KeyUp, 0, input.KeyArrowUp, true},
		{"down arrow", tcell.KeyDown, 0, input.KeyArrowDown, true},
		{"left arrow", tcell.KeyLeft, 0, input.KeyArrowLeft, true},
		{"right arrow", tcell.KeyRight, 0, input.KeyArrowRight, true},
		{"lowercase a", tcell.KeyRune, 'a', input.KeyA, true},
		{"uppercase D", tcell.KeyRune, 'D', input.KeyD, true},
		{"lowercase w", tcell.KeyRune, 'w', input.KeyW, true},
		{"lowercase s", tcell.KeyRune, 's', input.KeyS, true},
		{"unbound rune", tcell.KeyRune, 'q', "", false},
		{"unbound key", tcell.KeyHome, 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := tcell.NewEventKey(tt.key, tt.r, tcell.ModNone)
			code, ok := translateKey(ev)
			if ok != tt.bound || code != tt.want {
				t.Errorf("translateKey = (%q, %v), want (%q, %v)", code, ok, tt.want, tt.bound)
			}
		})
	}
}
