// pkg/render/terminal.go
package render

import (
	"image/color"
	"math"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-barnstorm/pkg/camera"
	"github.com/opd-ai/go-barnstorm/pkg/input"
	"github.com/opd-ai/go-barnstorm/pkg/scene"
)

// Glyphs per primitive for the character-cell projection.
var primitiveGlyphs = map[scene.Primitive]rune{
	scene.Box:      '#',
	scene.Cylinder: 'H',
	scene.Cone:     '^',
	scene.Sphere:   'O',
	scene.Plane:    '=',
}

// TerminalRenderer projects the scene into a character grid on a tcell
// screen: each mesh node becomes a block of glyphs sized by distance, drawn
// back to front. It doubles as the keyboard event source for terminal runs.
type TerminalRenderer struct {
	screen tcell.Screen

	status string
	events chan input.KeyEvent
	done   chan struct{}

	// groundHeight controls where the horizon fill switches from sky to
	// ground when the camera looks level.
	groundHeight float64
}

type cellDraw struct {
	col, row int
	half     int
	depth    float64
	glyph    rune
	style    tcell.Style
}

// NewTerminalRenderer wraps an existing tcell screen. Pass a
// SimulationScreen in tests.
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		events: make(chan input.KeyEvent, 64),
		done:   make(chan struct{}),
	}
}

// Init implements Renderer. It initializes the screen and starts the
// keyboard polling goroutine.
func (r *TerminalRenderer) Init() error {
	if err := r.screen.Init(); err != nil {
		return err
	}
	r.screen.HideCursor()
	go r.pollEvents()
	return nil
}

// Events returns press events translated from the terminal. Terminals never
// deliver key releases, so callers pair this with input.Sustainer.
func (r *TerminalRenderer) Events() <-chan input.KeyEvent {
	return r.events
}

// Done is closed when the user quits (Escape or Ctrl-C).
func (r *TerminalRenderer) Done() <-chan struct{} {
	return r.done
}

// Clear implements Renderer.
func (r *TerminalRenderer) Clear() {
	r.screen.Clear()
}

// RenderScene implements Renderer.
func (r *TerminalRenderer) RenderScene(root *scene.Node, cam camera.State, lens camera.Lens) {
	width, height := r.screen.Size()
	if width <= 0 || height <= 1 {
		return
	}
	viewRows := height - 1 // bottom row is the status line

	forward := cam.Target.Sub(cam.Position)
	if forward.Len() < 1e-9 {
		forward = mgl64.Vec3{0, 0, -1}
	}
	forward = forward.Normalize()
	right := forward.Cross(mgl64.Vec3{0, 1, 0})
	if right.Len() < 1e-9 {
		// Looking straight up or down; any horizontal right axis works.
		right = mgl64.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	up := right.Cross(forward)

	tanHalf := math.Tan(mgl64.DegToRad(lens.FOVDegrees) / 2)
	// Character cells are roughly twice as tall as wide.
	aspect := float64(width) / float64(viewRows) / 2

	r.drawHorizon(width, viewRows, cam, forward, up, tanHalf)

	var draws []cellDraw
	root.Walk(func(node *scene.Node, world scene.Transform) bool {
		if node.Mesh == nil {
			return true
		}
		// The sky dome surrounds everything; drawing its center is
		// meaningless in a character grid.
		if node.Mesh.Material.Shader != "" {
			return true
		}
		v := world.Position.Sub(cam.Position)
		depth := v.Dot(forward)
		if depth < lens.Near || depth > lens.Far {
			return true
		}
		x := v.Dot(right)
		y := v.Dot(up)
		sx := x / (depth * tanHalf * aspect)
		sy := y / (depth * tanHalf)
		col := int((sx*0.5 + 0.5) * float64(width))
		row := int((0.5 - sy*0.5) * float64(viewRows))

		radius := node.Mesh.Radius() * maxScale(world.Scale)
		half := int(radius / (depth * tanHalf) * float64(viewRows) / 2)
		if half > viewRows/2 {
			half = viewRows / 2
		}
		if col+half < 0 || col-half >= width || row+half < 0 || row-half >= viewRows {
			return true
		}
		draws = append(draws, cellDraw{
			col:   col,
			row:   row,
			half:  half,
			depth: depth,
			glyph: primitiveGlyphs[node.Mesh.Primitive],
			style: styleFor(node.Mesh.Material.Color),
		})
		return true
	})

	// Painter's order: far meshes first so near ones overwrite them.
	sort.Slice(draws, func(i, j int) bool { return draws[i].depth > draws[j].depth })
	for _, d := range draws {
		for dy := -d.half; dy <= d.half; dy++ {
			for dx := -d.half * 2; dx <= d.half*2; dx++ {
				c, rw := d.col+dx, d.row+dy
				if c >= 0 && c < width && rw >= 0 && rw < viewRows {
					r.screen.SetContent(c, rw, d.glyph, nil, d.style)
				}
			}
		}
	}

	r.drawStatus(width, height)
}

// drawHorizon fills rows below the projected horizon with ground texture.
func (r *TerminalRenderer) drawHorizon(width, viewRows int, cam camera.State, forward, up mgl64.Vec3, tanHalf float64) {
	// Project a level far point at the camera's height; its row is the
	// horizon for an infinitely distant flat ground.
	horizontal := mgl64.Vec3{forward.X(), 0, forward.Z()}
	if horizontal.Len() < 1e-9 {
		return
	}
	horizontal = horizontal.Normalize()
	sy := horizontal.Dot(up) / tanHalf
	horizonRow := int((0.5 - sy*0.5) * float64(viewRows))
	if horizonRow < 0 {
		horizonRow = 0
	}
	groundStyle := styleFor(color.RGBA{R: 70, G: 120, B: 60, A: 255})
	for row := horizonRow; row < viewRows; row++ {
		for col := 0; col < width; col++ {
			r.screen.SetContent(col, row, '.', nil, groundStyle)
		}
	}
}

func (r *TerminalRenderer) drawStatus(width, height int) {
	style := tcell.StyleDefault.Reverse(true)
	row := height - 1
	for col := 0; col < width; col++ {
		ch := ' '
		if col < len(r.status) {
			ch = rune(r.status[col])
		}
		r.screen.SetContent(col, row, ch, nil, style)
	}
}

// Present implements Renderer.
func (r *TerminalRenderer) Present() {
	r.screen.Show()
}

// Resize implements Renderer. The screen tracks its own size; a sync forces
// a full repaint after the terminal changed dimensions.
func (r *TerminalRenderer) Resize(width, height int) {
	r.screen.Sync()
}

// Close implements Renderer.
func (r *TerminalRenderer) Close() {
	r.screen.Fini()
}

// SetStatus implements StatusSink.
func (r *TerminalRenderer) SetStatus(line string) {
	r.status = line
}

func (r *TerminalRenderer) pollEvents() {
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			r.screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				close(r.done)
				return
			}
			if code, ok := translateKey(ev); ok {
				select {
				case r.events <- input.KeyEvent{Code: code, Pressed: true}:
				default:
					// Input faster than the frame loop drains; drop.
				}
			}
		}
	}
}

// translateKey maps a tcell key event to the demo's fixed key codes.
func translateKey(ev *tcell.EventKey) (input.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.KeyArrowUp, true
	case tcell.KeyDown:
		return input.KeyArrowDown, true
	case tcell.KeyLeft:
		return input.KeyArrowLeft, true
	case tcell.KeyRight:
		return input.KeyArrowRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return input.KeyA, true
		case 'd', 'D':
			return input.KeyD, true
		case 'w', 'W':
			return input.KeyW, true
		case 's', 'S':
			return input.KeyS, true
		}
	}
	return "", false
}

func styleFor(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func maxScale(s mgl64.Vec3) float64 {
	m := s.X()
	if s.Y() > m {
		m = s.Y()
	}
	if s.Z() > m {
		m = s.Z()
	}
	return m
}

// TerminalHoldWindow is the key sustain window terminal runs should use
// with input.Sustainer; longer than typical key-repeat intervals.
const TerminalHoldWindow = 250 * time.Millisecond
