// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-barnstorm/pkg/input"
)

// Button names registered with engo, one per control flag.
var buttonBindings = []struct {
	name string
	code input.Key
	key  engo.Key
}{
	{"pitchUp", input.KeyArrowUp, engo.KeyArrowUp},
	{"pitchDown", input.KeyArrowDown, engo.KeyArrowDown},
	{"rollLeft", input.KeyArrowLeft, engo.KeyArrowLeft},
	{"rollRight", input.KeyArrowRight, engo.KeyArrowRight},
	{"yawLeft", input.KeyA, engo.KeyA},
	{"yawRight", input.KeyD, engo.KeyD},
	{"throttleUp", input.KeyW, engo.KeyW},
	{"throttleDown", input.KeyS, engo.KeyS},
}

// SetupInputBindings registers the fixed flight control keys with engo.
// Call once before engo.Run starts the scene.
func SetupInputBindings() {
	for _, b := range buttonBindings {
		engo.Input.RegisterButton(b.name, b.key)
	}
}

// PollControls forwards the current held state of every bound button into
// the tracker. engo reports true key state each frame, so press and
// release edges both land here.
func PollControls(tracker *input.Tracker) {
	for _, b := range buttonBindings {
		tracker.HandleKey(b.code, engo.Input.Button(b.name).Down())
	}
}
