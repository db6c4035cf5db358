// Package input translates SDL2 events into demo control events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/tessellation-demo/internal/engine/controls"
)

// Keymap binds scancodes to actions.
type Keymap map[sdl.Scancode]controls.Action

// DefaultKeymap returns the demo's key bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		sdl.SCANCODE_F:      controls.ActionToggleWireframe,
		sdl.SCANCODE_R:      controls.ActionToggleRotation,
		sdl.SCANCODE_P:      controls.ActionTogglePoints,
		sdl.SCANCODE_UP:     controls.ActionTessUp,
		sdl.SCANCODE_DOWN:   controls.ActionTessDown,
		sdl.SCANCODE_W:      controls.ActionMoveForward,
		sdl.SCANCODE_S:      controls.ActionMoveBackward,
		sdl.SCANCODE_A:      controls.ActionMoveLeft,
		sdl.SCANCODE_D:      controls.ActionMoveRight,
		sdl.SCANCODE_E:      controls.ActionMoveUp,
		sdl.SCANCODE_Q:      controls.ActionMoveDown,
		sdl.SCANCODE_F12:    controls.ActionScreenshot,
		sdl.SCANCODE_ESCAPE: controls.ActionQuit,
	}
}

// Input polls SDL and buffers the events of one frame.
type Input struct {
	keys   Keymap
	events []controls.Event
}

// New creates an input handler using keys.
func New(keys Keymap) *Input {
	return &Input{
		keys:   keys,
		events: make([]controls.Event, 0, 16),
	}
}

// Poll drains the SDL event queue and returns this frame's control events.
// The slice is reused by the next call.
func (i *Input) Poll() []controls.Event {
	i.events = i.events[:0]
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := i.translate(event); ok {
			i.events = append(i.events, e)
		}
	}
	return i.events
}

func (i *Input) translate(event sdl.Event) (controls.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return controls.Press(controls.ActionQuit), true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return controls.Resize(int(e.Data1), int(e.Data2)), true
		}

	case *sdl.KeyboardEvent:
		action, ok := i.keys[e.Keysym.Scancode]
		if !ok {
			return controls.Event{}, false
		}
		return controls.Event{
			Action:  action,
			Pressed: e.Type == sdl.KEYDOWN,
			Repeat:  e.Repeat != 0,
		}, true
	}
	return controls.Event{}, false
}
