// Package controls turns input events into demo state changes.
//
// Apply is a pure function: the window layer produces Events, Apply folds
// them into a new State, and the frame loop acts on the result.
package controls

import (
	"github.com/Faultbox/tessellation-demo/internal/engine/camera"
)

// Action is a demo command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionToggleWireframe
	ActionToggleRotation
	ActionTessUp
	ActionTessDown
	ActionMoveForward
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionScreenshot
	ActionQuit
	ActionResize
	ActionTogglePoints
)

var actionNames = [...]string{
	ActionNone:            "none",
	ActionToggleWireframe: "toggle-wireframe",
	ActionToggleRotation:  "toggle-rotation",
	ActionTessUp:          "tess-up",
	ActionTessDown:        "tess-down",
	ActionMoveForward:     "move-forward",
	ActionMoveBackward:    "move-backward",
	ActionMoveLeft:        "move-left",
	ActionMoveRight:       "move-right",
	ActionMoveUp:          "move-up",
	ActionMoveDown:        "move-down",
	ActionScreenshot:      "screenshot",
	ActionQuit:            "quit",
	ActionResize:          "resize",
	ActionTogglePoints:    "toggle-points",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Event is one input occurrence. Pressed is false for key releases; Repeat
// marks auto-repeated presses of a held key. Width and Height are set for
// ActionResize.
type Event struct {
	Action  Action
	Pressed bool
	Repeat  bool
	Width   int
	Height  int
}

// Press returns a key-down event for a.
func Press(a Action) Event { return Event{Action: a, Pressed: true} }

// Release returns a key-up event for a.
func Release(a Action) Event { return Event{Action: a} }

// Resize returns a viewport resize event.
func Resize(width, height int) Event {
	return Event{Action: ActionResize, Width: width, Height: height}
}

// Limits bounds the tessellation factor.
type Limits struct {
	Min, Max, Step float32
}

// State is everything the keyboard controls.
type State struct {
	Wireframe  bool
	Rotating   bool
	Points     bool // overlay the patch control points
	TessFactor float32
	Limits     Limits
	Camera     camera.State

	// One-shot requests, valid only for the frame that produced them.
	Quit       bool
	Screenshot bool
	Resized    bool
	Width      int
	Height     int
}

// Apply folds events into s and returns the result. One-shot requests from
// the previous frame are cleared first, except Quit which latches.
func Apply(s State, events []Event) State {
	s.Screenshot = false
	s.Resized = false

	for _, e := range events {
		if e.Action == ActionResize {
			if e.Width > 0 && e.Height > 0 {
				s.Resized = true
				s.Width, s.Height = e.Width, e.Height
				s.Camera = camera.WithViewport(s.Camera, e.Width, e.Height)
			}
			continue
		}

		if held := movement(&s.Camera.Moving, e.Action); held != nil {
			*held = e.Pressed
			continue
		}
		if !e.Pressed {
			continue
		}

		switch e.Action {
		case ActionToggleWireframe:
			if !e.Repeat {
				s.Wireframe = !s.Wireframe
			}
		case ActionToggleRotation:
			if !e.Repeat {
				s.Rotating = !s.Rotating
			}
		case ActionTogglePoints:
			if !e.Repeat {
				s.Points = !s.Points
			}
		case ActionTessUp:
			s.TessFactor = min(s.TessFactor+s.Limits.Step, s.Limits.Max)
		case ActionTessDown:
			s.TessFactor = max(s.TessFactor-s.Limits.Step, s.Limits.Min)
		case ActionScreenshot:
			if !e.Repeat {
				s.Screenshot = true
			}
		case ActionQuit:
			s.Quit = true
		}
	}
	return s
}

// movement returns the held-key flag for a movement action, or nil.
func movement(m *camera.Movement, a Action) *bool {
	switch a {
	case ActionMoveForward:
		return &m.Forward
	case ActionMoveBackward:
		return &m.Backward
	case ActionMoveLeft:
		return &m.Left
	case ActionMoveRight:
		return &m.Right
	case ActionMoveUp:
		return &m.Up
	case ActionMoveDown:
		return &m.Down
	}
	return nil
}
