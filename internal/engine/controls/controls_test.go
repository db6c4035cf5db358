package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/tessellation-demo/internal/engine/camera"
)

func initial() State {
	return State{
		TessFactor: 10,
		Limits:     Limits{Min: 1, Max: 64, Step: 0.5},
		Camera:     camera.State{Aspect: 1},
	}
}

func TestToggles(t *testing.T) {
	s := Apply(initial(), []Event{Press(ActionToggleWireframe), Press(ActionToggleRotation)})
	assert.True(t, s.Wireframe)
	assert.True(t, s.Rotating)

	s = Apply(s, []Event{Press(ActionToggleWireframe), Release(ActionToggleWireframe)})
	assert.False(t, s.Wireframe)
	assert.True(t, s.Rotating)
}

func TestTogglePoints(t *testing.T) {
	s := Apply(initial(), []Event{Press(ActionTogglePoints)})
	assert.True(t, s.Points)
	assert.False(t, s.Wireframe)

	repeat := Press(ActionTogglePoints)
	repeat.Repeat = true
	s = Apply(s, []Event{repeat})
	assert.True(t, s.Points)

	s = Apply(s, []Event{Press(ActionTogglePoints)})
	assert.False(t, s.Points)
}

func TestTogglesIgnoreRepeat(t *testing.T) {
	repeat := Press(ActionToggleWireframe)
	repeat.Repeat = true

	s := Apply(initial(), []Event{Press(ActionToggleWireframe), repeat, repeat})
	assert.True(t, s.Wireframe)
}

func TestTessellationSteps(t *testing.T) {
	s := Apply(initial(), []Event{Press(ActionTessUp), Press(ActionTessUp)})
	assert.Equal(t, float32(11), s.TessFactor)

	s = Apply(s, []Event{Press(ActionTessDown)})
	assert.Equal(t, float32(10.5), s.TessFactor)
}

func TestTessellationRepeats(t *testing.T) {
	repeat := Press(ActionTessUp)
	repeat.Repeat = true

	s := Apply(initial(), []Event{Press(ActionTessUp), repeat, repeat})
	assert.Equal(t, float32(11.5), s.TessFactor)
}

func TestTessellationBounds(t *testing.T) {
	s := initial()
	s.TessFactor = 64
	s = Apply(s, []Event{Press(ActionTessUp)})
	assert.Equal(t, float32(64), s.TessFactor)

	s.TessFactor = 1
	s = Apply(s, []Event{Press(ActionTessDown)})
	assert.Equal(t, float32(1), s.TessFactor)

	up := make([]Event, 200)
	for i := range up {
		up[i] = Press(ActionTessUp)
	}
	s = Apply(initial(), up)
	assert.Equal(t, float32(64), s.TessFactor)
}

func TestTessellationStepClamps(t *testing.T) {
	s := initial()
	s.TessFactor = 63.8
	s = Apply(s, []Event{Press(ActionTessUp)})
	assert.Equal(t, float32(64), s.TessFactor)

	s.TessFactor = 1.2
	s = Apply(s, []Event{Press(ActionTessDown)})
	assert.Equal(t, float32(1), s.TessFactor)
}

func TestMovementHeldUntilRelease(t *testing.T) {
	s := Apply(initial(), []Event{Press(ActionMoveForward), Press(ActionMoveLeft)})
	assert.Equal(t, camera.Movement{Forward: true, Left: true}, s.Camera.Moving)

	s = Apply(s, nil)
	assert.True(t, s.Camera.Moving.Forward)

	s = Apply(s, []Event{Release(ActionMoveForward)})
	assert.Equal(t, camera.Movement{Left: true}, s.Camera.Moving)
}

func TestAllMovementActions(t *testing.T) {
	events := []Event{
		Press(ActionMoveForward), Press(ActionMoveBackward),
		Press(ActionMoveLeft), Press(ActionMoveRight),
		Press(ActionMoveUp), Press(ActionMoveDown),
	}
	s := Apply(initial(), events)
	assert.Equal(t, camera.Movement{
		Forward: true, Backward: true,
		Left: true, Right: true,
		Up: true, Down: true,
	}, s.Camera.Moving)
}

func TestOneShotRequests(t *testing.T) {
	s := Apply(initial(), []Event{Press(ActionScreenshot), Resize(800, 400)})
	assert.True(t, s.Screenshot)
	assert.True(t, s.Resized)
	assert.Equal(t, 800, s.Width)
	assert.Equal(t, 400, s.Height)
	assert.InDelta(t, 2, s.Camera.Aspect, 1e-6)

	s = Apply(s, nil)
	assert.False(t, s.Screenshot)
	assert.False(t, s.Resized)
	assert.Equal(t, 800, s.Width)
}

func TestResizeIgnoresEmptyViewport(t *testing.T) {
	s := Apply(initial(), []Event{Resize(0, 0)})
	assert.False(t, s.Resized)
	assert.Equal(t, float32(1), s.Camera.Aspect)
}

func TestQuitLatches(t *testing.T) {
	s := Apply(initial(), []Event{Press(ActionQuit)})
	assert.True(t, s.Quit)

	s = Apply(s, nil)
	assert.True(t, s.Quit)
}

func TestApplyLeavesInputUntouched(t *testing.T) {
	in := initial()
	_ = Apply(in, []Event{Press(ActionTessUp), Press(ActionMoveUp), Press(ActionToggleRotation)})

	assert.Equal(t, initial(), in)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "tess-up", ActionTessUp.String())
	assert.Equal(t, "resize", ActionResize.String())
	assert.Equal(t, "toggle-points", ActionTogglePoints.String())
	assert.Equal(t, "unknown", Action(99).String())
}
