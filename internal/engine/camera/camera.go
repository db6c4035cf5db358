// Package camera provides the free-fly camera used to inspect the model.
//
// The camera is a plain value. Update returns a new State instead of
// mutating the old one, so the frame loop owns the only copy.
package camera

import (
	"time"

	"github.com/Faultbox/tessellation-demo/pkg/math"
)

// Movement records which movement keys are held.
type Movement struct {
	Forward, Backward bool
	Left, Right       bool
	Up, Down          bool
}

// Any reports whether any movement key is held.
func (m Movement) Any() bool {
	return m.Forward || m.Backward || m.Left || m.Right || m.Up || m.Down
}

// State is a look-at camera. Only Eye moves; Target stays fixed, so moving
// forward approaches the target and strafing circles around it.
type State struct {
	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3

	FOV    float32 // vertical field of view, radians
	Aspect float32
	Near   float32
	Far    float32
	Speed  float32 // units per second

	Moving Movement
}

// Direction returns the unit vector from Eye to Target.
func (s State) Direction() math.Vec3 {
	return s.Target.Sub(s.Eye).Normalize()
}

// Right returns the unit vector to the camera's right.
func (s State) Right() math.Vec3 {
	return s.Direction().Cross(s.Up).Normalize()
}

// Update moves Eye along the held directions for dt.
func Update(s State, dt time.Duration) State {
	if dt <= 0 || !s.Moving.Any() {
		return s
	}
	step := s.Speed * float32(dt.Seconds())
	dir := s.Direction()
	right := s.Right()

	eye := s.Eye
	if s.Moving.Forward {
		eye = eye.Add(dir.Scale(step))
	}
	if s.Moving.Backward {
		eye = eye.Sub(dir.Scale(step))
	}
	if s.Moving.Left {
		eye = eye.Sub(right.Scale(step))
	}
	if s.Moving.Right {
		eye = eye.Add(right.Scale(step))
	}
	if s.Moving.Up {
		eye = eye.Add(s.Up.Scale(step))
	}
	if s.Moving.Down {
		eye = eye.Sub(s.Up.Scale(step))
	}

	// Stepping onto the target would leave no view direction.
	if eye.Distance(s.Target) < 1e-4 {
		return s
	}
	s.Eye = eye
	return s
}

// WithViewport returns s with its aspect ratio set for a width x height viewport.
// Degenerate sizes, as reported while minimised, leave the aspect unchanged.
func WithViewport(s State, width, height int) State {
	if width > 0 && height > 0 {
		s.Aspect = float32(width) / float32(height)
	}
	return s
}

// View returns the view matrix.
func (s State) View() math.Mat4 {
	return math.LookAt(s.Eye, s.Target, s.Up)
}

// Projection returns the perspective projection matrix.
func (s State) Projection() math.Mat4 {
	return math.Perspective(s.FOV, s.Aspect, s.Near, s.Far)
}
