// Package overlay produces the on-screen statistics text.
package overlay

import (
	"fmt"
	"math"
	"time"
)

// FPSCounter counts frames over a fixed window and reports frames per second.
type FPSCounter struct {
	window  time.Duration
	frames  int
	elapsed time.Duration
	fps     int
}

// NewFPSCounter returns a counter that updates once per second.
func NewFPSCounter() *FPSCounter {
	return &FPSCounter{window: time.Second}
}

// Tick records one frame that took dt. It returns true when the reading changes window.
func (c *FPSCounter) Tick(dt time.Duration) bool {
	c.frames++
	c.elapsed += dt
	if c.elapsed < c.window {
		return false
	}
	c.fps = int(math.Round(float64(c.frames) / c.elapsed.Seconds()))
	c.frames = 0
	c.elapsed = 0
	return true
}

// FPS returns the last complete reading, 0 before the first window ends.
func (c *FPSCounter) FPS() int {
	return c.fps
}

// Reset discards the current window and reading.
func (c *FPSCounter) Reset() {
	c.frames = 0
	c.elapsed = 0
	c.fps = 0
}

// Label formats the overlay text for a reading.
func Label(fps int) string {
	return fmt.Sprintf("FPS: %d", fps)
}
