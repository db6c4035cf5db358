package overlay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFPSCounter(t *testing.T) {
	c := NewFPSCounter()
	assert.Equal(t, 0, c.FPS())

	for i := 0; i < 59; i++ {
		assert.False(t, c.Tick(16*time.Millisecond))
	}
	// 60 frames over 1.004s.
	assert.True(t, c.Tick(60*time.Millisecond))
	assert.Equal(t, 60, c.FPS())

	assert.False(t, c.Tick(100*time.Millisecond))
	assert.Equal(t, 60, c.FPS(), "reading holds until the next window closes")
}

func TestFPSCounterSlowFrame(t *testing.T) {
	c := NewFPSCounter()
	assert.True(t, c.Tick(2*time.Second))
	assert.Equal(t, 1, c.FPS())

	c.Reset()
	assert.Equal(t, 0, c.FPS())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "FPS: 144", Label(144))
}

func TestRenderSize(t *testing.T) {
	img := Render("FPS: 60", 1)
	assert.Equal(t, 7*7, img.Rect.Dx())
	assert.Equal(t, 13, img.Rect.Dy())

	big := Render("FPS: 60", 2)
	assert.Equal(t, 2*img.Rect.Dx(), big.Rect.Dx())
	assert.Equal(t, 2*img.Rect.Dy(), big.Rect.Dy())
}

func TestRenderDrawsGlyphs(t *testing.T) {
	img := Render("F", 1)

	covered := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			covered++
		}
	}
	assert.Positive(t, covered)
	assert.Less(t, covered, img.Rect.Dx()*img.Rect.Dy())
}

func TestRenderEmpty(t *testing.T) {
	img := Render("", 0)
	assert.Equal(t, 1, img.Rect.Dx())
}
