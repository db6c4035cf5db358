package overlay

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// face is the fixed-size bitmap font the overlay uses.
var face = basicfont.Face7x13

// Render rasterises text in white on a transparent background, enlarged by
// an integer scale. Color is applied later by the overlay shader's tint.
func Render(text string, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	metrics := face.Metrics()
	width := font.MeasureString(face, text).Ceil()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	if width == 0 {
		width = 1
	}

	src := image.NewRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  src,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.Point26_6{Y: metrics.Ascent},
	}
	d.DrawString(text)

	if scale == 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Rect, src, src.Rect, draw.Src, nil)
	return dst
}
