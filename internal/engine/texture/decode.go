// Package texture decodes texture images and owns the GPU handles created
// from them.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

// decoders maps lower-case file extensions to image decoders. Dispatching on
// the extension matters for TGA, which has no magic number to sniff.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".png":  png.Decode,
	".bmp":  bmp.Decode,
	".tga":  tga.Decode,
}

// Decode decodes image data, choosing the decoder from the file name's extension.
// Unknown extensions fall back to format sniffing.
func Decode(data []byte, name string) (*image.RGBA, error) {
	r := bytes.NewReader(data)

	var img image.Image
	var err error
	if dec, ok := decoders[strings.ToLower(filepath.Ext(name))]; ok {
		img, err = dec(r)
	} else {
		img, _, err = image.Decode(r)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA converts any image.Image to *image.RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}

// Solid returns a 1x1 image of the given color, bound in place of missing maps.
func Solid(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return img
}

// FlipVertical flips an image in place. OpenGL expects the first row of
// texel data to be the bottom of the image.
func FlipVertical(img *image.RGBA) {
	h := img.Rect.Dy()
	rowSize := img.Rect.Dx() * 4
	tmp := make([]byte, rowSize)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : y*img.Stride+rowSize]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-1-y)*img.Stride+rowSize]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}
