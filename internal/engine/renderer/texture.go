package renderer

import (
	"fmt"
	"image"
	"image/color"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/tessellation-demo/internal/engine/texture"
)

// Upload creates a mipmapped texture from img. Rows are flipped in place so
// that texture coordinate v=0 addresses the bottom of the image.
// It satisfies texture.Uploader.
func (r *Renderer) Upload(img *image.RGBA) (texture.ID, error) {
	texture.FlipVertical(img)

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &id)
		return 0, fmt.Errorf("uploading %dx%d texture: GL error 0x%x", img.Rect.Dx(), img.Rect.Dy(), code)
	}
	return texture.ID(id), nil
}

// Delete deletes a texture created by Upload. It satisfies texture.Uploader.
func (r *Renderer) Delete(id texture.ID) {
	name := uint32(id)
	gl.DeleteTextures(1, &name)
}

func uploadSolid(red, green, blue, alpha uint8) uint32 {
	img := texture.Solid(color.RGBA{red, green, blue, alpha})
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}
