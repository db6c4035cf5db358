package texture

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/tessellation-demo/internal/logger"
)

// ID is a GPU texture name. Zero means no texture.
type ID uint32

// ErrReleased is returned when loading through a cache that was already released.
var ErrReleased = errors.New("texture cache released")

// LoadError reports a texture that could not be read, decoded or uploaded.
type LoadError struct {
	Path string
	Err  error
}

// Error implements error.
func (e *LoadError) Error() string {
	return fmt.Sprintf("loading texture %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Source reads texture files.
type Source interface {
	Load(path string) ([]byte, error)
}

// Uploader creates and deletes GPU textures.
type Uploader interface {
	Upload(img *image.RGBA) (ID, error)
	Delete(id ID)
}

// Cache loads textures by path and owns the resulting handles. Each distinct
// path is uploaded once, so subsets sharing a file share a handle, and Release
// deletes every handle exactly once.
type Cache struct {
	source   Source
	uploader Uploader
	byPath   map[string]ID
	order    []ID
	released bool
	log      *zap.Logger
}

// NewCache creates a texture cache reading from source and uploading with uploader.
func NewCache(source Source, uploader Uploader) *Cache {
	return &Cache{
		source:   source,
		uploader: uploader,
		byPath:   make(map[string]ID),
		log:      logger.Named("texture"),
	}
}

// Load returns the handle for path, reading and uploading it on first use.
// Failures are returned as *LoadError and are not cached.
func (c *Cache) Load(path string) (ID, error) {
	if c.released {
		return 0, &LoadError{Path: path, Err: ErrReleased}
	}
	key := filepath.Clean(path)
	if id, ok := c.byPath[key]; ok {
		return id, nil
	}

	data, err := c.source.Load(key)
	if err != nil {
		return 0, &LoadError{Path: key, Err: err}
	}
	img, err := Decode(data, key)
	if err != nil {
		return 0, &LoadError{Path: key, Err: err}
	}
	return c.add(key, img)
}

func (c *Cache) add(key string, img *image.RGBA) (ID, error) {
	id, err := c.uploader.Upload(img)
	if err != nil {
		return 0, &LoadError{Path: key, Err: err}
	}
	c.byPath[key] = id
	c.order = append(c.order, id)
	c.log.Debug("texture loaded",
		zap.String("path", key),
		zap.Uint32("id", uint32(id)),
		zap.Int("width", img.Rect.Dx()),
		zap.Int("height", img.Rect.Dy()),
	)
	return id, nil
}

// Len returns the number of live textures.
func (c *Cache) Len() int {
	return len(c.order)
}

// Release deletes every texture the cache created. Further calls do nothing.
func (c *Cache) Release() {
	if c.released {
		return
	}
	c.released = true
	for _, id := range c.order {
		c.uploader.Delete(id)
	}
	c.log.Debug("textures released", zap.Int("count", len(c.order)))
	c.order = nil
	c.byPath = nil
}
