// Package assets locates model and texture files and caches their contents.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/tessellation-demo/internal/logger"
)

// ErrNotFound is returned when no search root holds the requested file.
var ErrNotFound = errors.New("asset not found")

// Manager reads files from a list of search roots.
// Roots are searched in reverse order (last added = highest priority).
type Manager struct {
	roots []string
	cache *Cache
	mu    sync.RWMutex
	log   *zap.Logger
}

// NewManager creates a manager searching the given roots.
func NewManager(roots ...string) *Manager {
	m := &Manager{
		cache: NewCache(),
		log:   logger.Named("assets"),
	}
	for _, r := range roots {
		m.AddRoot(r)
	}
	return m
}

// AddRoot adds a directory to search.
func (m *Manager) AddRoot(dir string) {
	m.mu.Lock()
	m.roots = append(m.roots, filepath.Clean(dir))
	m.mu.Unlock()
	m.log.Debug("search root added", zap.String("dir", dir))
}

// Roots returns the search roots in priority order, highest first.
func (m *Manager) Roots() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.roots))
	for i := len(m.roots) - 1; i >= 0; i-- {
		out = append(out, m.roots[i])
	}
	return out
}

// Resolve returns the on-disk location of path. Absolute paths are used as is.
func (m *Manager) Resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return path, nil
	}
	for _, root := range m.Roots() {
		full := filepath.Join(root, path)
		if _, err := os.Stat(full); err == nil {
			return full, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Load returns the contents of path, reading it on first use.
func (m *Manager) Load(path string) ([]byte, error) {
	key := filepath.Clean(path)
	if data, ok := m.cache.Get(key); ok {
		return data, nil
	}

	full, err := m.Resolve(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", full, err)
	}

	m.cache.Set(key, data)
	m.log.Debug("asset loaded", zap.String("path", full), zap.Int("bytes", len(data)))
	return data, nil
}

// Close drops every cached file.
func (m *Manager) Close() {
	hits, misses := m.cache.Stats()
	m.log.Debug("asset cache closed", zap.Int("hits", hits), zap.Int("misses", misses))
	m.cache.Clear()
}

// Cache is an in-memory cache of file contents.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	hits   int
	misses int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{data: make(map[string][]byte)}
}

// Get retrieves an item and records a hit or miss.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Len returns the number of cached items.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Clear empties the cache and resets its statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
