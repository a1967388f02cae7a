// Package texturecache implements the per-process shared texture cache:
// entries are loaded once, keyed by resolved path, and live until the cache
// itself is dropped. Load-and-insert is serialized by a mutex; sampling a
// texture that is already present never takes the lock, since textures are
// immutable once inserted.
package texturecache

import (
	"sync"
	"sync/atomic"

	"github.com/achilleasa/scenecore/log"
	"github.com/achilleasa/scenecore/scene"
)

var cacheLog = log.New("texturecache")

// Loader resolves a path to decoded texture data. Supplied by the driver so
// the cache never opens files itself.
type Loader func(path string) (*scene.Texture, error)

// Cache is a shared handle, passed through constructors rather than reached
// via a module-level singleton, so tests can substitute a per-test instance
// with a fake Loader.
type Cache struct {
	load Loader

	mu      sync.Mutex
	entries atomic.Value // map[string]*scene.Texture
}

// New returns a cache that resolves misses through load.
func New(load Loader) *Cache {
	c := &Cache{load: load}
	c.entries.Store(make(map[string]*scene.Texture))
	return c
}

// Get returns the texture at path, loading and inserting it on first
// request. Concurrent Gets for the same never-before-seen path serialize on
// the mutex; Gets for an already-cached path read a snapshot map without
// locking.
func (c *Cache) Get(path string) (*scene.Texture, error) {
	if tex, ok := c.entries.Load().(map[string]*scene.Texture)[path]; ok {
		return tex, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check: another goroutine may have inserted it while we waited.
	current := c.entries.Load().(map[string]*scene.Texture)
	if tex, ok := current[path]; ok {
		return tex, nil
	}

	tex, err := c.load(path)
	if err != nil {
		return nil, err
	}

	next := make(map[string]*scene.Texture, len(current)+1)
	for k, v := range current {
		next[k] = v
	}
	next[path] = tex
	c.entries.Store(next)
	cacheLog.Debugf("loaded texture %q (%dx%d)", path, tex.Width, tex.Height)
	return tex, nil
}

// Len reports the number of distinct textures currently cached.
func (c *Cache) Len() int {
	return len(c.entries.Load().(map[string]*scene.Texture))
}
