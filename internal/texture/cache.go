package texture

import "sync"

// Resolver resolves a file path to a decoded texture.
type Resolver interface {
	Resolve(path string) (*Texture, error)
}

// Cache is a concurrency-safe texture cache. Cached textures are shared and
// must be treated as read-only.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	load  func(string) (*Texture, error)
}

type cacheEntry struct {
	tex *Texture
	err error
}

// NewCache creates a cache that decodes with LoadTexture.
func NewCache() *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		load:  LoadTexture,
	}
}

// Resolve loads and caches a texture by path. Load failures are cached too.
func (c *Cache) Resolve(path string) (*Texture, error) {
	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.tex, entry.err
	}
	c.mu.RUnlock()

	tex, err := c.load(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.tex, entry.err
	}
	c.items[path] = &cacheEntry{tex: tex, err: err}
	return tex, err
}

// Len returns the number of cached paths.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
