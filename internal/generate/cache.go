package generate

import (
	"sync"

	"github.com/msalah0e/frond/internal/mlx"
)

// Cache holds at most one loaded model. A request for a different path
// replaces the entry unconditionally; there is no multi-entry eviction
// policy. The mutex is held across load-and-store so concurrent callers
// are serialized through the single slot.
type Cache struct {
	mu    sync.Mutex
	path  string
	model *mlx.Model
}

// Resolve returns the cached model when path matches the current entry,
// otherwise calls load and replaces the slot with its result.
func (c *Cache) Resolve(path string, load func() (*mlx.Model, error)) (*mlx.Model, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.path == path && c.model != nil {
		return c.model, nil
	}

	m, err := load()
	if err != nil {
		return nil, err
	}

	c.path = path
	c.model = m
	return m, nil
}

// Clear resets the cache to empty. Idempotent.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.path = ""
	c.model = nil
}
