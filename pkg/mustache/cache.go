package mustache

import "sync"

// Cache memoizes parsed node trees by exact template text. Trees are
// immutable, so a cached tree may be rendered concurrently; the cache itself
// is safe for concurrent use. There is no eviction: callers that reload
// templates from disk should key invalidation on file change and construct a
// fresh Cache.
type Cache struct {
	mu    sync.RWMutex
	trees map[string][]Node
}

// NewCache returns an empty template cache.
func NewCache() *Cache {
	return &Cache{trees: make(map[string][]Node)}
}

// Render parses template, or reuses a previously parsed tree for identical
// text, and renders it against root.
func (c *Cache) Render(template string, root Value) (string, error) {
	c.mu.RLock()
	tree, ok := c.trees[template]
	c.mu.RUnlock()

	if !ok {
		var err error
		tree, err = Parse(template)
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.trees[template] = tree
		c.mu.Unlock()
	}
	return Render(tree, root), nil
}
