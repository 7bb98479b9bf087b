package backdrop

import (
	"image"
	"sync"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{"pkg": "backdrop"})

// Cache is a concurrency-safe store of decoded backgrounds keyed by
// path and size. Failed loads are cached too, so a bad path is reported once.
type Cache struct {
	mu    sync.RWMutex
	items map[cacheKey]*cacheEntry
}

type cacheKey struct {
	path string
	size int
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

func NewCache() *Cache {
	return &Cache{items: make(map[cacheKey]*cacheEntry)}
}

// Get returns the background for path at size, loading it on first use.
// An empty path yields (nil, nil).
func (c *Cache) Get(path string, size int) (*image.NRGBA, error) {
	if path == "" {
		return nil, nil
	}
	key := cacheKey{path, size}

	// Fast path: read lock
	c.mu.RLock()
	if e, ok := c.items[key]; ok {
		c.mu.RUnlock()
		return e.img, e.err
	}
	c.mu.RUnlock()

	img, err := Load(path, size)
	if err != nil {
		log.WithError(err).Warn("background unavailable")
	}

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[key]; ok {
		return e.img, e.err
	}
	c.items[key] = &cacheEntry{img: img, err: err}
	return img, err
}
