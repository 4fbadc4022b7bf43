package driver

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"routescan/internal/extract"
	"routescan/internal/source"
)

// Cache is an in-memory LRU of unit payloads in front of an optional disk cache.
type Cache struct {
	mem  *lru.Cache[string, *UnitPayload]
	disk *DiskCache
}

// NewCache builds a cache; entries <= 0 disables the memory layer and a nil
// disk disables persistence.
func NewCache(entries int, disk *DiskCache) (*Cache, error) {
	c := &Cache{disk: disk}
	if entries > 0 {
		mem, err := lru.New[string, *UnitPayload](entries)
		if err != nil {
			return nil, err
		}
		c.mem = mem
	}
	return c, nil
}

// Get looks up key in memory, then on disk, promoting disk hits.
func (c *Cache) Get(key string, file source.FileID) (extract.Result, bool, error) {
	if c == nil {
		return extract.Result{}, false, nil
	}
	if c.mem != nil {
		if p, ok := c.mem.Get(key); ok {
			return p.result(file), true, nil
		}
	}
	p, ok, err := c.disk.Get(key)
	if err != nil || !ok {
		return extract.Result{}, false, err
	}
	if c.mem != nil {
		c.mem.Add(key, p)
	}
	return p.result(file), true, nil
}

// Put stores res under key in both layers.
func (c *Cache) Put(key string, res extract.Result) error {
	if c == nil {
		return nil
	}
	p := payloadOf(res)
	if c.mem != nil {
		c.mem.Add(key, p)
	}
	return c.disk.Put(key, p)
}

// Len reports the number of entries held in memory.
func (c *Cache) Len() int {
	if c == nil || c.mem == nil {
		return 0
	}
	return c.mem.Len()
}
