package content

import (
	"errors"
	"sync"
	"time"
)

// ErrCacheInUse is returned by New when the cache already belongs to another Loader.
var ErrCacheInUse = errors.New("cache is in use by another loader")

// Entry is a parsed post together with the modification time of its source.
type Entry struct {
	ModTime time.Time
	Post    *FeedPost
}

// Cache holds parsed posts keyed by file path. Entries are replaced
// wholesale when a file's modification time changes and are never evicted,
// so a Cache lives as long as the set of content it serves.
// Paths are only meaningful for one fs.FS and one Config, so a Cache
// serves a single Loader. A Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	owner   *Loader
	entries map[string]Entry
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Entry)}
}

// Get returns the entry stored for name.
func (c *Cache) Get(name string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[name]
	return e, ok
}

// Put stores post for name, replacing any previous entry.
func (c *Cache) Put(name string, modTime time.Time, post *FeedPost) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = Entry{ModTime: modTime, Post: post}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// claim binds the cache to l. It fails if another loader holds it.
func (c *Cache) claim(l *Loader) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.owner != nil && c.owner != l {
		return ErrCacheInUse
	}
	c.owner = l
	return nil
}
