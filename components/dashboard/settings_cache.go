package dashboard

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultCacheTTL is used when NewSettingsCache receives a non-positive TTL.
const DefaultCacheTTL = 5 * time.Minute

// SettingsCache memoizes settings reads so repeated layout loads skip the store.
// Every write through the Service invalidates the written key.
type SettingsCache struct {
	store *gocache.Cache

	mu   sync.Mutex
	gens map[string]uint64
}

type cachedSettings struct {
	blob  SettingsBlob
	found bool
}

// NewSettingsCache builds a cache with the provided TTL.
func NewSettingsCache(ttl time.Duration) *SettingsCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &SettingsCache{store: gocache.New(ttl, ttl*2), gens: map[string]uint64{}}
}

// Get returns the cached read for key. The second result reports whether the
// store had a record, the third whether the cache had an entry at all.
func (c *SettingsCache) Get(key SettingsKey) (SettingsBlob, bool, bool) {
	if c == nil {
		return nil, false, false
	}
	raw, ok := c.store.Get(cacheKey(key))
	if !ok {
		return nil, false, false
	}
	entry := raw.(cachedSettings)
	return append(SettingsBlob(nil), entry.blob...), entry.found, true
}

// Set caches a store read, including misses.
func (c *SettingsCache) Set(key SettingsKey, blob SettingsBlob, found bool) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(cacheKey(key), blob, found)
}

// Generation returns the invalidation counter for key. Capture it before
// reading the store and pass it to Fill.
func (c *SettingsCache) Generation(key SettingsKey) uint64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[cacheKey(key)]
}

// Fill caches a store read taken at generation gen. It is dropped when key was
// invalidated since, so a read racing a write never outlives the write.
func (c *SettingsCache) Fill(key SettingsKey, blob SettingsBlob, found bool, gen uint64) bool {
	if c == nil {
		return false
	}
	k := cacheKey(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[k] != gen {
		return false
	}
	c.put(k, blob, found)
	return true
}

// Invalidate drops the cached read for key.
func (c *SettingsCache) Invalidate(key SettingsKey) {
	if c == nil {
		return
	}
	k := cacheKey(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[k]++
	c.store.Delete(k)
}

func (c *SettingsCache) put(k string, blob SettingsBlob, found bool) {
	c.store.Set(k, cachedSettings{
		blob:  append(SettingsBlob(nil), blob...),
		found: found,
	}, gocache.DefaultExpiration)
}

// Len returns the number of cached entries.
func (c *SettingsCache) Len() int {
	if c == nil {
		return 0
	}
	return c.store.ItemCount()
}

func cacheKey(key SettingsKey) string {
	return key.OwnerID + "::" + key.Scope
}
