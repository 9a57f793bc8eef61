// Package namecache provides a byte-level LRU decode cache for directory
// entry names.
//
// Directory entries store names as fixed 24-byte Windows-1252 fields;
// resolving a path decodes the same fields over and over. The cache is
// keyed on the raw field bytes and stores the decoded name along with its
// precomputed hash. Cache hits are zero-allocation: Go optimizes
// map[string]V lookups with []byte keys to avoid the []byte→string heap
// allocation.
//
// Concurrency: sharded with per-shard mutexes so tools scanning an image
// from several goroutines do not serialize on one lock.
package namecache

import (
	"container/list"
	"sync"

	"github.com/spaolacci/murmur3"
)

// defaultCapacity is the default maximum number of entries in the cache.
const defaultCapacity = 4096

// numShards must be a power of two for fast modulo via bitmask.
const numShards = 16

// cacheEntry stores the decoded result for a raw name field.
type cacheEntry struct {
	key  string // copy of the raw bytes as string (map key)
	name string // decoded name
	hash uint32
}

// lruCache is an LRU cache mapping raw name bytes to decoded results.
type lruCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List // front = most recently used
}

// newCache creates an LRU cache with the given capacity. A capacity of 0
// disables caching.
func newCache(capacity int) *lruCache {
	return &lruCache{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// lookup checks the cache for the given raw name bytes.
func (c *lruCache) lookup(data []byte) (string, uint32, bool) {
	if c.capacity == 0 {
		return "", 0, false
	}

	c.mu.Lock()
	elem, ok := c.items[string(data)]
	if !ok {
		c.mu.Unlock()
		return "", 0, false
	}
	c.order.MoveToFront(elem)
	entry := elem.Value.(*cacheEntry)
	name, hash := entry.name, entry.hash
	c.mu.Unlock()
	return name, hash, true
}

// store adds a decoded result, evicting the least-recently-used entry when
// the cache is at capacity. The string key is allocated on the miss path
// only.
func (c *lruCache) store(data []byte, name string, hash uint32) {
	if c.capacity == 0 {
		return
	}

	c.mu.Lock()
	if elem, ok := c.items[string(data)]; ok {
		c.order.MoveToFront(elem)
		entry := elem.Value.(*cacheEntry)
		entry.name = name
		entry.hash = hash
		c.mu.Unlock()
		return
	}

	key := string(data)

	if c.order.Len() >= c.capacity {
		back := c.order.Back()
		if back != nil {
			evicted := c.order.Remove(back).(*cacheEntry)
			delete(c.items, evicted.key)
		}
	}

	entry := &cacheEntry{key: key, name: name, hash: hash}
	elem := c.order.PushFront(entry)
	c.items[key] = elem
	c.mu.Unlock()
}

// setCapacity changes the cache capacity, evicting down to the new limit.
// A capacity of 0 disables caching and clears all entries.
func (c *lruCache) setCapacity(n int) {
	c.mu.Lock()
	c.capacity = n
	for c.order.Len() > n {
		back := c.order.Back()
		if back == nil {
			break
		}
		evicted := c.order.Remove(back).(*cacheEntry)
		delete(c.items, evicted.key)
	}
	c.mu.Unlock()
}

// reset clears all entries without changing capacity.
func (c *lruCache) reset() {
	c.mu.Lock()
	c.items = make(map[string]*list.Element, c.capacity)
	c.order.Init()
	c.mu.Unlock()
}

func (c *lruCache) len() int {
	c.mu.Lock()
	n := c.order.Len()
	c.mu.Unlock()
	return n
}

// shardedCache distributes entries across lruCache shards to reduce mutex
// contention under concurrent access.
type shardedCache struct {
	shards [numShards]*lruCache
}

func newShardedCache(capacity int) *shardedCache {
	sc := &shardedCache{}
	perShard := capacity / numShards
	if perShard < 1 && capacity > 0 {
		perShard = 1
	}
	for i := range sc.shards {
		sc.shards[i] = newCache(perShard)
	}
	return sc
}

// Hash returns the cache's name hash for raw field bytes. Callers that
// hash a field themselves pass the result to Store instead of rehashing.
func Hash(data []byte) uint32 {
	return murmur3.Sum32(data)
}

func shardFor(data []byte) int {
	return int(Hash(data) & (numShards - 1))
}

func (sc *shardedCache) lookup(data []byte) (string, uint32, bool) {
	return sc.shards[shardFor(data)].lookup(data)
}

func (sc *shardedCache) store(data []byte, name string, hash uint32) {
	sc.shards[shardFor(data)].store(data, name, hash)
}

func (sc *shardedCache) setCapacity(n int) {
	perShard := n / numShards
	if perShard < 1 && n > 0 {
		perShard = 1
	}
	for _, s := range sc.shards {
		s.setCapacity(perShard)
	}
}

func (sc *shardedCache) reset() {
	for _, s := range sc.shards {
		s.reset()
	}
}

func (sc *shardedCache) len() int {
	total := 0
	for _, s := range sc.shards {
		total += s.len()
	}
	return total
}

// global is the package-level singleton sharded cache.
var global = newShardedCache(defaultCapacity)

// Lookup checks the decode cache for the given raw name bytes. Returns the
// decoded name, its hash, and whether the entry was found.
// Zero-allocation on cache hit.
func Lookup(data []byte) (string, uint32, bool) {
	return global.lookup(data)
}

// Store adds a decoded result to the cache.
func Store(data []byte, name string, hash uint32) {
	global.store(data, name, hash)
}

// SetCapacity changes the cache capacity. Pass 0 to disable caching.
func SetCapacity(n int) {
	global.setCapacity(n)
}

// Reset clears all cached entries without changing capacity.
func Reset() {
	global.reset()
}

// Len returns the current number of cached entries.
func Len() int {
	return global.len()
}
