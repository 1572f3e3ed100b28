// Package cache provides a sharded LRU cache with per-entry TTL expiry.
package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/scoop-service/internal/metrics"
)

const defaultShards = 16

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// Sharded distributes string keys across LRU shards to reduce lock contention.
type Sharded[V any] struct {
	shards    []*lru[V]
	shardMask uint32
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// New creates a cache holding about capacity entries for ttl each.
// numShards is rounded up to a power of two.
func New[V any](capacity int, ttl time.Duration, numShards int) *Sharded[V] {
	if numShards <= 0 {
		numShards = defaultShards
	}
	n := 1
	for n < numShards {
		n *= 2
	}

	perShard := capacity / n
	if perShard < 1 {
		perShard = 1
	}

	c := &Sharded[V]{
		shards:    make([]*lru[V], n),
		shardMask: uint32(n - 1),
		stopCh:    make(chan struct{}),
	}
	for i := range c.shards {
		c.shards[i] = newLRU[V](perShard, ttl)
	}

	go c.cleanupLoop()
	return c
}

func (c *Sharded[V]) shard(key string) *lru[V] {
	h := fnv.New32a()
	h.Write([]byte(key))
	return c.shards[h.Sum32()&c.shardMask]
}

// Get returns the value for key if present and not expired.
func (c *Sharded[V]) Get(key string) (V, bool) {
	return c.shard(key).get(key)
}

// Set stores value under key, evicting the least recently used entry of a full shard.
func (c *Sharded[V]) Set(key string, value V) {
	c.shard(key).set(key, value)
}

// Invalidate removes key.
func (c *Sharded[V]) Invalidate(key string) {
	c.shard(key).invalidate(key)
}

// Clear removes every entry.
func (c *Sharded[V]) Clear() {
	for _, s := range c.shards {
		s.clear()
	}
	metrics.RecordCacheOperation("clear", "success")
}

// Metrics returns counters aggregated over all shards.
func (c *Sharded[V]) Metrics() Metrics {
	var total Metrics
	for _, s := range c.shards {
		m := s.metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

// Stop ends the background cleanup. It is safe to call more than once.
func (c *Sharded[V]) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *Sharded[V]) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, s := range c.shards {
				s.removeExpired(time.Now())
			}
		case <-c.stopCh:
			return
		}
	}
}

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	prev      *entry[V]
	next      *entry[V]
}

// lru is one shard: a map plus a doubly linked list ordered by recency.
type lru[V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*entry[V]
	head     *entry[V]
	tail     *entry[V]

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

func newLRU[V any](capacity int, ttl time.Duration) *lru[V] {
	return &lru[V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry[V], capacity),
	}
}

func (c *lru[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "miss")
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		c.removeEntry(e)
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "expired")
		return zero, false
	}

	c.moveToFront(e)
	c.hits.Add(1)
	metrics.RecordCacheOperation("get", "hit")
	return e.value, true
}

func (c *lru[V]) set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = time.Now().Add(c.ttl)
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value, expiresAt: time.Now().Add(c.ttl)}
	c.items[key] = e
	c.addToFront(e)

	if len(c.items) > c.capacity {
		c.removeEntry(c.tail)
		c.evictions.Add(1)
		metrics.RecordCacheOperation("evict", "capacity")
	}
	metrics.RecordCacheOperation("set", "success")
}

func (c *lru[V]) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[key]; ok {
		c.removeEntry(e)
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

func (c *lru[V]) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entry[V], c.capacity)
	c.head = nil
	c.tail = nil
}

func (c *lru[V]) removeExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.items {
		if now.After(e.expiresAt) {
			c.removeEntry(e)
		}
	}
}

func (c *lru[V]) metrics() Metrics {
	c.mu.Lock()
	size := len(c.items)
	c.mu.Unlock()
	return Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      size,
		Capacity:  c.capacity,
	}
}

func (c *lru[V]) removeEntry(e *entry[V]) {
	delete(c.items, e.key)
	c.unlink(e)
}

func (c *lru[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.addToFront(e)
}

func (c *lru[V]) addToFront(e *entry[V]) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lru[V]) unlink(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}
