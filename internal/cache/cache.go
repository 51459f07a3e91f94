package cache

import (
	"container/list"
	"sync"
	"time"
)

// LRUCache is a size-bounded cache whose entries also expire after ttl.
// A non-positive ttl disables the cache: Get always misses and Put is a no-op.
type LRUCache[K comparable, V any] struct {
	mu        sync.Mutex
	size      int
	ttl       time.Duration
	evictList *list.List
	items     map[K]*list.Element
	now       func() time.Time
}

type entry[K comparable, V any] struct {
	key     K
	value   V
	expires time.Time
}

func NewLRUCache[K comparable, V any](size int, ttl time.Duration) *LRUCache[K, V] {
	if size <= 0 {
		size = 1
	}
	return &LRUCache[K, V]{
		size:      size,
		ttl:       ttl,
		evictList: list.New(),
		items:     make(map[K]*list.Element),
		now:       time.Now,
	}
}

func (c *LRUCache[K, V]) Enabled() bool {
	return c != nil && c.ttl > 0
}

func (c *LRUCache[K, V]) Get(key K) (value V, ok bool) {
	if !c.Enabled() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ele, hit := c.items[key]
	if !hit {
		return
	}
	ent := ele.Value.(*entry[K, V])
	if !c.now().Before(ent.expires) {
		c.removeElement(ele)
		return
	}
	c.evictList.MoveToFront(ele)
	return ent.value, true
}

func (c *LRUCache[K, V]) Put(key K, value V) {
	if !c.Enabled() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(c.ttl)
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		ent := ele.Value.(*entry[K, V])
		ent.value = value
		ent.expires = expires
		return
	}

	ele := c.evictList.PushFront(&entry[K, V]{key: key, value: value, expires: expires})
	c.items[key] = ele

	if c.evictList.Len() > c.size {
		c.removeOldest()
	}
}

// Remove drops a single key.
func (c *LRUCache[K, V]) Remove(key K) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ele, hit := c.items[key]; hit {
		c.removeElement(ele)
	}
}

// Purge drops every entry.
func (c *LRUCache[K, V]) Purge() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictList.Init()
	c.items = make(map[K]*list.Element)
}

func (c *LRUCache[K, V]) removeOldest() {
	ele := c.evictList.Back()
	if ele != nil {
		c.removeElement(ele)
	}
}

func (c *LRUCache[K, V]) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	kv := e.Value.(*entry[K, V])
	delete(c.items, kv.key)
}
