package assets

import (
	"sync"
)

// Cloner is implemented by values that know how to duplicate themselves.
type Cloner[T any] interface {
	Clone() T
}

type CacheOption[T any] func(*Cache[T])

// WithCloneFunc sets the duplication applied to values handed out by Get.
func WithCloneFunc[T any](clone func(T) T) CacheOption[T] {
	return func(c *Cache[T]) {
		c.clone = clone
	}
}

// Cache is a basic asset cache keyed by ResourceKey, meant to live inside
// the context of a Kind so the same asset is not converted twice.
//
// A single RWMutex guards the whole map: Get takes the read lock, every
// other operation the write lock. Calls block, but only for the duration of
// a map operation.
//
// Get hands out a duplicate of the stored value, never the value itself.
// WithCloneFunc takes precedence; otherwise a stored value implementing
// Cloner[T] is cloned. The check is made per value, so it also covers T being
// an interface. Anything else is a plain Go assignment, and pointer and slice
// values then share their backing data with the cache.
type Cache[T any] struct {
	mutex sync.RWMutex
	items map[ResourceKey]T
	clone func(T) T
}

func NewCache[T any](opts ...CacheOption[T]) *Cache[T] {
	c := &Cache[T]{
		items: make(map[ResourceKey]T),
	}

	for _, o := range opts {
		o(c)
	}
	return c
}

// Insert stores asset under key and returns the previous value, if any.
func (c *Cache[T]) Insert(key ResourceKey, asset T) (T, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	prev, ok := c.items[key]
	c.items[key] = asset
	return prev, ok
}

func (c *Cache[T]) Get(key ResourceKey) (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	v, ok := c.items[key]
	if !ok {
		return v, false
	}
	if c.clone != nil {
		return c.clone(v), true
	}
	if cl, isCloner := any(v).(Cloner[T]); isCloner {
		return cl.Clone(), true
	}
	return v, true
}

// Retain deletes every entry keep returns false for. keep may modify the
// value in place before deciding. It runs under the write lock: it must not
// do I/O or call back into the same cache.
func (c *Cache[T]) Retain(keep func(key ResourceKey, asset *T) bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for k, v := range c.items {
		if keep(k, &v) {
			c.items[k] = v
		} else {
			delete(c.items, k)
		}
	}
}

func (c *Cache[T]) ClearAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	clear(c.items)
}

func (c *Cache[T]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.items)
}

// Keys returns a sorted snapshot of the cached keys.
func (c *Cache[T]) Keys() []ResourceKey {
	c.mutex.RLock()
	keys := make([]ResourceKey, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	c.mutex.RUnlock()

	SortKeys(keys)
	return keys
}
