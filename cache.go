// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

package urkel

// CacheExtra is an opaque slot an external Cache capability may use to
// track its own eviction-list bookkeeping (e.g. an LRU list element)
// for a single pointer or value cell. The core never interprets it.
type CacheExtra interface{}

// CacheItem is implemented by anything the Cache capability manages:
// NodePointer and ValuePointer.
type CacheItem interface {
	GetCacheExtra() CacheExtra
	SetCacheExtra(extra CacheExtra)
	GetCachedSize() int
}

// Cache is the external capability consumed by the tree for
// size-based eviction bookkeeping. The core maintains only the
// CacheExtra slot on each CacheItem; it implements no eviction policy
// of its own, and none is specified here.
type Cache interface {
	// Get returns the cache slot for item, registering it with the
	// cache if it has not been seen before.
	Get(item CacheItem) CacheExtra

	// Update notifies the cache that item's weight (GetCachedSize)
	// may have changed.
	Update(item CacheItem)

	// Remove evicts item's bookkeeping from the cache. It must not be
	// called for a dirty item.
	Remove(item CacheItem)
}

// CountingCache is a reference Cache implementation that assigns each
// item a monotonically increasing generation number as its
// CacheExtra, useful in tests for asserting resolve/evict ordering.
// It evicts nothing on its own: size-based eviction is explicitly out
// of scope for this core (spec.md §1, §5).
type CountingCache struct {
	generation int
}

// NewCountingCache constructs an empty CountingCache.
func NewCountingCache() *CountingCache {
	return &CountingCache{}
}

func (c *CountingCache) Get(item CacheItem) CacheExtra {
	if extra := item.GetCacheExtra(); extra != nil {
		return extra
	}
	c.generation++
	extra := c.generation
	item.SetCacheExtra(extra)
	return extra
}

func (c *CountingCache) Update(item CacheItem) {
	c.Get(item)
}

func (c *CountingCache) Remove(item CacheItem) {
	item.SetCacheExtra(nil)
}
