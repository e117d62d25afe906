package graph

import (
	"container/list"
	"sync"

	"github.com/fraudgraph/engine/internal/domain"
)

// sortedCache memoizes the lazily-sorted per-account transaction views
// (spec §4.1). It is adapted from the reference engine's LRU cache
// (internal/cache.LRUCache): same bounded container/list + map structure,
// but keyed by account+direction rather than tenant+key, holding sorted
// transaction slices rather than serialized bytes, and with no TTL — a
// single analysis run has no notion of cache expiry, only of working-set
// size. Multiple detectors may request the same account's sorted view
// concurrently (spec §5 allows concurrent detector execution), so this is
// the one place in the graph package that needs a lock.
type sortedCache struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element
	order   *list.List
}

type sortedCacheEntry struct {
	key   string
	value []domain.Transaction
}

func newSortedCache(accountCount int) *sortedCache {
	maxSize := accountCount * 2 // one entry per account per direction
	if maxSize < 1024 {
		maxSize = 1024
	}
	return &sortedCache{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		order:   list.New(),
	}
}

// get returns the memoized value for key, computing and storing it via
// compute on first access.
func (c *sortedCache) get(account, direction string, compute func() []domain.Transaction) []domain.Transaction {
	key := direction + ":" + account

	c.mu.Lock()
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		entry := elem.Value.(*sortedCacheEntry)
		c.mu.Unlock()
		return entry.value
	}
	c.mu.Unlock()

	// Compute outside the lock — sorting is pure and side-effect free, so
	// two goroutines racing to compute the same key redundantly is
	// acceptable; only the final cache insertion needs the lock.
	value := compute()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*sortedCacheEntry).value
	}

	entry := &sortedCacheEntry{key: key, value: value}
	elem := c.order.PushFront(entry)
	c.items[key] = elem

	for c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*sortedCacheEntry).key)
	}

	return value
}
