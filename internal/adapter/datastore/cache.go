package datastore

import (
	"context"
	"sync"

	"github.com/couchcryptid/wage-query-service/internal/domain"
	"github.com/couchcryptid/wage-query-service/internal/observability"
)

// CachedStore is a read-through cache decorator around a Store. The
// dataset is immutable per release, so catalogs are memoized for the
// process lifetime with no invalidation; wage tables (one file per SOC
// code, loaded lazily) live in a bounded LRU. Errors are never cached.
//
// Returned slices are shared with the cache: callers must treat them
// as read-only and copy before sorting or mutating.
type CachedStore struct {
	inner   Store
	metrics *observability.Metrics

	mu          sync.Mutex
	occupations []domain.Occupation
	areas       []domain.Area
	tables      *lruCache
}

// NewCachedStore creates a cache decorator holding at most maxTables
// wage tables.
func NewCachedStore(inner Store, maxTables int, metrics *observability.Metrics) *CachedStore {
	return &CachedStore{
		inner:   inner,
		metrics: metrics,
		tables:  newLRUCache(maxTables),
	}
}

func (c *CachedStore) Occupations(ctx context.Context) ([]domain.Occupation, error) {
	c.mu.Lock()
	cached := c.occupations
	c.mu.Unlock()
	if cached != nil {
		c.metrics.CacheLookups.WithLabelValues("occupations", "hit").Inc()
		return cached, nil
	}
	c.metrics.CacheLookups.WithLabelValues("occupations", "miss").Inc()

	occupations, err := c.inner.Occupations(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.occupations = occupations
	c.mu.Unlock()
	return occupations, nil
}

func (c *CachedStore) Areas(ctx context.Context) ([]domain.Area, error) {
	c.mu.Lock()
	cached := c.areas
	c.mu.Unlock()
	if cached != nil {
		c.metrics.CacheLookups.WithLabelValues("areas", "hit").Inc()
		return cached, nil
	}
	c.metrics.CacheLookups.WithLabelValues("areas", "miss").Inc()

	areas, err := c.inner.Areas(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.areas = areas
	c.mu.Unlock()
	return areas, nil
}

func (c *CachedStore) WageTable(ctx context.Context, socCode string) (domain.WageTable, error) {
	if table, ok := c.tables.get(socCode); ok {
		c.metrics.CacheLookups.WithLabelValues("wage_table", "hit").Inc()
		return table, nil
	}
	c.metrics.CacheLookups.WithLabelValues("wage_table", "miss").Inc()

	table, err := c.inner.WageTable(ctx, socCode)
	if err != nil {
		return domain.WageTable{}, err
	}
	c.tables.put(socCode, table)
	return table, nil
}

// lruCache is a simple thread-safe LRU cache for wage tables.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.WageTable
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.WageTable, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.WageTable{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.WageTable) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
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
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
