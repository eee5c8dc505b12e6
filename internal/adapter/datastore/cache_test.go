package datastore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wage-query-service/internal/domain"
	"github.com/couchcryptid/wage-query-service/internal/observability"
)

// --- mock for cache tests ---

type countingStore struct {
	occupationCalls int
	areaCalls       int
	tableCalls      map[string]int

	occupations []domain.Occupation
	areas       []domain.Area
	tables      map[string]domain.WageTable
	err         error
}

func newCountingStore() *countingStore {
	return &countingStore{
		tableCalls: map[string]int{},
		tables:     map[string]domain.WageTable{},
	}
}

func (m *countingStore) Occupations(_ context.Context) ([]domain.Occupation, error) {
	m.occupationCalls++
	return m.occupations, m.err
}

func (m *countingStore) Areas(_ context.Context) ([]domain.Area, error) {
	m.areaCalls++
	return m.areas, m.err
}

func (m *countingStore) WageTable(_ context.Context, socCode string) (domain.WageTable, error) {
	m.tableCalls[socCode]++
	if m.err != nil {
		return domain.WageTable{}, m.err
	}
	table, ok := m.tables[socCode]
	if !ok {
		return domain.WageTable{}, fmt.Errorf("wage table %q: %w", socCode, domain.ErrNotFound)
	}
	return table, nil
}

// --- CachedStore tests ---

func TestCachedStore_CatalogsLoadOnce(t *testing.T) {
	inner := newCountingStore()
	inner.occupations = []domain.Occupation{{Code: "15-1252", Title: "Software Developers"}}
	inner.areas = []domain.Area{{ID: "12420", Name: "Austin-Round Rock-San Marcos, TX", State: "TX"}}
	cached := NewCachedStore(inner, 10, observability.NewMetricsForTesting())

	for range 3 {
		occupations, err := cached.Occupations(context.Background())
		require.NoError(t, err)
		require.Len(t, occupations, 1)

		areas, err := cached.Areas(context.Background())
		require.NoError(t, err)
		require.Len(t, areas, 1)
	}

	assert.Equal(t, 1, inner.occupationCalls, "catalog should load once per process")
	assert.Equal(t, 1, inner.areaCalls)
}

func TestCachedStore_WageTableCacheHit(t *testing.T) {
	inner := newCountingStore()
	inner.tables["15-1252"] = domain.WageTable{SOCCode: "15-1252"}
	cached := NewCachedStore(inner, 10, observability.NewMetricsForTesting())

	_, err := cached.WageTable(context.Background(), "15-1252")
	require.NoError(t, err)
	_, err = cached.WageTable(context.Background(), "15-1252")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.tableCalls["15-1252"], "should only call inner once")
}

func TestCachedStore_ErrorsAreNotCached(t *testing.T) {
	inner := newCountingStore()
	cached := NewCachedStore(inner, 10, observability.NewMetricsForTesting())

	_, err := cached.WageTable(context.Background(), "15-9999")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = cached.WageTable(context.Background(), "15-9999")
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, 2, inner.tableCalls["15-9999"], "misses must reach the inner store each time")
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", domain.WageTable{SOCCode: "a"})
	c.put("b", domain.WageTable{SOCCode: "b"})

	table, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "a", table.SOCCode)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.WageTable{SOCCode: "a"})
	c.put("b", domain.WageTable{SOCCode: "b"})
	c.put("c", domain.WageTable{SOCCode: "c"}) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	table, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, "b", table.SOCCode)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.WageTable{SOCCode: "a"})
	c.put("b", domain.WageTable{SOCCode: "b"})

	// Access "a" to promote it
	c.get("a")

	// Insert "c" — should evict "b" (LRU), not "a"
	c.put("c", domain.WageTable{SOCCode: "c"})

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.WageTable{SOCCode: "a1"})
	c.put("a", domain.WageTable{SOCCode: "a2"})

	table, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "a2", table.SOCCode)
}
