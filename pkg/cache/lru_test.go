package cache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/testimony/pkg/cache"
)

func TestLRU_Basic(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	c.Put("c", 3) // evicts b, a was used more recently
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())

	c.Put("a", 10)
	v, _ = c.Get("a")
	assert.Equal(t, 10, v)
	assert.Equal(t, 2, c.Len())
}

func TestLRU_EvictCallback(t *testing.T) {
	t.Parallel()

	var evicted []string
	c := cache.NewLRU(1, cache.WithOnEvict(func(k string, _ int) {
		evicted = append(evicted, k)
	}))

	c.Put("a", 1)
	c.Put("a", 2)
	assert.Empty(t, evicted, "replacing a value is not an eviction")

	c.Put("b", 2)
	assert.Equal(t, []string{"a"}, evicted)

	assert.True(t, c.Remove("b"))
	assert.False(t, c.Remove("b"))
	assert.Equal(t, []string{"a", "b"}, evicted)

	c.Put("c", 3)
	c.Purge()
	assert.Equal(t, []string{"a", "b", "c"}, evicted)
	assert.Zero(t, c.Len())
}

func TestLRU_CallbackMayReenter(t *testing.T) {
	t.Parallel()

	var c *cache.LRU[int, int]
	c = cache.NewLRU(1, cache.WithOnEvict(func(k, _ int) {
		_ = c.Len()
	}))
	c.Put(1, 1)
	c.Put(2, 2)
	assert.Equal(t, 1, c.Len())
}

func TestLRU_GetOrCreate(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, *int](4)
	calls := 0
	create := func() *int { calls++; v := calls; return &v }

	first, found := c.GetOrCreate("s", create)
	assert.False(t, found)
	second, found := c.GetOrCreate("s", create)
	assert.True(t, found)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[int, int](16)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				c.Put(i*100+j, j)
				c.Get(j)
				c.GetOrCreate(j, func() int { return j })
			}
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 16)
}

func TestNewLRU_InvalidCapacity(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { cache.NewLRU[int, int](0) })
}
