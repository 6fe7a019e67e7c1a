package cache_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jsvalidation/pkg/cache"
)

func TestLRU_Eviction(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, int](2)
	var evicted []string
	c.OnEvict(func(k string, _ int) { evicted = append(evicted, k) })

	c.Put("register", 1)
	c.Put("newsletter", 2)
	_, _ = c.Get("register")
	c.Put("contact", 3)

	_, ok := c.Get("newsletter")
	assert.False(t, ok, "least recently used entry is evicted")
	v, ok := c.Get("register")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, []string{"newsletter"}, evicted)
	assert.Equal(t, 2, c.Len())
}

func TestLRU_PutUpdates(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, int](2)
	c.Put("a", 1)
	c.Put("a", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())
}

func TestLRU_GetOrCompute(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, string](4)
	calls := 0
	compute := func() (string, error) {
		calls++
		return "compiled", nil
	}

	v, err := c.GetOrCompute("register", compute)
	require.NoError(t, err)
	assert.Equal(t, "compiled", v)

	v, err = c.GetOrCompute("register", compute)
	require.NoError(t, err)
	assert.Equal(t, "compiled", v)
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, err = c.GetOrCompute("broken", func() (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)
	_, ok := c.Get("broken")
	assert.False(t, ok, "errors are not cached")
}

func TestLRU_RemoveAndPurge(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[int, int](3)
	evictions := 0
	c.OnEvict(func(int, int) { evictions++ })
	for i := range 3 {
		c.Put(i, i)
	}

	assert.True(t, c.Remove(0))
	assert.False(t, c.Remove(0))
	assert.Equal(t, 0, evictions)

	c.Purge()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 2, evictions)
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[int, int](16)
	var wg sync.WaitGroup
	for i := range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Put(i%32, i)
			_, _ = c.Get(i % 32)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 16)
}

func TestNewLRU_PanicsOnZeroCapacity(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { cache.NewLRU[string, int](0) })
}
