package remote

import (
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheExpiry(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := NewCache()
		key := Key("/api/lm/loras/list", "page_size=9999")
		c.Set(key, "fresh", 60*time.Second)

		v, ok := c.Get(key)
		require.True(t, ok)
		assert.Equal(t, "fresh", v)

		time.Sleep(61 * time.Second)

		_, ok = c.Get(key)
		assert.False(t, ok)

		v, ok = c.GetStale(key)
		require.True(t, ok)
		assert.Equal(t, "fresh", v)
	})
}

func TestCacheKeyDistinguishesParams(t *testing.T) {
	a := Key("/api/lm/loras/list", "page_size=10")
	b := Key("/api/lm/loras/list", "page_size=100")
	c := Key("/api/lm/checkpoints/list", "page_size=10")
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache()
	key := Key("ep")
	c.Set(key, 1, time.Minute)
	c.Invalidate(key)
	_, ok := c.GetStale(key)
	assert.False(t, ok)
}

func TestCachePurge(t *testing.T) {
	c := NewCache()
	c.Set(Key("a"), 1, time.Minute)
	c.Set(Key("b"), 2, time.Minute)
	c.Purge()
	_, ok := c.GetStale(Key("a"))
	assert.False(t, ok)
	_, ok = c.GetStale(Key("b"))
	assert.False(t, ok)
}
