package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheServesWithinTTL(t *testing.T) {
	now := time.Unix(1000, 0)
	c := NewWithClock(30*time.Second, func() time.Time { return now })

	c.Set("lb:global", []int{1, 2, 3})
	got, ok := c.Get("lb:global")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, got)

	now = now.Add(30 * time.Second)
	_, ok = c.Get("lb:global")
	assert.True(t, ok, "entry at exactly the TTL is still served")

	now = now.Add(time.Second)
	_, ok = c.Get("lb:global")
	assert.False(t, ok, "stale entry is dropped after the TTL")
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	c := New(time.Minute)
	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestCacheLastWriteWins(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", 1)
	c.Set("k", 2)
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestCacheInvalidate(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", 1)
	c.Invalidate("k")
	_, ok := c.Get("k")
	assert.False(t, ok)
}
