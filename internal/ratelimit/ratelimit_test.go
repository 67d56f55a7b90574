package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterBlocksWithinInterval(t *testing.T) {
	now := time.Unix(0, 0)
	l := NewWithClock(10*time.Second, func() time.Time { return now })

	assert.True(t, l.Allow("u1"))
	assert.False(t, l.Allow("u1"))

	now = now.Add(9 * time.Second)
	assert.False(t, l.Allow("u1"))

	now = now.Add(time.Second)
	assert.True(t, l.Allow("u1"))
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	now := time.Unix(0, 0)
	l := NewWithClock(time.Minute, func() time.Time { return now })

	assert.True(t, l.Allow("u1"))
	assert.True(t, l.Allow("u2"))
	assert.False(t, l.Allow("u1"))
}

func TestLimiterDisabled(t *testing.T) {
	l := New(0)
	assert.True(t, l.Allow("u1"))
	assert.True(t, l.Allow("u1"))
}

func TestLimiterReset(t *testing.T) {
	now := time.Unix(0, 0)
	l := NewWithClock(time.Minute, func() time.Time { return now })

	assert.True(t, l.Allow("u1"))
	l.Reset("u1")
	assert.True(t, l.Allow("u1"))
}
