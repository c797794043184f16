package services

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestReplayProtectionSeenAfterMark(t *testing.T) {
	rp := NewReplayProtection(newTestRedis(t))

	assert.False(t, rp.Seen("evt_1"))
	rp.Mark("evt_1")
	assert.True(t, rp.Seen("evt_1"))
	assert.False(t, rp.Seen("evt_2"))
}

func TestReplayProtectionCheckDoesNotRecord(t *testing.T) {
	rp := NewReplayProtection(newTestRedis(t))

	// A bare check must not record: an event whose dispatch failed has
	// to look new when the provider redelivers it.
	assert.False(t, rp.Seen("evt_1"))
	assert.False(t, rp.Seen("evt_1"))
}

func TestReplayProtectionFailsOpen(t *testing.T) {
	assert.False(t, NewReplayProtection(nil).Seen("evt_1"))
	NewReplayProtection(nil).Mark("evt_1")

	rp := NewReplayProtection(newTestRedis(t))
	rp.Mark("")
	assert.False(t, rp.Seen(""))
}

func TestRateLimiterCooldown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	rl := NewRateLimiter(client, 5*time.Second)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))

	mr.FastForward(6 * time.Second)
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiterDisabled(t *testing.T) {
	assert.True(t, NewRateLimiter(nil, time.Second).Allow("10.0.0.1"))
	assert.True(t, NewRateLimiter(newTestRedis(t), 0).Allow("10.0.0.1"))
}
