package services

import (
	"context"
	"fmt"
	"time"

	"aebox-api/pkg/logging"

	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces a per-caller cooldown between chat requests
type RateLimiter struct {
	client   *redis.Client
	cooldown time.Duration
}

// NewRateLimiter creates a rate limiter with the given cooldown
func NewRateLimiter(client *redis.Client, cooldown time.Duration) *RateLimiter {
	return &RateLimiter{
		client:   client,
		cooldown: cooldown,
	}
}

// Allow reports whether the caller may proceed and, if so, starts its
// cooldown window. Redis failures fail open.
func (rl *RateLimiter) Allow(caller string) bool {
	if rl.client == nil || rl.cooldown <= 0 {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := fmt.Sprintf("chat_rate_limit:%s", caller)
	set, err := rl.client.SetNX(ctx, key, "1", rl.cooldown).Result()
	if err != nil {
		logging.Errorf("Rate limit check failed for %s: %v", caller, err)
		return true
	}
	return set
}
