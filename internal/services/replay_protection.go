package services

import (
	"context"
	"fmt"
	"time"

	"aebox-api/pkg/logging"

	"github.com/redis/go-redis/v9"
)

// ReplayProtection deduplicates provider events by id. Stripe redelivers
// unacknowledged events; a delivery we already settled must be acknowledged
// again without reprocessing.
type ReplayProtection struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReplayProtection creates a replay guard over the given Redis client
func NewReplayProtection(client *redis.Client) *ReplayProtection {
	return &ReplayProtection{
		client: client,
		ttl:    24 * time.Hour,
	}
}

// Seen reports whether the event id was already settled. Without an id, or
// when Redis is unreachable, the event is let through: reprocessing an
// upsert is harmless, silently dropping an event is not.
func (rp *ReplayProtection) Seen(eventID string) bool {
	if eventID == "" || rp.client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	n, err := rp.client.Exists(ctx, eventKey(eventID)).Result()
	if err != nil {
		logging.Errorf("Replay check failed for event %s: %v", eventID, err)
		return false
	}
	return n > 0
}

// Mark records the event id once its processing succeeded. Only settled
// events are recorded: a failed dispatch must stay invisible to the guard
// so the provider's redelivery gets reprocessed instead of acknowledged
// as a duplicate.
func (rp *ReplayProtection) Mark(eventID string) {
	if eventID == "" || rp.client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rp.client.Set(ctx, eventKey(eventID), time.Now().Unix(), rp.ttl).Err(); err != nil {
		logging.Errorf("Failed to record event %s: %v", eventID, err)
	}
}

func eventKey(eventID string) string {
	return fmt.Sprintf("webhook_event:%s", eventID)
}
