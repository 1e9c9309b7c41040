package scenario

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// stateSuffixes are the per-user keys the chat service keeps in Redis.
var stateSuffixes = []string{
	":conversation",
	":preferences",
	":preferences:json",
	":property_info_map",
	":last_agent",
	":account_values",
	":pg_ids",
}

// Cleaner resets server-side state for a user before a scenario starts.
type Cleaner interface {
	Clean(ctx context.Context, userID string) error
}

// NopCleaner leaves server state alone.
type NopCleaner struct{}

// Clean does nothing.
func (NopCleaner) Clean(context.Context, string) error { return nil }

// RedisCleaner deletes a user's conversation state keys.
type RedisCleaner struct {
	client redis.Cmdable
}

// NewRedisCleaner constructs a cleaner backed by client.
func NewRedisCleaner(client redis.Cmdable) *RedisCleaner {
	return &RedisCleaner{client: client}
}

// StateKeys lists the keys removed for userID.
func StateKeys(userID string) []string {
	keys := make([]string, 0, len(stateSuffixes))
	for _, suffix := range stateSuffixes {
		keys = append(keys, userID+suffix)
	}

	return keys
}

// Clean removes every state key of userID in one DEL.
func (c *RedisCleaner) Clean(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, StateKeys(userID)...).Err(); err != nil {
		return fmt.Errorf("delete state of %s: %w", userID, err)
	}

	return nil
}
