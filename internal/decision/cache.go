package decision

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// Cache is the decision cache seam (spec §4.7: "Keyed by event.id; TTL
// from configuration; returns a cached result identically").
type Cache interface {
	Get(ctx context.Context, eventID string) (socialmodel.DecisionOutput, bool, error)
	Set(ctx context.Context, eventID string, output socialmodel.DecisionOutput, ttl time.Duration) error
}

// RedisCache is the production Cache, backed by redis/go-redis/v9. Tests
// exercise it against alicebob/miniredis/v2 rather than mocking the
// interface.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func cacheKey(eventID string) string {
	return "decision:cache:" + eventID
}

func (c *RedisCache) Get(ctx context.Context, eventID string) (socialmodel.DecisionOutput, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey(eventID)).Bytes()
	if err == redis.Nil {
		return socialmodel.DecisionOutput{}, false, nil
	}
	if err != nil {
		return socialmodel.DecisionOutput{}, false, socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "decision cache get failed for event %s", eventID)
	}

	var output socialmodel.DecisionOutput
	if err := json.Unmarshal(raw, &output); err != nil {
		return socialmodel.DecisionOutput{}, false, socialmodel.Wrap(socialmodel.KindTerminalUpstream, err, "decision cache entry for event %s is corrupt", eventID)
	}
	return output, true, nil
}

func (c *RedisCache) Set(ctx context.Context, eventID string, output socialmodel.DecisionOutput, ttl time.Duration) error {
	raw, err := json.Marshal(output)
	if err != nil {
		return socialmodel.Wrap(socialmodel.KindTerminalUpstream, err, "failed to marshal decision output for event %s", eventID)
	}
	if err := c.client.Set(ctx, cacheKey(eventID), raw, ttl).Err(); err != nil {
		return socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "decision cache set failed for event %s", eventID)
	}
	return nil
}
