// Package convcache keeps per-pair conversation pointers in Redis for the
// durable deployment. It is a cache over the message log, never a source
// of truth; callers treat every failure here as recoverable.
package convcache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func key(userID int) string {
	return fmt.Sprintf("conv:%d", userID)
}

// UpsertPair points both sides of the pair at the latest message id.
func (c *RedisCache) UpsertPair(ctx context.Context, userID, otherID, messageID int) error {
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key(userID), strconv.Itoa(otherID), messageID)
	pipe.HSet(ctx, key(otherID), strconv.Itoa(userID), messageID)
	_, err := pipe.Exec(ctx)
	return err
}

// Pointers returns the partner-id to latest-message-id map for a user.
func (c *RedisCache) Pointers(ctx context.Context, userID int) (map[int]int, error) {
	fields, err := c.client.HGetAll(ctx, key(userID)).Result()
	if err != nil {
		return nil, err
	}

	pointers := make(map[int]int, len(fields))
	for partner, msgID := range fields {
		pid, err := strconv.Atoi(partner)
		if err != nil {
			return nil, fmt.Errorf("corrupt conversation pointer field %q: %w", partner, err)
		}
		mid, err := strconv.Atoi(msgID)
		if err != nil {
			return nil, fmt.Errorf("corrupt conversation pointer value %q: %w", msgID, err)
		}
		pointers[pid] = mid
	}
	return pointers, nil
}
