package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// streakTTL keeps entries around for at most a day; evaluation after a
// completion invalidates the key directly.
const streakTTL = 24 * time.Hour

// RedisStreakCache caches computed streaks in Redis, keyed by user and
// calendar day. All failures degrade to a miss.
type RedisStreakCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisStreakCache creates a Redis-backed streak cache.
func NewRedisStreakCache(client *redis.Client, logger *slog.Logger) *RedisStreakCache {
	return &RedisStreakCache{client: client, logger: logger}
}

func streakKey(userID uuid.UUID, day sharedDomain.Date) string {
	return fmt.Sprintf("focusfive:streak:%s:%s", userID, day)
}

// Get returns the cached streak for the user's day, if present.
func (c *RedisStreakCache) Get(ctx context.Context, userID uuid.UUID, day sharedDomain.Date) (int, bool) {
	val, err := c.client.Get(ctx, streakKey(userID, day)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("streak cache read failed", "error", err)
		}
		return 0, false
	}

	streak, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return streak, true
}

// Set stores the streak for the user's day.
func (c *RedisStreakCache) Set(ctx context.Context, userID uuid.UUID, day sharedDomain.Date, streak int) {
	if err := c.client.Set(ctx, streakKey(userID, day), strconv.Itoa(streak), streakTTL).Err(); err != nil {
		c.logger.Warn("streak cache write failed", "error", err)
	}
}

// Invalidate drops the cached streak for the user's day. Called after a
// completion toggle changes what the streak would be.
func (c *RedisStreakCache) Invalidate(ctx context.Context, userID uuid.UUID, day sharedDomain.Date) {
	if err := c.client.Del(ctx, streakKey(userID, day)).Err(); err != nil {
		c.logger.Warn("streak cache invalidation failed", "error", err)
	}
}
