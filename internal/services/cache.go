package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/learnai/learnai-backend/internal/platform/envutil"
	"github.com/learnai/learnai-backend/internal/platform/logger"
)

// RecommendationCache is a short-lived redis cache for the per-user
// recent recommendation payload. A nil cache is valid and means
// caching is disabled; every method degrades to a no-op.
type RecommendationCache struct {
	log    *logger.Logger
	client *redis.Client
	ttl    time.Duration
}

// NewRecommendationCache connects to redis when REDIS_ADDR is set and
// reachable. Returns nil (cache disabled) otherwise.
func NewRecommendationCache(log *logger.Logger) *RecommendationCache {
	addr := envutil.String("REDIS_ADDR", "")
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: envutil.String("REDIS_PASSWORD", ""),
		DB:       envutil.Int("REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, recommendation cache disabled", "addr", addr, "error", err)
		return nil
	}

	ttlSec := envutil.Int("RECOMMENDATION_CACHE_TTL_SECONDS", 300)
	return &RecommendationCache{
		log:    log.With("service", "RecommendationCache"),
		client: client,
		ttl:    time.Duration(ttlSec) * time.Second,
	}
}

func (c *RecommendationCache) key(userID uuid.UUID) string {
	return "recommendations:recent:" + userID.String()
}

func (c *RecommendationCache) Get(ctx context.Context, userID uuid.UUID, dest any) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("corrupt cache entry dropped", "user_id", userID)
		c.client.Del(ctx, c.key(userID))
		return false
	}
	return true
}

func (c *RecommendationCache) Set(ctx context.Context, userID uuid.UUID, value any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(userID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", "user_id", userID, "error", err)
	}
}

func (c *RecommendationCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c == nil {
		return
	}
	c.client.Del(ctx, c.key(userID))
}
