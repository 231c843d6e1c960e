package scoring

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache memoizes scorer results within a session so repeated scoring of the
// same draft answer costs nothing. Implementations must return a stored
// result byte-for-byte identical to what was put in.
type Cache interface {
	Get(ctx context.Context, key string) (Result, bool)
	Set(ctx context.Context, key string, result Result)
}

const cacheKeyTextLength = 50

// CacheKey derives the memoization key from the question id and the first
// 50 characters of the answer text.
func CacheKey(questionID, text string) string {
	runes := []rune(text)
	if len(runes) > cacheKeyTextLength {
		runes = runes[:cacheKeyTextLength]
	}
	return questionID + ":" + string(runes)
}

type memoryCache struct {
	mu      sync.RWMutex
	results map[string]Result
}

// NewMemoryCache returns the default in-process result cache.
func NewMemoryCache() Cache {
	return &memoryCache{results: make(map[string]Result)}
}

func (c *memoryCache) Get(_ context.Context, key string) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result, ok := c.results[key]
	return result, ok
}

func (c *memoryCache) Set(_ context.Context, key string, result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[key] = result
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache returns a Redis-backed result cache for multi-replica
// deployments. Cache errors degrade to misses; scoring never fails because
// Redis is down.
func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &redisCache{client: client, ttl: ttl, logger: logger}
}

func (c *redisCache) Get(ctx context.Context, key string) (Result, bool) {
	raw, err := c.client.Get(ctx, "score:"+key).Bytes()
	if err != nil {
		if err != redis.Nil && c.logger != nil {
			c.logger.Warn("score cache read failed", zap.Error(err))
		}
		return Result{}, false
	}
	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return Result{}, false
	}
	return result, true
}

func (c *redisCache) Set(ctx context.Context, key string, result Result) {
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, "score:"+key, raw, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.Warn("score cache write failed", zap.Error(err))
	}
}
