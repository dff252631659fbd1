package grpc

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type FetchFunc[T any] func(ctx context.Context) (T, error)

const (
	defaultSetTimeout = 5 * time.Second
	minJitterTTL      = time.Minute
)

// addTTLJitter adds up to ±15s random jitter to TTLs of a minute or more to
// avoid mass expiration.
func addTTLJitter(ttl time.Duration) time.Duration {
	if ttl < minJitterTTL {
		return ttl
	}
	jitter := time.Duration(rand.Intn(30)-15) * time.Second
	return ttl + jitter
}

// storeValue writes value under key. When the write fails the key is dropped
// so an older entry cannot outlive the value just persisted.
func storeValue[T any](c Cacher, key string, value T, ttl time.Duration, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultSetTimeout)
	defer cancel()

	ttlWithJitter := addTTLJitter(ttl)
	if err := c.Set(ctx, key, value, ttlWithJitter); err != nil {
		logger.Warn("failed to set cache", zap.String("key", key), zap.Error(err))
		if err := c.Delete(ctx, key); err != nil {
			logger.Warn("failed to drop stale cache entry", zap.String("key", key), zap.Error(err))
		}
		return
	}
	logger.Debug("cache populated", zap.String("key", key), zap.Duration("ttl", ttlWithJitter))
}

// FindAndCache implements read-through caching with singleflight. Cache errors
// are treated as misses; a nil Cacher disables caching.
func FindAndCache[T any](
	ctx context.Context,
	c Cacher,
	sf *singleflight.Group,
	key string,
	ttl time.Duration,
	logger *zap.Logger,
	fn FetchFunc[T],
) (T, error) {
	var zero T
	if logger == nil {
		logger = zap.NewNop()
	}
	if c == nil {
		return fn(ctx)
	}

	var cached T
	err := c.Get(ctx, key, &cached)
	switch {
	case err == nil:
		logger.Debug("cache hit", zap.String("key", key))
		return cached, nil

	case errors.Is(err, redis.Nil):
		logger.Debug("cache miss", zap.String("key", key))

	default:
		logger.Warn("cache get error (treating as miss)", zap.String("key", key), zap.Error(err))
	}

	v, err, shared := sf.Do(key, func() (any, error) {
		value, err := fn(ctx)
		if err != nil {
			return zero, err
		}
		storeValue(c, key, value, ttl, logger)
		return value, nil
	})
	if err != nil {
		return zero, err
	}

	value, ok := v.(T)
	if !ok {
		logger.Error("singleflight type mismatch", zap.String("key", key))
		return zero, fmt.Errorf("type mismatch for key %q", key)
	}

	if shared {
		logger.Debug("singleflight shared result", zap.String("key", key))
	}

	return value, nil
}

// WriteThrough refreshes key with a value that was just persisted.
func WriteThrough[T any](c Cacher, key string, value T, ttl time.Duration, logger *zap.Logger) {
	if c == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	storeValue(c, key, value, ttl, logger)
}
