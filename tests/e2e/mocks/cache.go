package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// InMemoryCache stores JSON-encoded values like the Redis cache does and
// reports misses with redis.Nil.
type InMemoryCache struct {
	mu       sync.Mutex
	data     map[string]cacheEntry
	getCalls int
	setCalls int
	hits     int
}

type cacheEntry struct {
	value  []byte
	expiry time.Time
}

func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{data: make(map[string]cacheEntry)}
}

func (c *InMemoryCache) Get(ctx context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.getCalls++
	entry, ok := c.data[key]
	if !ok || time.Now().After(entry.expiry) {
		return redis.Nil
	}
	c.hits++
	return json.Unmarshal(entry.value, dest)
}

func (c *InMemoryCache) Set(ctx context.Context, key string, value any, exp time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.setCalls++
	c.data[key] = cacheEntry{value: raw, expiry: time.Now().Add(exp)}
	return nil
}

func (c *InMemoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *InMemoryCache) Close() error {
	return nil
}

// Stats returns the call counters under the lock.
func (c *InMemoryCache) Stats() (gets, sets, hits int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getCalls, c.setCalls, c.hits
}
