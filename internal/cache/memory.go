package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type memoryItem struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is an LRU-backed in-process cache with per-item TTL.
// Used in tests and as a dev fallback when no Redis address is
// configured. Not suitable for multi-instance deployments.
type MemoryCache struct {
	lruCache *lru.Cache[string, memoryItem]
}

func NewMemory(size int) (*MemoryCache, error) {
	l, err := lru.New[string, memoryItem](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{lruCache: l}, nil
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, error) {
	item, ok := c.lruCache.Get(key)
	if !ok {
		return "", ErrCacheMiss
	}
	if time.Now().After(item.expiresAt) {
		c.lruCache.Remove(key)
		return "", ErrCacheMiss
	}
	return item.value, nil
}

func (c *MemoryCache) SetEx(_ context.Context, key, value string, ttl time.Duration) error {
	c.lruCache.Add(key, memoryItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.lruCache.Remove(key)
	return nil
}

func (c *MemoryCache) Close() error {
	c.lruCache.Purge()
	return nil
}
