package cache

import (
	"context"
	"strconv"
	"sync"
	"time"
)

type memoryItem struct {
	val       []byte
	expiresAt time.Time
}

// memoryCache is a process-local Cache. Used in tests and when running
// without Redis.
type memoryCache struct {
	mu    sync.Mutex
	items map[string]memoryItem
}

func NewMemory() Cache {
	return &memoryCache{items: make(map[string]memoryItem)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok {
		return nil, ErrMiss
	}
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		delete(c.items, key)
		return nil, ErrMiss
	}
	return item.val, nil
}

func (c *memoryCache) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	c.items[key] = memoryItem{val: val, expiresAt: expiresAt}
	return nil
}

func (c *memoryCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.items, key)
	}
	return nil
}

func (c *memoryCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	if item, ok := c.items[key]; ok && (item.expiresAt.IsZero() || time.Now().Before(item.expiresAt)) {
		n, _ = strconv.ParseInt(string(item.val), 10, 64)
	}
	n++
	c.items[key] = memoryItem{val: []byte(strconv.FormatInt(n, 10))}
	return n, nil
}

func (c *memoryCache) Ping(context.Context) error { return nil }

func (c *memoryCache) Close() error { return nil }
