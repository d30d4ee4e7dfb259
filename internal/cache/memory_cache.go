package cache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
)

// cacheItem represents an item in the memory cache
type cacheItem struct {
	value      []byte
	expiration time.Time
}

// MemoryCache implements Cache interface using in-memory storage
type MemoryCache struct {
	items         map[string]*cacheItem
	mutex         sync.RWMutex
	cleanupTicker *time.Ticker
	cleanupDone   chan bool
	config        *CacheConfig
	closed        bool
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(config *CacheConfig) *MemoryCache {
	if config == nil {
		config = DefaultCacheConfig()
	}

	cache := &MemoryCache{
		items:       make(map[string]*cacheItem),
		cleanupDone: make(chan bool),
		config:      config,
	}

	go cache.startCleanup()

	return cache
}

// Get retrieves a value from cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.closed {
		return nil, ErrCacheDisabled
	}

	item, exists := c.items[key]
	if !exists || time.Now().After(item.expiration) {
		return nil, ErrKeyNotFound
	}

	// Return a copy of the value
	result := make([]byte, len(item.value))
	copy(result, item.value)
	return result, nil
}

// Set stores a value in cache with expiration
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return ErrCacheDisabled
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	c.items[key] = &cacheItem{
		value:      valueCopy,
		expiration: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a value from cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.items, key)
	return nil
}

// DeletePattern removes all keys matching the given pattern
func (c *MemoryCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for key := range c.items {
		if matchPattern(key, pattern) {
			delete(c.items, key)
		}
	}
	return nil
}

// Exists checks if a key exists in cache
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.items[key]
	if !exists || time.Now().After(item.expiration) {
		return false, nil
	}
	return true, nil
}

// Increment atomically increments a numeric value
func (c *MemoryCache) Increment(ctx context.Context, key string, delta int64) (int64, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var currentValue int64
	if item, exists := c.items[key]; exists && !time.Now().After(item.expiration) {
		if val, err := strconv.ParseInt(string(item.value), 10, 64); err == nil {
			currentValue = val
		}
	}

	newValue := currentValue + delta
	c.items[key] = &cacheItem{
		value:      []byte(strconv.FormatInt(newValue, 10)),
		expiration: time.Now().Add(c.config.TTL),
	}
	return newValue, nil
}

// Close stops the cleanup goroutine and clears all items
func (c *MemoryCache) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return nil
	}

	close(c.cleanupDone)
	c.items = make(map[string]*cacheItem)
	c.closed = true
	return nil
}

// startCleanup runs a background goroutine to clean up expired items
func (c *MemoryCache) startCleanup() {
	interval := c.config.CleanupInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpired()
		case <-c.cleanupDone:
			return
		}
	}
}

// cleanupExpired removes expired items from the cache
func (c *MemoryCache) cleanupExpired() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, item := range c.items {
		if now.After(item.expiration) {
			delete(c.items, key)
		}
	}
}

// matchPattern implements simple pattern matching with * wildcard
func matchPattern(text, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return text == pattern
	}

	parts := strings.Split(pattern, "*")

	if len(parts[0]) > 0 && !strings.HasPrefix(text, parts[0]) {
		return false
	}
	if len(parts[len(parts)-1]) > 0 && !strings.HasSuffix(text, parts[len(parts)-1]) {
		return false
	}

	currentPos := len(parts[0])
	for i := 1; i < len(parts)-1; i++ {
		part := parts[i]
		if len(part) == 0 {
			continue
		}
		pos := strings.Index(text[currentPos:], part)
		if pos == -1 {
			return false
		}
		currentPos += pos + len(part)
	}

	return true
}
