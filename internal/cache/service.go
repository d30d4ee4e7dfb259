package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vidora/vidora-api/internal/pkg/log"
)

// CacheService wraps a Cache backend with JSON serialization and key
// prefixing. Services use it to cache query results and invalidate them
// when the underlying documents change.
type CacheService struct {
	cache  Cache
	config *CacheConfig
}

// NewCacheService creates a new cache service
func NewCacheService(cache Cache, config *CacheConfig) *CacheService {
	if config == nil {
		config = DefaultCacheConfig()
	}
	return &CacheService{
		cache:  cache,
		config: config,
	}
}

// GetCached retrieves and unmarshals cached data into the target interface
func (s *CacheService) GetCached(ctx context.Context, key string, target interface{}) error {
	if !s.config.Enabled || s.cache == nil {
		return ErrCacheDisabled
	}

	fullKey := s.buildKey(key)

	data, err := s.cache.Get(ctx, fullKey)
	if err != nil {
		if err != ErrKeyNotFound {
			log.Error("Cache get error for key %s: %v", fullKey, err)
		}
		return err
	}

	if err := json.Unmarshal(data, target); err != nil {
		log.Error("Cache data unmarshal error for key %s: %v", fullKey, err)
		return fmt.Errorf("%w: %v", ErrDeserializationFailed, err)
	}

	return nil
}

// CacheData marshals and stores data in cache with TTL
func (s *CacheService) CacheData(ctx context.Context, key string, data interface{}, ttl ...time.Duration) error {
	if !s.config.Enabled || s.cache == nil {
		return ErrCacheDisabled
	}

	cacheTTL := s.config.TTL
	if len(ttl) > 0 && ttl[0] > 0 {
		cacheTTL = ttl[0]
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Error("Cache data marshal error for key %s: %v", key, err)
		return fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}

	fullKey := s.buildKey(key)

	if err := s.cache.Set(ctx, fullKey, jsonData, cacheTTL); err != nil {
		log.Error("Cache set error for key %s: %v", fullKey, err)
		return err
	}

	return nil
}

// Invalidate removes a single cached entry
func (s *CacheService) Invalidate(ctx context.Context, key string) error {
	if !s.config.Enabled || s.cache == nil {
		return ErrCacheDisabled
	}
	return s.cache.Delete(ctx, s.buildKey(key))
}

// InvalidatePattern removes all cached entries matching the pattern
func (s *CacheService) InvalidatePattern(ctx context.Context, pattern string) error {
	if !s.config.Enabled || s.cache == nil {
		return ErrCacheDisabled
	}
	return s.cache.DeletePattern(ctx, s.buildKey(pattern))
}

// buildKey prepends the configured prefix to a cache key
func (s *CacheService) buildKey(key string) string {
	return s.config.Prefix + key
}
