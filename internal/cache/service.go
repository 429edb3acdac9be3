// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redsocial/api/internal/pkg/log"
	platformconfig "github.com/redsocial/api/internal/platform/config"
)

// Service is the JSON-typed cache facade used by feature services.
// A disabled service is a valid no-op: Get always misses, Set/Invalidate
// succeed silently, so callers never branch on cache availability.
type Service struct {
	backend Cache
	prefix  string
	ttl     time.Duration
	enabled bool
}

// NewService builds a cache service from configuration. When caching is
// disabled or Redis is unreachable the service degrades to a no-op rather
// than failing process startup.
func NewService(cfg *platformconfig.CacheConfig) *Service {
	if cfg == nil || !cfg.Enabled {
		return &Service{enabled: false}
	}

	backend, err := NewRedisCache(&cfg.Redis)
	if err != nil {
		log.Warn("cache: redis unavailable, caching disabled: %v", err)
		return &Service{enabled: false}
	}

	return &Service{
		backend: backend,
		prefix:  cfg.Prefix,
		ttl:     cfg.TTL,
		enabled: true,
	}
}

// NewServiceWithBackend builds a cache service around an explicit backend.
// Used by tests with MemoryCache.
func NewServiceWithBackend(backend Cache, prefix string, ttl time.Duration) *Service {
	return &Service{backend: backend, prefix: prefix, ttl: ttl, enabled: true}
}

// IsEnabled reports whether the service has a live backend.
func (s *Service) IsEnabled() bool {
	return s.enabled
}

// Key builds a namespaced cache key.
func (s *Service) Key(parts ...interface{}) string {
	key := s.prefix
	for _, part := range parts {
		key += fmt.Sprintf(":%v", part)
	}
	return key
}

// GetJSON loads and unmarshals a cached value into out.
// Returns ErrKeyNotFound on a miss or when the service is disabled.
func (s *Service) GetJSON(ctx context.Context, key string, out interface{}) error {
	if !s.enabled {
		return ErrKeyNotFound
	}
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// SetJSON marshals and stores a value under the key with the default TTL.
func (s *Service) SetJSON(ctx context.Context, key string, value interface{}) error {
	if !s.enabled {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal failed: %w", err)
	}
	return s.backend.Set(ctx, key, data, s.ttl)
}

// Invalidate removes every key under the given namespace.
func (s *Service) Invalidate(ctx context.Context, parts ...interface{}) error {
	if !s.enabled {
		return nil
	}
	return s.backend.DeletePattern(ctx, s.Key(parts...)+"*")
}

// Close releases the backend connection.
func (s *Service) Close() error {
	if !s.enabled || s.backend == nil {
		return nil
	}
	return s.backend.Close()
}
