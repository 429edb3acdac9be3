// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cache

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned on a cache miss.
var ErrKeyNotFound = errors.New("cache: key not found")

// ErrCacheUnavailable is returned when the backing store cannot be reached.
var ErrCacheUnavailable = errors.New("cache: unavailable")

// Cache is the minimal byte-oriented cache backend contract.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
	Ping(ctx context.Context) error
	Close() error
}
