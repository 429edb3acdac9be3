package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k1", []byte("v1"), 0))
		got, err := c.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), got)
	})

	t.Run("miss", func(t *testing.T) {
		_, err := c.Get(ctx, "absent")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("expiry", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "short", []byte("v"), time.Nanosecond))
		time.Sleep(time.Millisecond)
		_, err := c.Get(ctx, "short")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("delete pattern", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "feed:1", []byte("a"), 0))
		require.NoError(t, c.Set(ctx, "feed:2", []byte("b"), 0))
		require.NoError(t, c.Set(ctx, "other", []byte("c"), 0))

		require.NoError(t, c.DeletePattern(ctx, "feed:*"))

		_, err := c.Get(ctx, "feed:1")
		assert.ErrorIs(t, err, ErrKeyNotFound)
		_, err = c.Get(ctx, "other")
		assert.NoError(t, err)
	})
}

func TestService(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled service is a no-op", func(t *testing.T) {
		s := NewService(nil)
		assert.False(t, s.IsEnabled())

		var out string
		assert.ErrorIs(t, s.GetJSON(ctx, "k", &out), ErrKeyNotFound)
		assert.NoError(t, s.SetJSON(ctx, "k", "v"))
		assert.NoError(t, s.Invalidate(ctx, "k"))
	})

	t.Run("round trip json", func(t *testing.T) {
		s := NewServiceWithBackend(NewMemoryCache(), "test", time.Minute)

		type payload struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}

		key := s.Key("posts", "page", 1)
		require.NoError(t, s.SetJSON(ctx, key, payload{Name: "feed", Count: 3}))

		var got payload
		require.NoError(t, s.GetJSON(ctx, key, &got))
		assert.Equal(t, payload{Name: "feed", Count: 3}, got)
	})

	t.Run("invalidate namespace", func(t *testing.T) {
		s := NewServiceWithBackend(NewMemoryCache(), "test", time.Minute)

		require.NoError(t, s.SetJSON(ctx, s.Key("posts", 1), "a"))
		require.NoError(t, s.SetJSON(ctx, s.Key("posts", 2), "b"))
		require.NoError(t, s.Invalidate(ctx, "posts"))

		var out string
		assert.ErrorIs(t, s.GetJSON(ctx, s.Key("posts", 1), &out), ErrKeyNotFound)
	})
}
