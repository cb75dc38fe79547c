package cache

import (
	"context"
	"testing"
	"time"

	"tgclasses/internal/logger"
	"tgclasses/internal/schemas"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*ClassListCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewClassListCache(client, time.Minute, logger.Discard()), srv
}

func samplePage() []schemas.Class {
	return []schemas.Class{{
		ID:        1,
		Topic:     "Intro",
		ClassTime: time.Date(2026, 11, 1, 18, 0, 0, 0, time.UTC),
		Creator:   schemas.User{ID: 1, TelegramID: 111, FirstName: "Анна"},
		RSVPs:     []schemas.RSVP{},
		Questions: []schemas.Question{},
	}}
}

func TestClassListCacheRoundTrip(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	_, version, ok := c.Get(ctx, 0, 100)
	assert.False(t, ok)
	assert.Equal(t, int64(0), version)

	c.Set(ctx, version, 0, 100, samplePage())

	got, _, ok := c.Get(ctx, 0, 100)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Intro", got[0].Topic)
	assert.Equal(t, int64(111), got[0].Creator.TelegramID)

	_, _, ok = c.Get(ctx, 0, 10)
	assert.False(t, ok, "другая страница не должна совпадать")
}

func TestClassListCacheInvalidate(t *testing.T) {
	c, srv := setupCache(t)
	ctx := context.Background()

	c.Set(ctx, 0, 0, 100, samplePage())
	c.Invalidate(ctx)

	_, version, ok := c.Get(ctx, 0, 100)
	assert.False(t, ok)
	assert.Equal(t, int64(1), version)

	v, err := srv.Get(versionKey)
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestClassListCacheTTL(t *testing.T) {
	c, srv := setupCache(t)
	ctx := context.Background()

	c.Set(ctx, 0, 0, 100, samplePage())
	srv.FastForward(2 * time.Minute)

	_, _, ok := c.Get(ctx, 0, 100)
	assert.False(t, ok)
}

func TestClassListCacheRedisDown(t *testing.T) {
	c, srv := setupCache(t)
	ctx := context.Background()
	srv.Close()

	c.Set(ctx, 0, 0, 100, samplePage())
	c.Invalidate(ctx)
	_, version, ok := c.Get(ctx, 0, 100)
	assert.False(t, ok)
	assert.Negative(t, version)
}

func TestClassListCacheLateSetAfterInvalidate(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	_, version, ok := c.Get(ctx, 0, 100)
	require.False(t, ok)

	// страница прочитана из базы до изменения, а сохраняется уже после инвалидации
	c.Invalidate(ctx)
	c.Set(ctx, version, 0, 100, samplePage())

	_, _, ok = c.Get(ctx, 0, 100)
	assert.False(t, ok)
}

func TestClassListCacheSetSkipsUnknownVersion(t *testing.T) {
	c, srv := setupCache(t)
	ctx := context.Background()

	c.Set(ctx, -1, 0, 100, samplePage())

	assert.Empty(t, srv.Keys())
}
