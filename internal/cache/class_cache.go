package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tgclasses/internal/metrics"
	"tgclasses/internal/schemas"

	"github.com/go-redis/redis/v8"
)

const versionKey = "classes:list:version"

// ClassListCache хранит страницы списка занятий в Redis.
// Ключ страницы включает номер версии; инвалидация увеличивает версию,
// и старые страницы просто истекают по TTL.
type ClassListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewClassListCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ClassListCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClassListCache{client: client, ttl: ttl, logger: logger}
}

func (c *ClassListCache) version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func pageKey(version int64, offset, limit int) string {
	return fmt.Sprintf("classes:list:%d:%d:%d", version, offset, limit)
}

// Get возвращает страницу из кэша и версию, под которой её искали.
// При промахе эту версию нужно передать в Set. Любая ошибка Redis считается промахом,
// тогда версия отрицательная и Set ничего не сохранит.
func (c *ClassListCache) Get(ctx context.Context, offset, limit int) ([]schemas.Class, int64, bool) {
	v, err := c.version(ctx)
	if err != nil {
		c.logger.Warn("class cache: failed to read version", slog.Any("error", err))
		metrics.ObserveCacheLookup(false)
		return nil, -1, false
	}

	data, err := c.client.Get(ctx, pageKey(v, offset, limit)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("class cache: failed to read page", slog.Any("error", err))
		}
		metrics.ObserveCacheLookup(false)
		return nil, v, false
	}

	var classes []schemas.Class
	if err := json.Unmarshal(data, &classes); err != nil {
		c.logger.Warn("class cache: corrupted page", slog.Any("error", err))
		metrics.ObserveCacheLookup(false)
		return nil, v, false
	}

	metrics.ObserveCacheLookup(true)
	return classes, v, true
}

// Set сохраняет страницу под версией, полученной от Get до чтения из базы.
// Если между чтением и Set прошла инвалидация, страница попадёт под устаревший ключ
// и никогда не будет прочитана.
func (c *ClassListCache) Set(ctx context.Context, version int64, offset, limit int, classes []schemas.Class) {
	if version < 0 {
		return
	}

	data, err := json.Marshal(classes)
	if err != nil {
		c.logger.Warn("class cache: failed to marshal page", slog.Any("error", err))
		return
	}

	if err := c.client.Set(ctx, pageKey(version, offset, limit), data, c.ttl).Err(); err != nil {
		c.logger.Warn("class cache: failed to store page", slog.Any("error", err))
	}
}

// Invalidate делает все сохранённые страницы недоступными
func (c *ClassListCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		c.logger.Error("class cache: failed to invalidate", slog.Any("error", err))
	}
}
