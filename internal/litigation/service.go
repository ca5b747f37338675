package litigation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"orgvet/internal/normalize"
	"orgvet/pkg/sentinel"
)

// ResultCache stores docket search results keyed by canonical name.
type ResultCache interface {
	Find(ctx context.Context, key string) (Result, error)
	Save(ctx context.Context, key string, result Result) error
}

// Service coordinates docket searches with optional caching. A nil cache
// means every search goes upstream.
type Service struct {
	client Client
	cache  ResultCache
	logger *slog.Logger
}

func NewService(client Client, cache ResultCache, logger *slog.Logger) *Service {
	return &Service{client: client, cache: cache, logger: logger}
}

func (s *Service) SearchByOrgName(ctx context.Context, name string, lookbackYears int) (Result, error) {
	key := fmt.Sprintf("%s:%d", normalize.Key(name), lookbackYears)
	if s.cache != nil {
		if cached, err := s.cache.Find(ctx, key); err == nil {
			return cached, nil
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.Warn("litigation cache read failed", "error", err)
		}
	}

	result, err := s.client.SearchByOrgName(ctx, name, lookbackYears)
	if err != nil {
		return Result{}, err
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, key, result); err != nil {
			s.logger.Warn("litigation cache write failed", "error", err)
		}
	}
	return result, nil
}

// RedisCache is the redis-backed ResultCache with a retention TTL.
type RedisCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewRedisCache(client *goredis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Find(ctx context.Context, key string) (Result, error) {
	raw, err := c.client.Get(ctx, cacheKey(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return Result{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Result{}, fmt.Errorf("redis get: %w", err)
	}
	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return Result{}, fmt.Errorf("decode cached result: %w", err)
	}
	return result, nil
}

func (c *RedisCache) Save(ctx context.Context, key string, result Result) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func cacheKey(key string) string {
	return "litigation:" + key
}
