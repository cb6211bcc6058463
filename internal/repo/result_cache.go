package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/newscat-core/server/internal/classifier"
	errx "github.com/newscat-core/server/internal/core/error"
	logx "github.com/newscat-core/server/pkg/logger"
)

type RedisResultCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisResultCache(rdb redis.Cmdable, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{rdb: rdb, ttl: ttl}
}

func (r *RedisResultCache) resultKey(key string) string {
	return fmt.Sprintf("classification:%s", key)
}

func (r *RedisResultCache) Get(ctx context.Context, key string) (classifier.Result, bool, error) {
	k := r.resultKey(key)

	raw, err := r.rdb.Get(ctx, k).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return classifier.Result{}, false, nil
		}
		logx.Error().Err(err).Str("key", k).Msg("failed to load classification from redis")
		return classifier.Result{}, false, errx.WrapRedis(err)
	}

	var res classifier.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		logx.Warn().Err(err).Str("key", k).Msg("dropping undecodable cached classification")
		_ = r.rdb.Del(ctx, k).Err()
		return classifier.Result{}, false, nil
	}
	for _, c := range res.RelevantCategories {
		if !c.Valid() {
			logx.Warn().Str("key", k).Str("category", string(c)).Msg("dropping cached classification with unknown category")
			_ = r.rdb.Del(ctx, k).Err()
			return classifier.Result{}, false, nil
		}
	}
	return res, true, nil
}

func (r *RedisResultCache) Set(ctx context.Context, key string, res classifier.Result) error {
	b, err := json.Marshal(res)
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to marshal classification")
		return fmt.Errorf("marshal classification: %w", err)
	}
	k := r.resultKey(key)

	// ttl <= 0 keeps the entry until evicted
	ttl := r.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := r.rdb.Set(ctx, k, b, ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", k).Msg("failed to store classification in redis")
		return errx.WrapRedis(err)
	}
	return nil
}

// Invalidate removes a cached result.
func (r *RedisResultCache) Invalidate(ctx context.Context, key string) error {
	k := r.resultKey(key)
	if err := r.rdb.Del(ctx, k).Err(); err != nil {
		logx.Error().Err(err).Str("key", k).Msg("failed to delete classification from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ classifier.ResultCache = (*RedisResultCache)(nil)
