package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/newscat-core/server/internal/profile"
	logx "github.com/newscat-core/server/pkg/logger"
)

// ResultCache stores results by request key.
type ResultCache interface {
	// Get returns the cached result and whether it was found.
	Get(ctx context.Context, key string) (Result, bool, error)

	// Set stores a result under key.
	Set(ctx context.Context, key string, res Result) error
}

// Cached memoizes another strategy. A generative strategy behind it gives
// the same answer for repeated identical requests while the entry lives.
type Cached struct {
	next  Classifier
	cache ResultCache
}

func NewCached(next Classifier, cache ResultCache) *Cached {
	return &Cached{next: next, cache: cache}
}

func (c *Cached) Name() string { return NameOf(c.next) }

// RequestKey derives the cache key for a request. Profiles that encode to
// the same JSON share a key.
func RequestKey(strategy string, p profile.Profile, statement string) (string, error) {
	b, err := json.Marshal(struct {
		Profile   profile.Profile `json:"profile"`
		Statement string          `json:"statement"`
	}{p, statement})
	if err != nil {
		return "", fmt.Errorf("encode request key: %w", err)
	}
	return fmt.Sprintf("%s:%016x", strategy, xxhash.Sum64(b)), nil
}

func (c *Cached) Classify(ctx context.Context, p profile.Profile, statement string) (Result, error) {
	key, err := RequestKey(c.Name(), p, statement)
	if err != nil {
		return c.next.Classify(ctx, p, statement)
	}

	start := time.Now()
	if res, ok, err := c.cache.Get(ctx, key); err != nil {
		logx.Warn().Err(err).Str("key", key).Msg("classification cache read failed")
	} else if ok {
		logx.Debug().Str("key", key).Dur("elapsed", time.Since(start)).Msg("classification cache hit")
		return res, nil
	}

	res, err := c.next.Classify(ctx, p, statement)
	if err != nil {
		return Result{}, err
	}

	if err := c.cache.Set(ctx, key, res); err != nil {
		logx.Warn().Err(err).Str("key", key).Msg("classification cache write failed")
	}
	return res, nil
}

var _ Classifier = (*Cached)(nil)
