package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/stilbar/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/stilbar/pkg/errors"
	ctypes "github.com/turtacn/stilbar/pkg/types/compound"
)

const defaultResultTTL = 24 * time.Hour

// ResultCache caches conversion results keyed by normalized code.  It
// implements conversion.ResultCache.
type ResultCache struct {
	client *Client
	ttl    time.Duration
	logger logging.Logger
}

// NewResultCache constructs a ResultCache.  ttl <= 0 falls back to 24h.
func NewResultCache(client *Client, ttl time.Duration, log logging.Logger) *ResultCache {
	if ttl <= 0 {
		ttl = defaultResultTTL
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ResultCache{client: client, ttl: ttl, logger: log.Named("result_cache")}
}

func (c *ResultCache) key(normalizedCode string) string {
	return c.client.Key("conv", normalizedCode)
}

// Get returns the cached result for a normalized code.  A miss is not an
// error.
func (c *ResultCache) Get(ctx context.Context, normalizedCode string) (*ctypes.ConversionResult, bool, error) {
	data, err := c.client.RDB().Get(ctx, c.key(normalizedCode)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, errors.CodeCacheError, "failed to read cached result")
	}

	var result ctypes.ConversionResult
	if err := json.Unmarshal(data, &result); err != nil {
		// A corrupt entry is treated as a miss and dropped.
		c.logger.Warn("dropping corrupt cache entry", logging.String("code", normalizedCode))
		c.client.RDB().Del(ctx, c.key(normalizedCode))
		return nil, false, nil
	}
	return &result, true, nil
}

// Set stores a conversion result with the cache TTL.
func (c *ResultCache) Set(ctx context.Context, normalizedCode string, result *ctypes.ConversionResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode result")
	}
	if err := c.client.RDB().Set(ctx, c.key(normalizedCode), data, c.ttl).Err(); err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "failed to cache result")
	}
	return nil
}

// Invalidate drops the cached result for a normalized code.  Used after
// library mutations.
func (c *ResultCache) Invalidate(ctx context.Context, normalizedCode string) error {
	if err := c.client.RDB().Del(ctx, c.key(normalizedCode)).Err(); err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "failed to invalidate cached result")
	}
	return nil
}
