package cache

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cinegraph/cinegraph-backend/internal/platform/logger"
)

// TTL is the fixed lifetime of every cached page payload.
const TTL = 300 * time.Second

// Client is the slice of the redis API the cache layer needs. *goredis.Client
// satisfies it; tests substitute an in-memory fake.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
}

// Cache is a read-through cache over redis. It has no knowledge of domain
// types; values round-trip through JSON, which encodes timestamps as RFC 3339
// strings on write and decodes them back on read.
type Cache struct {
	rdb Client
	log *logger.Logger
}

func New(rdb Client, log *logger.Logger) *Cache {
	return &Cache{rdb: rdb, log: log.With("component", "Cache")}
}

// GetOrCompute looks up key and returns the decoded hit without invoking
// compute. On a miss it invokes compute, stores the result under key with ttl,
// and returns it. The key must encode every variable the result depends on,
// because empty results are cached like any other.
//
// The cache fails open: read errors, write errors, and malformed payloads all
// degrade to a plain compute. A compute error is returned to the caller and
// nothing is stored, so a failed backend is retried on the next request
// instead of pinning an empty payload for the full ttl.
func GetOrCompute[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, error) {
	if c != nil && c.rdb != nil {
		raw, err := c.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var v T
			jerr := json.Unmarshal(raw, &v)
			if jerr == nil {
				return v, nil
			}
			c.log.Warn("malformed cached payload, recomputing", "key", key, "error", jerr)
		case err == goredis.Nil:
			// plain miss
		default:
			c.log.Warn("cache read failed, computing directly", "key", key, "error", err)
		}
	}

	v, err := compute(ctx)
	if err != nil {
		return v, err
	}

	if c != nil && c.rdb != nil {
		if raw, jerr := json.Marshal(v); jerr != nil {
			c.log.Warn("cache payload not serializable", "key", key, "error", jerr)
		} else if serr := c.rdb.Set(ctx, key, raw, ttl).Err(); serr != nil {
			c.log.Warn("cache write failed", "key", key, "error", serr)
		}
	}
	return v, nil
}
