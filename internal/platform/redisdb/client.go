package redisdb

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cinegraph/cinegraph-backend/internal/platform/envutil"
	"github.com/cinegraph/cinegraph-backend/internal/platform/logger"
)

// Client wraps the redis connection used as the page cache. A cache outage
// must never take a page down, so construction succeeds even when the ping
// fails; commands will error per call and the cache layer falls through.
type Client struct {
	RDB *goredis.Client
	log *logger.Logger
}

func NewFromEnv(log *logger.Logger) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("redisdb: logger required")
	}

	addr := envutil.Str("REDIS_ADDR", "localhost:6379")
	db := envutil.Int("REDIS_DB", 0)
	dialTimeout := envutil.Seconds("REDIS_DIAL_TIMEOUT_SECONDS", 5*time.Second)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DB:          db,
		DialTimeout: dialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, caching will be degraded", "addr", addr, "error", err)
	}

	return &Client{
		RDB: rdb,
		log: log.With("client", "RedisDB"),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.RDB == nil {
		return nil
	}
	err := c.RDB.Close()
	c.RDB = nil
	return err
}
