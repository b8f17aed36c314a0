package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	goredis "github.com/redis/go-redis/v9"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/logger"
)

// RenderCache stores rendered node lists keyed by content hash. A miss is
// reported as (nil, false, nil).
type RenderCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

type redisRenderCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisRenderCache(log *logger.Logger, addr string, ttl time.Duration) (RenderCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisRenderCache{
		log:    log.With("service", "RedisRenderCache"),
		rdb:    rdb,
		ttl:    ttl,
		prefix: "render:",
	}, nil
}

func (c *redisRenderCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (c *redisRenderCache) Set(ctx context.Context, key string, value []byte) error {
	return c.rdb.Set(ctx, c.prefix+key, value, c.ttl).Err()
}

func (c *redisRenderCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// MemoryRenderCacheSize bounds the in-process cache; the least recently used
// entry is evicted first.
const MemoryRenderCacheSize = 4096

// NewMemoryRenderCache keeps entries in process. Used when Redis is not
// configured. A ttl of zero keeps entries until they are evicted.
func NewMemoryRenderCache(ttl time.Duration) RenderCache {
	return newMemoryRenderCache(ttl, MemoryRenderCacheSize)
}

func newMemoryRenderCache(ttl time.Duration, size int) *memoryRenderCache {
	return &memoryRenderCache{entries: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

type memoryRenderCache struct {
	entries *expirable.LRU[string, []byte]
}

func (c *memoryRenderCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (c *memoryRenderCache) Set(_ context.Context, key string, value []byte) error {
	c.entries.Add(key, append([]byte(nil), value...))
	return nil
}

func (c *memoryRenderCache) Close() error {
	c.entries.Purge()
	return nil
}
