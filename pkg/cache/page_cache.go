package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix = "campus:view:"

	HeaderCache = "X-Cache"
)

// PageCache stores rendered public views in Redis and drops them when the
// underlying data changes. A PageCache without a client caches nothing.
type PageCache struct {
	client   *redis.Client
	ttl      time.Duration
	basePath string
	logger   *zap.Logger
}

type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	BasePath string
}

// NewPageCache connects to Redis when opts.Addr is set and verifies
// connectivity.
func NewPageCache(ctx context.Context, opts Options, logger *zap.Logger) (*PageCache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pc := &PageCache{ttl: opts.TTL, basePath: opts.BasePath, logger: logger}
	if opts.Addr == "" {
		logger.Info("view cache disabled")
		return pc, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("Redis client connected", zap.String("addr", opts.Addr))
	pc.client = rdb
	return pc, nil
}

func (p *PageCache) Enabled() bool { return p.client != nil }

func (p *PageCache) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}

func key(path string) string {
	return keyPrefix + path
}

// Revalidate drops the cached views of the given paths, including any
// query-string variants.
func (p *PageCache) Revalidate(ctx context.Context, paths ...string) {
	if p.client == nil {
		return
	}

	for _, path := range paths {
		keys := []string{key(path)}

		iter := p.client.Scan(ctx, 0, key(path)+"?*", 100).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			p.logger.Warn("view cache scan failed", zap.String("path", path), zap.Error(err))
		}

		if err := p.client.Del(ctx, keys...).Err(); err != nil {
			p.logger.Warn("view cache revalidate failed", zap.String("path", path), zap.Error(err))
			continue
		}
		p.logger.Debug("view revalidated", zap.String("path", path))
	}
}

// Middleware serves GET requests from the cache and stores successful
// JSON responses.
func (p *PageCache) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if p.client == nil || c.Method() != fiber.MethodGet {
			return c.Next()
		}

		path := strings.TrimPrefix(c.OriginalURL(), p.basePath)
		if path == "" || path[0] != '/' {
			path = "/" + path
		}
		k := key(path)

		body, err := p.client.Get(c.UserContext(), k).Bytes()
		switch {
		case err == nil:
			c.Set(HeaderCache, "HIT")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
			return c.Send(body)
		case !errors.Is(err, redis.Nil):
			p.logger.Warn("view cache read failed", zap.String("key", k), zap.Error(err))
			return c.Next()
		}

		c.Set(HeaderCache, "MISS")
		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() == fiber.StatusOK {
			stored := append([]byte(nil), c.Response().Body()...)
			if err := p.client.Set(c.UserContext(), k, stored, p.ttl).Err(); err != nil {
				p.logger.Warn("view cache write failed", zap.String("key", k), zap.Error(err))
			}
		}
		return nil
	}
}
