package cacherepair

import (
	"context"
	"time"

	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// Cache decorates a shortener.Cache, publishing a repair event whenever a
// write fails. The original error is still returned to the caller.
type Cache struct {
	cache   shortener.Cache
	publish messaging.Publish[PopulateRequested]
	now     func() time.Time
	logger  *zap.Logger
}

// NewCache wraps cache with repair-on-failure behaviour.
func NewCache(cache shortener.Cache, publish messaging.Publish[PopulateRequested], logger *zap.Logger) *Cache {
	return &Cache{
		cache:   cache,
		publish: publish,
		now:     time.Now,
		logger:  logger,
	}
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	return c.cache.Get(ctx, key)
}

func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	err := c.cache.Set(ctx, key, value, ttl)
	if err == nil {
		return nil
	}

	event := &PopulateRequested{
		Key:         key,
		Value:       value,
		TTL:         ttl,
		RequestedAt: c.now(),
	}

	if pubErr := c.publish(ctx, event); pubErr != nil {
		c.logger.Error("failed to publish cache repair",
			zap.String("key", key),
			zap.Error(pubErr),
		)
	}

	return err
}

var _ shortener.Cache = (*Cache)(nil)
