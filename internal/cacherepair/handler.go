package cacherepair

import (
	"context"
	"time"

	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// NewHandler returns a handler that re-applies failed cache writes with the
// remaining TTL. Events whose TTL has already run out are dropped.
func NewHandler(cache shortener.Cache, now func() time.Time, logger *zap.Logger) messaging.Handler[PopulateRequested] {
	return func(ctx context.Context, event *PopulateRequested) error {
		ttl := event.TTL
		if ttl > 0 {
			ttl -= now().Sub(event.RequestedAt)
			if ttl <= 0 {
				logger.Debug("dropping expired cache repair", zap.String("key", event.Key))

				return nil
			}
		}

		if err := cache.Set(ctx, event.Key, event.Value, ttl); err != nil {
			return err
		}

		logger.Debug("cache entry repaired",
			zap.String("key", event.Key),
			zap.Duration("ttl", ttl),
		)

		return nil
	}
}
