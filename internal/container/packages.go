package container

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/cacherepair"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/serroba/shortlink/internal/health"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/middleware"
	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	connectTimeout   = 5 * time.Second
	cacheRepairGroup = "cache-repair"
	apiTitle         = "URL Shortener"
	apiVersion       = "1.0.0"
)

// RedisClient owns the Redis connection so the injector can close it.
type RedisClient struct {
	*redis.Client
}

// Shutdown closes the Redis connection.
func (c *RedisClient) Shutdown() error {
	return c.Close()
}

// PostgresPool owns the PostgreSQL pool so the injector can close it.
type PostgresPool struct {
	*pgxpool.Pool
}

// Shutdown closes the pool.
func (p *PostgresPool) Shutdown() error {
	p.Close()

	return nil
}

// LoggerPackage provides the process-wide zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		return NewLogger(opts.LogFormat, opts.LogLevel)
	})
}

// NewLogger builds a console (development) or json (production) logger.
func NewLogger(format, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	cfg := zap.NewDevelopmentConfig()
	if format == "json" {
		cfg = zap.NewProductionConfig()
	}

	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}

// RedisPackage provides the Redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*RedisClient, error) {
		opts := do.MustInvoke[*Options](i)

		client := redis.NewClient(&redis.Options{
			Addr: opts.RedisAddr,
		})

		return &RedisClient{Client: client}, nil
	})
}

// PostgresPackage provides the PostgreSQL connection pool.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*PostgresPool, error) {
		opts := do.MustInvoke[*Options](i)

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		pool, err := pgxpool.New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("create postgres pool: %w", err)
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()

			return nil, fmt.Errorf("ping postgres: %w", err)
		}

		return &PostgresPool{Pool: pool}, nil
	})
}

// PublisherGroupPackage provides the redis-stream publisher used for cache repair.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*RedisClient](i)
		logger := do.MustInvoke[*zap.Logger](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client.Client,
		}, messaging.NewZapLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("create publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})
}

// ConsumerGroupPackage provides the consumers that re-apply failed cache writes.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*RedisClient](i)
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client.Client,
			ConsumerGroup: cacheRepairGroup,
		}, messaging.NewZapLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("create subscriber: %w", err)
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(
			subscriber,
			cacherepair.TopicPopulate,
			cacherepair.NewHandler(store.NewRedisCache(client.Client), time.Now, logger),
			logger,
		))

		return group, nil
	})
}

// RepositoryPackage provides the durable store and the cache for the configured backend.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortener.Repository, error) {
		opts := do.MustInvoke[*Options](i)
		if opts.Backend == BackendMemory {
			return store.NewMemoryStore(), nil
		}

		pool := do.MustInvoke[*PostgresPool](i)
		pgStore := store.NewPostgresStore(pool.Pool)

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		if err := pgStore.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}

		return pgStore, nil
	})

	do.Provide(injector, func(i *do.Injector) (shortener.Cache, error) {
		opts := do.MustInvoke[*Options](i)
		if opts.Backend == BackendMemory {
			return store.NewMemoryCache(), nil
		}

		client := do.MustInvoke[*RedisClient](i)
		publishers := do.MustInvoke[*messaging.PublisherGroup](i)
		logger := do.MustInvoke[*zap.Logger](i)

		publish := messaging.NewPublishFunc[cacherepair.PopulateRequested](publishers.Publisher(), cacherepair.TopicPopulate)

		return cacherepair.NewCache(store.NewRedisCache(client.Client), publish, logger), nil
	})
}

// ShortenerPackage provides the shortening service.
func ShortenerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*shortener.Service, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		generator, err := shortener.NewCodeGenerator()
		if err != nil {
			return nil, fmt.Errorf("create code generator: %w", err)
		}

		return shortener.NewService(
			do.MustInvoke[shortener.Repository](i),
			do.MustInvoke[shortener.Cache](i),
			generator,
			opts.ShortBaseURL(),
			logger.Named("shortener"),
		), nil
	})
}

// HTTPPackage provides the router and the huma API with all routes registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)

		api := humachi.New(router, huma.DefaultConfig(apiTitle, apiVersion))
		api.UseMiddleware(middleware.RequestLogger(logger.Named("http")))

		health.RegisterRoutes(api, newHealthHandler(i))
		handlers.RegisterRoutes(api, handlers.NewURLHandler(
			do.MustInvoke[*shortener.Service](i),
			logger.Named("handlers"),
		))

		return api, nil
	})
}

func newHealthHandler(i *do.Injector) *health.Handler {
	opts := do.MustInvoke[*Options](i)
	if opts.Backend == BackendMemory {
		return health.NewHandler(nil, nil)
	}

	client := do.MustInvoke[*RedisClient](i)
	pool := do.MustInvoke[*PostgresPool](i)

	return health.NewHandler(health.NewRedisChecker(client.Client), pool)
}
