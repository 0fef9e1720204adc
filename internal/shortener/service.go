package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultCacheTTL is how long each cache projection lives.
	DefaultCacheTTL = 7 * 24 * time.Hour
	// MaxGenerationAttempts bounds the number of codes drawn for a new URL.
	MaxGenerationAttempts = 10

	longKeyPrefix  = "long:"
	shortKeyPrefix = "short:"
)

// LongKey returns the cache key holding the code for a normalized URL.
func LongKey(normalizedURL string) string {
	return longKeyPrefix + normalizedURL
}

// ShortKey returns the cache key holding the normalized URL for a code.
func ShortKey(code Code) string {
	return shortKeyPrefix + string(code)
}

// Service shortens URLs and resolves codes using a cache in front of a
// durable repository.
type Service struct {
	store        Repository
	cache        Cache
	generateCode CodeGenerator
	baseURL      string
	cacheTTL     time.Duration
	maxAttempts  int
	now          func() time.Time
	logger       *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCacheTTL overrides DefaultCacheTTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.cacheTTL = ttl
	}
}

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new shortening service.
func NewService(
	store Repository,
	cache Cache,
	generator CodeGenerator,
	baseURL string,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		store:        store,
		cache:        cache,
		generateCode: generator,
		baseURL:      baseURL,
		cacheTTL:     DefaultCacheTTL,
		maxAttempts:  MaxGenerationAttempts,
		now:          time.Now,
		logger:       logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Shorten returns the short link for rawURL, creating a mapping if the
// normalized URL has never been seen.
func (s *Service) Shorten(ctx context.Context, rawURL string) (*Link, error) {
	longURL, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	if code, ok := s.cachedValue(ctx, LongKey(longURL)); ok {
		return s.link(Code(code), longURL), nil
	}

	existing, err := s.store.FindByLongURL(ctx, longURL)
	if err == nil {
		s.populate(ctx, existing)

		return s.link(existing.ShortCode, longURL), nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	mapping, err := s.create(ctx, longURL)
	if err != nil {
		return nil, err
	}

	s.populate(ctx, mapping)

	return s.link(mapping.ShortCode, longURL), nil
}

// create draws codes until one is persisted, the long URL turns out to be owned
// by a concurrent writer, or the attempt budget runs out.
func (s *Service) create(ctx context.Context, longURL string) (*Mapping, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		code := Code(s.generateCode())

		_, err := s.store.FindByShortCode(ctx, code)
		if err == nil {
			s.logger.Debug("generated code already taken",
				zap.String("code", string(code)),
				zap.Int("attempt", attempt),
			)

			continue
		}

		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}

		mapping := &Mapping{
			ShortCode: code,
			LongURL:   longURL,
			CreatedAt: s.now(),
		}

		result, err := s.store.Insert(ctx, mapping)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}

		switch result {
		case InsertCreated:
			return mapping, nil
		case InsertAlreadyExists:
			return s.winner(ctx, longURL)
		case InsertCollision:
			s.logger.Debug("generated code lost insert race",
				zap.String("code", string(code)),
				zap.Int("attempt", attempt),
			)
		}
	}

	s.logger.Error("short code generation exhausted",
		zap.String("longUrl", longURL),
		zap.Int("attempts", s.maxAttempts),
	)

	return nil, ErrCodeGenerationExhausted
}

// winner reads the mapping created by whichever request inserted longURL first.
func (s *Service) winner(ctx context.Context, longURL string) (*Mapping, error) {
	mapping, err := s.store.FindByLongURL(ctx, longURL)
	if err != nil {
		return nil, fmt.Errorf("%w: reading concurrent mapping: %w", ErrStoreUnavailable, err)
	}

	return mapping, nil
}

// Resolve returns the normalized long URL for code.
func (s *Service) Resolve(ctx context.Context, code Code) (string, error) {
	if !IsValidCode(string(code)) {
		return "", ErrNotFound
	}

	if longURL, ok := s.cachedValue(ctx, ShortKey(code)); ok {
		return longURL, nil
	}

	mapping, err := s.store.FindByShortCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}

		return "", fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	s.setCache(ctx, ShortKey(mapping.ShortCode), mapping.LongURL)

	return mapping.LongURL, nil
}

func (s *Service) link(code Code, longURL string) *Link {
	return &Link{
		Code:     code,
		LongURL:  longURL,
		ShortURL: fmt.Sprintf("%s/%s", s.baseURL, code),
	}
}

// cachedValue treats every cache failure as a miss.
func (s *Service) cachedValue(ctx context.Context, key string) (string, bool) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}

		return "", false
	}

	return value, true
}

// populate writes both projections independently.
func (s *Service) populate(ctx context.Context, m *Mapping) {
	s.setCache(ctx, LongKey(m.LongURL), string(m.ShortCode))
	s.setCache(ctx, ShortKey(m.ShortCode), m.LongURL)
}

func (s *Service) setCache(ctx context.Context, key, value string) {
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
