package shortener

import "errors"

var (
	ErrInvalidURL              = errors.New("invalid url")
	ErrNotFound                = errors.New("short url not found")
	ErrCodeGenerationExhausted = errors.New("could not generate a unique short code")
	ErrStoreUnavailable        = errors.New("durable store unavailable")
	ErrCacheMiss               = errors.New("cache miss")
)
