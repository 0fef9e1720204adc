package shortener

import (
	"fmt"
	"net/url"
	"strings"
)

// MaxURLLength is the longest normalized URL the durable store accepts.
const MaxURLLength = 2048

// NormalizeURL trims surrounding whitespace and strips a single trailing slash.
// The result must be an absolute http(s) URL with a host.
func NormalizeURL(rawURL string) (string, error) {
	normalized := strings.TrimSpace(rawURL)
	normalized = strings.TrimSuffix(normalized, "/")

	if normalized == "" {
		return "", fmt.Errorf("%w: empty url", ErrInvalidURL)
	}

	if len(normalized) > MaxURLLength {
		return "", fmt.Errorf("%w: longer than %d bytes", ErrInvalidURL, MaxURLLength)
	}

	u, err := url.Parse(normalized)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}

	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	return normalized, nil
}
