package shortener

import "time"

// Code represents a short URL code.
type Code string

// Mapping is the authoritative record linking a normalized long URL to its code.
type Mapping struct {
	ID        int64
	ShortCode Code
	LongURL   string
	CreatedAt time.Time
}

// Link is the result of shortening a URL.
type Link struct {
	Code     Code
	LongURL  string
	ShortURL string
}
