package shortener_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/serroba/shortlink/internal/shortener"
)

var errBackend = errors.New("backend down")

// sequenceGenerator returns codes from a fixed list, repeating the last one.
type sequenceGenerator struct {
	mu    sync.Mutex
	codes []string
	calls int
}

func (g *sequenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx := min(g.calls, len(g.codes)-1)
	g.calls++

	return g.codes[idx]
}

func (g *sequenceGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.calls
}

// brokenCache fails every operation.
type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (string, error) {
	return "", errBackend
}

func (brokenCache) Set(context.Context, string, string, time.Duration) error {
	return errBackend
}

// countingStore wraps a repository and records calls.
type countingStore struct {
	shortener.Repository

	mu         sync.Mutex
	findByURL  int
	findByCode int
	inserts    int
}

func (s *countingStore) FindByLongURL(ctx context.Context, url string) (*shortener.Mapping, error) {
	s.mu.Lock()
	s.findByURL++
	s.mu.Unlock()

	return s.Repository.FindByLongURL(ctx, url)
}

func (s *countingStore) FindByShortCode(ctx context.Context, code shortener.Code) (*shortener.Mapping, error) {
	s.mu.Lock()
	s.findByCode++
	s.mu.Unlock()

	return s.Repository.FindByShortCode(ctx, code)
}

func (s *countingStore) Insert(ctx context.Context, m *shortener.Mapping) (shortener.InsertResult, error) {
	s.mu.Lock()
	s.inserts++
	s.mu.Unlock()

	return s.Repository.Insert(ctx, m)
}

func (s *countingStore) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.findByURL + s.findByCode + s.inserts
}

// racingStore lets a concurrent writer win the race for the long URL right
// before the engine's own insert.
type racingStore struct {
	shortener.Repository

	winner *shortener.Mapping
	raced  bool
}

func (s *racingStore) Insert(ctx context.Context, m *shortener.Mapping) (shortener.InsertResult, error) {
	if !s.raced {
		s.raced = true

		if _, err := s.Repository.Insert(ctx, s.winner); err != nil {
			return 0, err
		}
	}

	return s.Repository.Insert(ctx, m)
}

// stealingStore lets a concurrent writer take the generated code between the
// existence check and the insert, once.
type stealingStore struct {
	shortener.Repository

	thiefURL string
	stolen   bool
}

func (s *stealingStore) Insert(ctx context.Context, m *shortener.Mapping) (shortener.InsertResult, error) {
	if !s.stolen {
		s.stolen = true

		if _, err := s.Repository.Insert(ctx, &shortener.Mapping{ShortCode: m.ShortCode, LongURL: s.thiefURL}); err != nil {
			return 0, err
		}
	}

	return s.Repository.Insert(ctx, m)
}

// failingStore fails every operation.
type failingStore struct{}

func (failingStore) FindByLongURL(context.Context, string) (*shortener.Mapping, error) {
	return nil, errBackend
}

func (failingStore) FindByShortCode(context.Context, shortener.Code) (*shortener.Mapping, error) {
	return nil, errBackend
}

func (failingStore) Insert(context.Context, *shortener.Mapping) (shortener.InsertResult, error) {
	return 0, errBackend
}
