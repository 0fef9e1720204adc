package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/shortlink/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	byCode map[shortener.Code]shortener.Mapping
	byURL  map[string]shortener.Code
}

// NewMemoryStore creates a new in-memory mapping store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byCode: make(map[shortener.Code]shortener.Mapping),
		byURL:  make(map[string]shortener.Code),
	}
}

func (m *MemoryStore) FindByLongURL(_ context.Context, url string) (*shortener.Mapping, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	code, ok := m.byURL[url]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	mapping := m.byCode[code]

	return &mapping, nil
}

func (m *MemoryStore) FindByShortCode(_ context.Context, code shortener.Code) (*shortener.Mapping, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mapping, ok := m.byCode[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return &mapping, nil
}

// Insert checks both unique indexes under a single lock.
func (m *MemoryStore) Insert(_ context.Context, mapping *shortener.Mapping) (shortener.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byURL[mapping.LongURL]; ok {
		return shortener.InsertAlreadyExists, nil
	}

	if _, ok := m.byCode[mapping.ShortCode]; ok {
		return shortener.InsertCollision, nil
	}

	m.nextID++
	mapping.ID = m.nextID

	if mapping.CreatedAt.IsZero() {
		mapping.CreatedAt = time.Now()
	}

	m.byCode[mapping.ShortCode] = *mapping
	m.byURL[mapping.LongURL] = mapping.ShortCode

	return shortener.InsertCreated, nil
}

// Len returns the number of stored mappings.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.byCode)
}

var _ shortener.Repository = (*MemoryStore)(nil)
