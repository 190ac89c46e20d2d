package storage

import (
	"context"
	"errors"
	"sync"

	catalogapp "github.com/bookhaven/backend/internal/application/catalog"
)

// StubCoverStorage keeps uploaded covers in memory and hands back fake URLs.
// Use this in development when no S3-compatible backend is configured.
type StubCoverStorage struct {
	// BaseURL is the base URL for generated cover URLs.
	// Defaults to "https://covers.example.com" if not set.
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStubCoverStorage creates a new StubCoverStorage
func NewStubCoverStorage() *StubCoverStorage {
	return &StubCoverStorage{
		BaseURL: "https://covers.example.com",
		objects: make(map[string][]byte),
	}
}

// Ensure StubCoverStorage implements CoverStorage
var _ catalogapp.CoverStorage = (*StubCoverStorage)(nil)

// Upload keeps the cover in memory and returns its would-be public URL
func (s *StubCoverStorage) Upload(_ context.Context, key, _ string, data []byte) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	if len(data) == 0 {
		return "", errors.New("cover data is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.objects[key] = stored

	return s.BaseURL + "/" + key, nil
}

// Get returns a stored cover (for tests)
func (s *StubCoverStorage) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}

// Size returns the number of stored covers (for tests)
func (s *StubCoverStorage) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
