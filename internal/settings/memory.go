package settings

import (
	"context"
	"sync"

	"bitbucket.org/crgw/cover-quote/internal/schema"
	"bitbucket.org/crgw/cover-quote/internal/tools/converting"
)

// MemoryStore keeps documents in process. It backs the service when DATABASE_URL is unset.
type MemoryStore struct {
	mu        sync.RWMutex
	documents map[string]schema.Settings
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{documents: make(map[string]schema.Settings)}
}

func (s *MemoryStore) Load(_ context.Context, profile string) (schema.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, ok := s.documents[profile]
	if !ok {
		return schema.Settings{}, ErrNotFound
	}

	return clone(settings), nil
}

func (s *MemoryStore) Save(_ context.Context, profile string, settings schema.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[profile] = clone(settings)

	return nil
}

func clone(settings schema.Settings) schema.Settings {
	settings.AgeDiscountRanges = append([]schema.AgeDiscountRange(nil), settings.AgeDiscountRanges...)
	settings.LicenseDiscounts = append([]schema.LicenseDiscount(nil), settings.LicenseDiscounts...)
	settings.UnmatchedPolicy = converting.ClonePointer(settings.UnmatchedPolicy)

	return settings
}
