// internal/store/profile_store.go
package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jason-s-yu/pairup/internal/models"
)

// ProfileStore keeps registered profiles in memory for the lifetime of the process.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]models.Profile
}

// NewProfileStore returns an empty in-memory store for Profiles.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[uuid.UUID]models.Profile),
	}
}

// Register creates a profile under a freshly generated id. Names need not be unique.
func (s *ProfileStore) Register(name string) (models.Profile, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to generate profile id: %w", err)
	}
	p := models.Profile{ID: id, Name: name}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[id] = p
	return p, nil
}

// Lookup returns the profile stored under id, or ErrNotFound.
func (s *ProfileStore) Lookup(id uuid.UUID) (models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return models.Profile{}, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	return p, nil
}

// Exists reports whether a profile has been registered under id.
func (s *ProfileStore) Exists(id uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.profiles[id]
	return ok
}

// Count returns the number of registered profiles.
func (s *ProfileStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}
