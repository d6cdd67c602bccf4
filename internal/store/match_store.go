// internal/store/match_store.go
package store

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jason-s-yu/pairup/internal/models"
)

// MatchStore holds every match created since startup. Matches are write-once.
type MatchStore struct {
	mu      sync.RWMutex
	matches map[uuid.UUID]models.Match
}

func NewMatchStore() *MatchStore {
	return &MatchStore{
		matches: make(map[uuid.UUID]models.Match),
	}
}

// Record stores m under its id. An id that is already present is never overwritten.
func (s *MatchStore) Record(m models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.matches[m.ID]; exists {
		return fmt.Errorf("match %s: %w", m.ID, ErrDuplicateMatch)
	}
	s.matches[m.ID] = m
	return nil
}

func (s *MatchStore) Get(id uuid.UUID) (models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[id]
	if !ok {
		return models.Match{}, fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	return m, nil
}

// List returns a copy of all recorded matches, sorted by id so output is stable between calls.
func (s *MatchStore) List() []models.Match {
	s.mu.RLock()
	out := make([]models.Match, 0, len(s.matches))
	for _, m := range s.matches {
		out = append(out, m)
	}
	s.mu.RUnlock()

	sortByID(out)
	return out
}

// ListForProfile returns the matches profileID took part in.
func (s *MatchStore) ListForProfile(profileID uuid.UUID) []models.Match {
	s.mu.RLock()
	out := []models.Match{}
	for _, m := range s.matches {
		if m.Involves(profileID) {
			out = append(out, m)
		}
	}
	s.mu.RUnlock()

	sortByID(out)
	return out
}

func (s *MatchStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matches)
}

func sortByID(ms []models.Match) {
	sort.Slice(ms, func(i, j int) bool {
		return bytes.Compare(ms[i].ID[:], ms[j].ID[:]) < 0
	})
}
