package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"synastry-service/models"
)

// MemoryStore holds profiles in memory, keyed by ID
type MemoryStore struct {
	profiles  map[string]models.Profile
	usernames map[string]string // folded username to ID
	mutex     sync.RWMutex
}

var _ ProfileStore = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory profile store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles:  make(map[string]models.Profile),
		usernames: make(map[string]string),
	}
}

// Create adds a profile
func (s *MemoryStore) Create(ctx context.Context, p models.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("profile id is required")
	}
	key := strings.ToLower(p.Username)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.profiles[p.ID]; exists {
		return fmt.Errorf("id %s: %w", p.ID, ErrAlreadyExists)
	}
	if _, exists := s.usernames[key]; exists {
		return fmt.Errorf("username %s: %w", p.Username, ErrAlreadyExists)
	}
	s.profiles[p.ID] = p
	s.usernames[key] = p.ID
	return nil
}

// Get retrieves a profile by ID
func (s *MemoryStore) Get(ctx context.Context, id string) (models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return models.Profile{}, err
	}
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	p, exists := s.profiles[id]
	if !exists {
		return models.Profile{}, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	return p, nil
}

// List returns every stored profile ordered by creation time, then ID
func (s *MemoryStore) List(ctx context.Context) ([]models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mutex.RLock()
	out := make([]models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	s.mutex.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete removes a profile
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()

	p, exists := s.profiles[id]
	if !exists {
		return fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	delete(s.profiles, id)
	delete(s.usernames, strings.ToLower(p.Username))
	return nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
