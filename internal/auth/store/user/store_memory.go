package user

import (
	"context"
	"fmt"
	"sync"

	"taskdeck/internal/auth/models"
	"taskdeck/pkg/platform/sentinel"
)

// InMemoryStore keeps users in a map for tests and local development. It
// mirrors the Postgres store's error contract, including conflict on
// duplicate handles.
type InMemoryStore struct {
	mu       sync.RWMutex
	byID     map[string]models.User
	byHandle map[string]string
}

// NewMemory constructs an empty in-memory user store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		byID:     make(map[string]models.User),
		byHandle: make(map[string]string),
	}
}

func (s *InMemoryStore) Insert(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byHandle[user.Handle]; ok {
		return fmt.Errorf("handle %q already taken: %w", user.Handle, sentinel.ErrConflict)
	}
	s.byID[user.ID] = user
	s.byHandle[user.Handle] = user.ID
	return nil
}

func (s *InMemoryStore) FindByHandle(_ context.Context, handle string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byHandle[handle]
	if !ok {
		return models.User{}, fmt.Errorf("user with handle %q: %w", handle, sentinel.ErrNotFound)
	}
	return s.byID[id], nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byID[id]
	if !ok {
		return models.User{}, fmt.Errorf("user with id %q: %w", id, sentinel.ErrNotFound)
	}
	return user, nil
}

func (s *InMemoryStore) ExistsByHandle(_ context.Context, handle string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byHandle[handle]
	return ok, nil
}

// Delete removes a user by ID. Used by tests to simulate identities deleted
// after token issuance.
func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("user with id %q: %w", id, sentinel.ErrNotFound)
	}
	delete(s.byHandle, user.Handle)
	delete(s.byID, id)
	return nil
}
