package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"taskdeck/internal/task/models"
	"taskdeck/pkg/platform/sentinel"
)

// InMemoryStore keeps tasks in a map for tests and local development.
type InMemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]models.Task
}

// NewMemory constructs an empty in-memory task store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{tasks: make(map[string]models.Task)}
}

func (s *InMemoryStore) Create(_ context.Context, task models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = task
	return nil
}

func (s *InMemoryStore) FindAll(_ context.Context) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) FindOne(_ context.Context, id string) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("task with id %q: %w", id, sentinel.ErrNotFound)
	}
	return t, nil
}

func (s *InMemoryStore) Update(_ context.Context, task models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.ID]; !ok {
		return fmt.Errorf("task with id %q: %w", task.ID, sentinel.ErrNotFound)
	}
	s.tasks[task.ID] = task
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("task with id %q: %w", id, sentinel.ErrNotFound)
	}
	delete(s.tasks, id)
	return nil
}
