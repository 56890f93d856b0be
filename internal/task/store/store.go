// Package store persists tasks. Implementations return sentinel errors for
// storage facts.
package store

import (
	"context"

	"taskdeck/internal/task/models"
)

// Store is the durable task store.
type Store interface {
	Create(ctx context.Context, task models.Task) error
	FindAll(ctx context.Context) ([]models.Task, error)
	// FindOne returns sentinel.ErrNotFound (wrapped) when absent.
	FindOne(ctx context.Context, id string) (models.Task, error)
	Update(ctx context.Context, task models.Task) error
	// Delete returns sentinel.ErrNotFound (wrapped) when absent.
	Delete(ctx context.Context, id string) error
}
