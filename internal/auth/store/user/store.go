// Package user persists identity records. Implementations return sentinel
// errors for storage facts; translating those into caller-facing failures is
// the service's job.
package user

import (
	"context"

	"taskdeck/internal/auth/models"
)

// Store is the durable identity store. All operations are single-record and
// atomic; the handle uniqueness constraint in the backing store is the
// authoritative arbiter for concurrent registration.
type Store interface {
	// Insert persists a new user. Returns sentinel.ErrConflict (wrapped)
	// when the handle is already taken.
	Insert(ctx context.Context, user models.User) error
	// FindByHandle returns sentinel.ErrNotFound (wrapped) when absent.
	// Handles are matched case-sensitively.
	FindByHandle(ctx context.Context, handle string) (models.User, error)
	// FindByID returns sentinel.ErrNotFound (wrapped) when absent.
	FindByID(ctx context.Context, id string) (models.User, error)
	// ExistsByHandle reports whether a user with the handle exists.
	ExistsByHandle(ctx context.Context, handle string) (bool, error)
}
