package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the durable identity record. SecretHash holds the encoded password
// hash and must never leave the auth packages; transport-facing views go
// through Public.
type User struct {
	ID          string
	DisplayName string
	Handle      string
	SecretHash  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewUser builds a user with a fresh ID and timestamps. The secret must
// already be hashed.
func NewUser(handle, displayName, secretHash string) User {
	now := time.Now().UTC()
	return User{
		ID:          uuid.NewString(),
		DisplayName: displayName,
		Handle:      handle,
		SecretHash:  secretHash,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// PublicUser is the caller-facing identity view without the secret hash.
type PublicUser struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Handle      string    `json:"handle"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Public strips the secret hash for transport.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Handle:      u.Handle,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
