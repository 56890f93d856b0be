package models

import (
	"strings"

	dErrors "taskdeck/pkg/domain-errors"
)

const (
	handleMinLen = 4
	handleMaxLen = 16
	secretMinLen = 8
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	Secret      string `json:"secret"`
}

// Normalize trims surrounding whitespace from the public fields. The secret
// is taken verbatim.
func (r *RegisterRequest) Normalize() {
	r.Handle = strings.TrimSpace(r.Handle)
	r.DisplayName = strings.TrimSpace(r.DisplayName)
}

// Validate checks field shapes before any store access. Errors name the
// violated constraint.
func (r RegisterRequest) Validate() error {
	if err := validateHandle(r.Handle); err != nil {
		return err
	}
	return validateSecret(r.Secret)
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Handle string `json:"handle"`
	Secret string `json:"secret"`
}

func (r *LoginRequest) Normalize() {
	r.Handle = strings.TrimSpace(r.Handle)
}

// Validate applies the same shape checks as registration so malformed input
// is rejected before any store lookup.
func (r LoginRequest) Validate() error {
	if err := validateHandle(r.Handle); err != nil {
		return err
	}
	return validateSecret(r.Secret)
}

// RefreshRequest carries the refresh token to rotate.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshRequest) Validate() error {
	if r.RefreshToken == "" {
		return dErrors.New(dErrors.CodeValidation, "refresh_token is required")
	}
	return nil
}

func validateHandle(handle string) error {
	if len(handle) < handleMinLen {
		return dErrors.New(dErrors.CodeValidation, "handle cannot be less than 4 characters")
	}
	if len(handle) > handleMaxLen {
		return dErrors.New(dErrors.CodeValidation, "handle cannot be more than 16 characters")
	}
	return nil
}

func validateSecret(secret string) error {
	if len(secret) < secretMinLen {
		return dErrors.New(dErrors.CodeValidation, "secret cannot be less than 8 characters")
	}
	return nil
}
