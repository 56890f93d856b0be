// Package session implements issuance, resolution, and rotation of the
// opaque access/refresh token pair backed by the ephemeral cache.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskdeck/internal/auth/models"
	"taskdeck/internal/auth/store/token"
	dErrors "taskdeck/pkg/domain-errors"
	"taskdeck/pkg/platform/sentinel"
	"taskdeck/pkg/secrets"
)

// Key namespaces keep the two token classes from colliding in the cache.
const (
	accessPrefix  = "access:"
	refreshPrefix = "refresh:"
)

// Default token lifetimes.
const (
	DefaultAccessTTL  = 5 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Config carries the token lifetimes. Zero values fall back to the defaults;
// tests shorten them to exercise expiry.
type Config struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Manager is stateless business logic over the token cache. All shared state
// lives in the cache itself, so a Manager is safe for concurrent use.
type Manager struct {
	cache      token.Cache
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewManager constructs a Manager over the given cache.
func NewManager(cache token.Cache, cfg Config) *Manager {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	return &Manager{
		cache:      cache,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}
}

// Issue mints a fresh token pair for ownerID and stores both in the cache.
// The access token is written first; a reader may briefly observe it before
// the refresh token appears. If either write fails the pair is not returned,
// even though an already-written access token stays in the cache until its
// TTL elapses.
func (m *Manager) Issue(ctx context.Context, ownerID string) (models.TokenPair, error) {
	access, err := secrets.GenerateToken()
	if err != nil {
		return models.TokenPair{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate token")
	}
	refresh, err := secrets.GenerateToken()
	if err != nil {
		return models.TokenPair{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate token")
	}

	if err := m.cache.Put(ctx, accessPrefix+access, ownerID, m.accessTTL); err != nil {
		return models.TokenPair{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store token")
	}
	if err := m.cache.Put(ctx, refreshPrefix+refresh, ownerID, m.refreshTTL); err != nil {
		return models.TokenPair{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store token")
	}

	return models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		OwnerID:      ownerID,
	}, nil
}

// ResolveAccess maps an access token back to its owner. A missing or expired
// token is an authentication failure at this boundary, never a storage error.
func (m *Manager) ResolveAccess(ctx context.Context, accessToken string) (string, error) {
	return m.resolve(ctx, accessPrefix+accessToken)
}

// ResolveRefresh maps a refresh token back to its owner with the same
// translation as ResolveAccess.
func (m *Manager) ResolveRefresh(ctx context.Context, refreshToken string) (string, error) {
	return m.resolve(ctx, refreshPrefix+refreshToken)
}

func (m *Manager) resolve(ctx context.Context, key string) (string, error) {
	ownerID, err := m.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "token cache unavailable")
	}
	return ownerID, nil
}

// Rotate resolves the owner of oldRefresh and mints a brand-new pair. The
// consumed refresh token is not invalidated; it stays usable until its own
// TTL elapses, so two concurrent rotations of the same token both succeed.
func (m *Manager) Rotate(ctx context.Context, oldRefresh string) (models.TokenPair, error) {
	ownerID, err := m.ResolveRefresh(ctx, oldRefresh)
	if err != nil {
		return models.TokenPair{}, err
	}
	pair, err := m.Issue(ctx, ownerID)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("rotate: %w", err)
	}
	return pair, nil
}
