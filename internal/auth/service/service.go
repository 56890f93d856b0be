// Package service orchestrates registration, login, token refresh, and token
// inspection over the identity store, the credential hasher, and the session
// manager. Every store failure is re-classified here; only internal errors
// cross this boundary unchanged.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"taskdeck/internal/auth/models"
	"taskdeck/internal/platform/metrics"
	dErrors "taskdeck/pkg/domain-errors"
	"taskdeck/pkg/platform/sentinel"
)

// unauthorizedMessage is shared by every authentication failure so a caller
// cannot distinguish an unknown handle from a wrong secret.
const unauthorizedMessage = "invalid handle or secret"

// UserStore is the durable identity store consumed by the service.
type UserStore interface {
	Insert(ctx context.Context, user models.User) error
	FindByHandle(ctx context.Context, handle string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	ExistsByHandle(ctx context.Context, handle string) (bool, error)
}

// Hasher is the credential codec consumed by the service.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, encoded string) (bool, error)
}

// SessionManager mints and resolves token pairs.
type SessionManager interface {
	Issue(ctx context.Context, ownerID string) (models.TokenPair, error)
	ResolveAccess(ctx context.Context, accessToken string) (string, error)
	Rotate(ctx context.Context, oldRefresh string) (models.TokenPair, error)
}

// Service is the authentication façade. It holds no mutable state of its
// own; concurrent requests share only the two external stores.
type Service struct {
	users    UserStore
	hasher   Hasher
	sessions SessionManager
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

// Option configures optional service dependencies.
type Option func(*Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs the authentication service.
func New(users UserStore, hasher Hasher, sessions SessionManager, opts ...Option) *Service {
	s := &Service{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
		logger:   slog.Default(),
		tracer:   otel.Tracer("taskdeck/auth"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new identity. Each step fails closed: validation, then
// the uniqueness check, then hashing, then the insert. No partial identity
// is ever persisted; the store's unique constraint settles check/insert
// races with a conflict.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Register")
	defer span.End()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return models.User{}, err
	}

	taken, err := s.users.ExistsByHandle(ctx, req.Handle)
	if err != nil {
		s.logger.ErrorContext(ctx, "handle uniqueness check failed", "error", err)
		return models.User{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register")
	}
	if taken {
		return models.User{}, dErrors.New(dErrors.CodeConflict, "handle has been used")
	}

	secretHash, err := s.hasher.Hash(req.Secret)
	if err != nil {
		s.logger.ErrorContext(ctx, "secret hashing failed", "error", err)
		return models.User{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register")
	}

	user := models.NewUser(req.Handle, req.DisplayName, secretHash)
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// Lost the race past the uniqueness check; the store's
			// constraint is the arbiter.
			return models.User{}, dErrors.New(dErrors.CodeConflict, "handle has been used")
		}
		s.logger.ErrorContext(ctx, "user insert failed", "error", err)
		return models.User{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register")
	}

	s.metrics.IncrementUsersRegistered()
	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login authenticates a handle/secret pair and issues a token pair. An
// unknown handle and a wrong secret produce the same unauthorized error.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Login")
	defer span.End()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return models.TokenPair{}, err
	}

	user, err := s.users.FindByHandle(ctx, req.Handle)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementLogin("failure")
			return models.TokenPair{}, dErrors.New(dErrors.CodeUnauthorized, unauthorizedMessage)
		}
		s.logger.ErrorContext(ctx, "user lookup failed", "error", err)
		return models.TokenPair{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to log in")
	}

	ok, err := s.hasher.Verify(req.Secret, user.SecretHash)
	if err != nil {
		s.logger.ErrorContext(ctx, "secret verification failed", "error", err)
		return models.TokenPair{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to log in")
	}
	if !ok {
		s.metrics.IncrementLogin("failure")
		return models.TokenPair{}, dErrors.New(dErrors.CodeUnauthorized, unauthorizedMessage)
	}

	pair, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "token issuance failed", "error", err, "user_id", user.ID)
		return models.TokenPair{}, err
	}

	s.metrics.IncrementLogin("success")
	s.metrics.IncrementTokenPairs("login")
	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return pair, nil
}

// Refresh rotates a refresh token into a brand-new pair.
func (s *Service) Refresh(ctx context.Context, req models.RefreshRequest) (models.TokenPair, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Refresh")
	defer span.End()

	if err := req.Validate(); err != nil {
		return models.TokenPair{}, err
	}

	pair, err := s.sessions.Rotate(ctx, req.RefreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	s.metrics.IncrementTokenPairs("refresh")
	return pair, nil
}

// Inspect resolves an access token to its identity. A token whose owner no
// longer exists is treated as unauthorized, never as an internal error.
func (s *Service) Inspect(ctx context.Context, accessToken string) (models.User, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Inspect")
	defer span.End()

	if accessToken == "" {
		return models.User{}, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token")
	}

	ownerID, err := s.sessions.ResolveAccess(ctx, accessToken)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// Orphaned token: the identity was deleted after issuance.
			return models.User{}, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token")
		}
		s.logger.ErrorContext(ctx, "user lookup failed", "error", err, "user_id", ownerID)
		return models.User{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to inspect token")
	}
	return user, nil
}
