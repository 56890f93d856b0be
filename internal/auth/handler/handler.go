// Package handler exposes the authentication endpoints over HTTP. It
// delegates to the auth service and owns no business logic.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"taskdeck/internal/auth/models"
	"taskdeck/internal/platform/middleware"
	"taskdeck/internal/transport/http/shared"
	dErrors "taskdeck/pkg/domain-errors"
)

// Service defines the auth operations consumed by the handler.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error)
	Refresh(ctx context.Context, req models.RefreshRequest) (models.TokenPair, error)
	Inspect(ctx context.Context, accessToken string) (models.User, error)
}

// Handler handles /auth endpoints.
type Handler struct {
	auth   Service
	logger *slog.Logger
}

// New creates an auth Handler.
func New(auth Service, logger *slog.Logger) *Handler {
	return &Handler{auth: auth, logger: logger}
}

// Register mounts the auth routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/refresh", h.handleRefresh)
	r.Get("/auth/inspect", h.handleInspect)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	user, err := h.auth.Register(r.Context(), req)
	if err != nil {
		h.logFailure(r, "register failed", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, user.Public())
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	pair, err := h.auth.Login(r.Context(), req)
	if err != nil {
		h.logFailure(r, "login failed", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, pair)
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	pair, err := h.auth.Refresh(r.Context(), req)
	if err != nil {
		h.logFailure(r, "refresh failed", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, pair)
}

func (h *Handler) handleInspect(w http.ResponseWriter, r *http.Request) {
	token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")

	user, err := h.auth.Inspect(r.Context(), token)
	if err != nil {
		h.logFailure(r, "inspect failed", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, user.Public())
}

func (h *Handler) logFailure(r *http.Request, msg string, err error) {
	// Expected caller failures stay at debug; only internals are warnings.
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.WarnContext(r.Context(), msg,
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		return
	}
	h.logger.DebugContext(r.Context(), msg,
		"error", err,
		"request_id", middleware.GetRequestID(r.Context()),
	)
}
