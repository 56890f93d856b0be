// Package handler exposes the task endpoints over HTTP. All routes sit
// behind the access-token middleware.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"taskdeck/internal/task/models"
	"taskdeck/internal/transport/http/shared"
	dErrors "taskdeck/pkg/domain-errors"
)

// Service defines the task operations consumed by the handler.
type Service interface {
	Create(ctx context.Context, req models.AddTaskRequest) (models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	Update(ctx context.Context, id string, req models.UpdateTaskRequest) (models.Task, error)
	Delete(ctx context.Context, id string) error
}

// Handler handles /tasks endpoints.
type Handler struct {
	tasks  Service
	logger *slog.Logger
}

// New creates a task Handler.
func New(tasks Service, logger *slog.Logger) *Handler {
	return &Handler{tasks: tasks, logger: logger}
}

// Register mounts the task routes onto r. The caller wires auth middleware
// around the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/tasks", h.handleList)
	r.Post("/tasks", h.handleCreate)
	r.Put("/tasks/{id}", h.handleUpdate)
	r.Delete("/tasks/{id}", h.handleDelete)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.AddTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	task, err := h.tasks.Create(r.Context(), req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, task)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	shared.WriteJSON(w, http.StatusOK, tasks)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	task, err := h.tasks.Update(r.Context(), id, req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, task)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "task has been deleted",
	})
}
