// Package service implements the task tracker operations over the task
// store. Existence of a task is not secret, so store misses surface as plain
// not-found errors.
package service

import (
	"context"
	"errors"
	"log/slog"

	"taskdeck/internal/task/models"
	"taskdeck/internal/task/store"
	dErrors "taskdeck/pkg/domain-errors"
	"taskdeck/pkg/platform/sentinel"
)

// Service orchestrates task CRUD.
type Service struct {
	tasks  store.Store
	logger *slog.Logger
}

// New constructs the task service.
func New(tasks store.Store, logger *slog.Logger) *Service {
	return &Service{tasks: tasks, logger: logger}
}

// Create validates and persists a new task.
func (s *Service) Create(ctx context.Context, req models.AddTaskRequest) (models.Task, error) {
	if err := req.Validate(); err != nil {
		return models.Task{}, err
	}
	task := models.NewTask(req)
	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.ErrorContext(ctx, "task create failed", "error", err)
		return models.Task{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to add task")
	}
	return task, nil
}

// List returns all tasks ordered by creation time.
func (s *Service) List(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "task list failed", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tasks")
	}
	return tasks, nil
}

// Update applies a partial update to an existing task.
func (s *Service) Update(ctx context.Context, id string, req models.UpdateTaskRequest) (models.Task, error) {
	if err := req.Validate(); err != nil {
		return models.Task{}, err
	}

	task, err := s.tasks.FindOne(ctx, id)
	if err != nil {
		return models.Task{}, s.classifyLookup(ctx, err, id)
	}

	task.Apply(req)
	if err := s.tasks.Update(ctx, task); err != nil {
		return models.Task{}, s.classifyLookup(ctx, err, id)
	}
	return task, nil
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return s.classifyLookup(ctx, err, id)
	}
	return nil
}

func (s *Service) classifyLookup(ctx context.Context, err error, id string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "task not found")
	}
	s.logger.ErrorContext(ctx, "task store failure", "error", err, "task_id", id)
	return dErrors.Wrap(err, dErrors.CodeInternal, "task store failure")
}
