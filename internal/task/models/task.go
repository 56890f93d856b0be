package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "taskdeck/pkg/domain-errors"
)

// Status is the task lifecycle state.
type Status string

const (
	StatusTodo    Status = "todo"
	StatusOngoing Status = "ongoing"
	StatusDone    Status = "done"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusOngoing, StatusDone:
		return true
	}
	return false
}

// Task is a tracked work item.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AddTaskRequest is the creation payload.
type AddTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      Status  `json:"status"`
}

// Validate checks the payload shape.
func (r AddTaskRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if !r.Status.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "status must be todo, ongoing, or done")
	}
	return nil
}

// NewTask builds a task from a validated request.
func NewTask(r AddTaskRequest) Task {
	now := time.Now().UTC()
	return Task{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Status:      r.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateTaskRequest carries a partial update; nil fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *Status `json:"status"`
}

// Validate checks the fields that are present.
func (r UpdateTaskRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return dErrors.New(dErrors.CodeValidation, "title cannot be empty")
	}
	if r.Status != nil && !r.Status.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "status must be todo, ongoing, or done")
	}
	return nil
}

// Apply merges the update into the task and touches UpdatedAt.
func (t *Task) Apply(r UpdateTaskRequest) {
	if r.Title != nil {
		t.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		t.Description = r.Description
	}
	if r.Status != nil {
		t.Status = *r.Status
	}
	t.UpdatedAt = time.Now().UTC()
}
