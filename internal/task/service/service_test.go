package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/task/models"
	"taskdeck/internal/task/store"
	dErrors "taskdeck/pkg/domain-errors"
)

func newService() *Service {
	return New(store.NewMemory(), slog.New(slog.DiscardHandler))
}

func strPtr(s string) *string { return &s }

func statusPtr(s models.Status) *models.Status { return &s }

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	t.Run("happy path", func(t *testing.T) {
		task, err := svc.Create(ctx, models.AddTaskRequest{
			Title:  "write migrations",
			Status: models.StatusTodo,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, task.ID)
		assert.Equal(t, "write migrations", task.Title)
		assert.Equal(t, models.StatusTodo, task.Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.Create(ctx, models.AddTaskRequest{Title: "x", Status: "blocked"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := svc.Create(ctx, models.AddTaskRequest{Title: "  ", Status: models.StatusTodo})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestListUpdateDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	created, err := svc.Create(ctx, models.AddTaskRequest{
		Title:       "ship auth core",
		Description: strPtr("tokens and hashing"),
		Status:      models.StatusOngoing,
	})
	require.NoError(t, err)

	t.Run("list contains created task", func(t *testing.T) {
		tasks, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, created.ID, tasks[0].ID)
	})

	t.Run("partial update", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, models.UpdateTaskRequest{
			Status: statusPtr(models.StatusDone),
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusDone, updated.Status)
		assert.Equal(t, "ship auth core", updated.Title, "unset fields stay unchanged")
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
	})

	t.Run("update missing task", func(t *testing.T) {
		_, err := svc.Update(ctx, "missing-id", models.UpdateTaskRequest{Title: strPtr("x")})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("delete then list empty", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, created.ID))

		tasks, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, tasks)

		err = svc.Delete(ctx, created.ID)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
