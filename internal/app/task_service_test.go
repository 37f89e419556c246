package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestTaskService_Create(t *testing.T) {
	var stored *domain.Task
	tasks := &mockTaskRepo{
		createFn: func(_ context.Context, tk *domain.Task) (*domain.Task, error) {
			stored = tk
			out := *tk
			out.ID = 11
			return &out, nil
		},
	}
	svc := NewTaskService(tasks, &mockProjectRepo{})

	got, err := svc.Create(context.Background(), 1, 2, "Buy seeds", strPtr("tomatoes"))
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ID)
	assert.Equal(t, int64(1), stored.UserID)
	assert.Equal(t, int64(2), stored.ProjectID)
	assert.Equal(t, "tomatoes", *stored.Description)
}

func TestTaskService_CreateRequiresOwnedProject(t *testing.T) {
	projects := &mockProjectRepo{
		getFn: func(context.Context, int64, int64) (*domain.Project, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := NewTaskService(&mockTaskRepo{}, projects)

	_, err := svc.Create(context.Background(), 1, 99, "title", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Create(context.Background(), 1, 2, "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestTaskService_UpdateDescriptionOnly(t *testing.T) {
	existing := &domain.Task{ID: 5, UserID: 1, ProjectID: 3, Title: "keep me", Description: strPtr("old")}
	var written *domain.Task
	tasks := &mockTaskRepo{
		getFn: func(context.Context, int64, int64) (*domain.Task, error) {
			cp := *existing
			return &cp, nil
		},
		updateFn: func(_ context.Context, tk *domain.Task) (*domain.Task, error) {
			written = tk
			return tk, nil
		},
	}
	projectLookups := 0
	projects := &mockProjectRepo{
		getFn: func(_ context.Context, userID, id int64) (*domain.Project, error) {
			projectLookups++
			return &domain.Project{ID: id, UserID: userID}, nil
		},
	}
	svc := NewTaskService(tasks, projects)

	got, err := svc.Update(context.Background(), 1, 5, domain.TaskPatch{Description: strPtr("new")})
	require.NoError(t, err)

	assert.Equal(t, "keep me", got.Title)
	assert.Equal(t, int64(3), got.ProjectID)
	assert.Equal(t, "new", *got.Description)
	assert.Equal(t, written, got)
	assert.Zero(t, projectLookups)
}

func TestTaskService_UpdateMoveToForeignProject(t *testing.T) {
	tasks := &mockTaskRepo{
		getFn: func(context.Context, int64, int64) (*domain.Task, error) {
			return &domain.Task{ID: 5, UserID: 1, ProjectID: 3, Title: "t"}, nil
		},
		updateFn: func(context.Context, *domain.Task) (*domain.Task, error) {
			t.Fatal("update must not run")
			return nil, nil
		},
	}
	projects := &mockProjectRepo{
		getFn: func(context.Context, int64, int64) (*domain.Project, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := NewTaskService(tasks, projects)

	other := int64(8)
	_, err := svc.Update(context.Background(), 1, 5, domain.TaskPatch{ProjectID: &other})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "project not found or access denied")
}

func TestTaskService_UpdateMissingTask(t *testing.T) {
	svc := NewTaskService(&mockTaskRepo{}, &mockProjectRepo{})

	_, err := svc.Update(context.Background(), 1, 5, domain.TaskPatch{Title: strPtr("x")})
	assert.EqualError(t, err, "task not found or access denied")

	_, err = svc.Update(context.Background(), 1, 5, domain.TaskPatch{Title: strPtr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestTaskService_DeleteNotOwned(t *testing.T) {
	tasks := &mockTaskRepo{
		deleteFn: func(context.Context, int64, int64) error { return domain.ErrNotFound },
	}
	svc := NewTaskService(tasks, &mockProjectRepo{})

	err := svc.Delete(context.Background(), 2, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
