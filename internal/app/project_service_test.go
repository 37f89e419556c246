package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/domain"
)

func TestProjectService_Create(t *testing.T) {
	svc := NewProjectService(&mockProjectRepo{}, &mockTaskRepo{})

	p, err := svc.Create(context.Background(), 4, "  Garden  ")
	require.NoError(t, err)
	assert.Equal(t, "Garden", p.Name)
	assert.Equal(t, int64(4), p.UserID)

	_, err = svc.Create(context.Background(), 4, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestProjectService_NotFoundHidesOwnership(t *testing.T) {
	projects := &mockProjectRepo{
		getFn: func(context.Context, int64, int64) (*domain.Project, error) {
			return nil, domain.ErrNotFound
		},
		deleteFn: func(context.Context, int64, int64) error {
			return domain.ErrNotFound
		},
	}
	svc := NewProjectService(projects, &mockTaskRepo{})

	_, err := svc.Get(context.Background(), 1, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "project not found or access denied")

	err = svc.Delete(context.Background(), 1, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Tasks(context.Background(), 1, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_Tasks(t *testing.T) {
	tasks := &mockTaskRepo{
		listFn: func(_ context.Context, userID, projectID int64) ([]domain.Task, error) {
			assert.Equal(t, int64(1), userID)
			assert.Equal(t, int64(2), projectID)
			return []domain.Task{{ID: 1}, {ID: 2}}, nil
		},
	}
	svc := NewProjectService(&mockProjectRepo{}, tasks)

	got, err := svc.Tasks(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Items)
	assert.Len(t, got.Data, 2)
}

func TestProjectService_TasksEmptyIsNotNil(t *testing.T) {
	svc := NewProjectService(&mockProjectRepo{}, &mockTaskRepo{})

	got, err := svc.Tasks(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Items)
	assert.NotNil(t, got.Data)
}

func TestProjectService_Update(t *testing.T) {
	updated := false
	projects := &mockProjectRepo{
		getFn: func(_ context.Context, userID, id int64) (*domain.Project, error) {
			return &domain.Project{ID: id, UserID: userID, Name: "old"}, nil
		},
		updateFn: func(_ context.Context, userID, id int64, name string) (*domain.Project, error) {
			updated = true
			return &domain.Project{ID: id, UserID: userID, Name: name}, nil
		},
	}
	svc := NewProjectService(projects, &mockTaskRepo{})

	p, err := svc.Update(context.Background(), 1, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, "old", p.Name)
	assert.False(t, updated)

	name := "new"
	p, err = svc.Update(context.Background(), 1, 2, &name)
	require.NoError(t, err)
	assert.Equal(t, "new", p.Name)
	assert.True(t, updated)

	blank := " "
	_, err = svc.Update(context.Background(), 1, 2, &blank)
	assert.ErrorIs(t, err, domain.ErrInvalid)
}
