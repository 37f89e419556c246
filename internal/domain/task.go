package domain

import (
	"context"
	"time"
)

// Task is a unit of work inside a project.
type Task struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ProjectID   int64     `json:"project_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskPatch carries an optional replacement for each mutable task field.
// Nil fields keep the stored value.
type TaskPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ProjectID   *int64  `json:"project_id"`
}

// Apply merges p into t field by field.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
	return t
}

// TaskRepository is the port for task persistence. Every method is scoped by
// the owning user id; UpdateTask and DeleteTask return ErrNotFound when no
// row matched both id and owner.
type TaskRepository interface {
	CreateTask(ctx context.Context, t *Task) (*Task, error)
	GetTask(ctx context.Context, userID, id int64) (*Task, error)
	ListProjectTasks(ctx context.Context, userID, projectID int64) ([]Task, error)
	UpdateTask(ctx context.Context, t *Task) (*Task, error)
	DeleteTask(ctx context.Context, userID, id int64) error
}
