package domain

import (
	"context"
	"time"
)

// Project groups tasks and belongs to exactly one user.
type Project struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectRepository is the port for project persistence. Every method is
// scoped by the owning user id.
type ProjectRepository interface {
	CreateProject(ctx context.Context, userID int64, name string) (*Project, error)
	GetProject(ctx context.Context, userID, id int64) (*Project, error)
	ListProjects(ctx context.Context, userID int64) ([]Project, error)
	UpdateProject(ctx context.Context, userID, id int64, name string) (*Project, error)
	DeleteProject(ctx context.Context, userID, id int64) error
}
