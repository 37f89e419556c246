package app

import (
	"context"
	"errors"
	"strings"

	"tracker/internal/domain"
)

// Not-found and not-owned are deliberately indistinguishable.
var errProjectNotFound = domain.NotFound("project not found or access denied")

// ProjectTasks is the task listing of a single project.
type ProjectTasks struct {
	Items int           `json:"items"`
	Data  []domain.Task `json:"data"`
}

// ProjectService encapsulates project use cases. All operations act on the
// projects owned by the given user.
type ProjectService struct {
	projects domain.ProjectRepository
	tasks    domain.TaskRepository
}

// NewProjectService creates a ProjectService backed by the given repositories.
func NewProjectService(projects domain.ProjectRepository, tasks domain.TaskRepository) *ProjectService {
	return &ProjectService{projects: projects, tasks: tasks}
}

// Create validates and stores a new project.
func (s *ProjectService) Create(ctx context.Context, userID int64, name string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalid("name is required")
	}
	return s.projects.CreateProject(ctx, userID, name)
}

// Get returns a single project.
func (s *ProjectService) Get(ctx context.Context, userID, id int64) (*domain.Project, error) {
	p, err := s.projects.GetProject(ctx, userID, id)
	return p, projectErr(err)
}

// List returns all of the user's projects.
func (s *ProjectService) List(ctx context.Context, userID int64) ([]domain.Project, error) {
	return s.projects.ListProjects(ctx, userID)
}

// Tasks returns the tasks of a project.
func (s *ProjectService) Tasks(ctx context.Context, userID, id int64) (*ProjectTasks, error) {
	if _, err := s.projects.GetProject(ctx, userID, id); err != nil {
		return nil, projectErr(err)
	}
	items, err := s.tasks.ListProjectTasks(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Task{}
	}
	return &ProjectTasks{Items: len(items), Data: items}, nil
}

// Update renames a project. A nil name keeps the stored one.
func (s *ProjectService) Update(ctx context.Context, userID, id int64, name *string) (*domain.Project, error) {
	if name == nil {
		return s.Get(ctx, userID, id)
	}
	n := strings.TrimSpace(*name)
	if n == "" {
		return nil, domain.Invalid("name must not be empty")
	}
	p, err := s.projects.UpdateProject(ctx, userID, id, n)
	return p, projectErr(err)
}

// Delete removes a project together with its tasks.
func (s *ProjectService) Delete(ctx context.Context, userID, id int64) error {
	return projectErr(s.projects.DeleteProject(ctx, userID, id))
}

func projectErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return errProjectNotFound
	}
	return err
}
