package app

import (
	"context"
	"errors"
	"strings"

	"tracker/internal/domain"
)

var errTaskNotFound = domain.NotFound("task not found or access denied")

// TaskService encapsulates task use cases.
type TaskService struct {
	tasks    domain.TaskRepository
	projects domain.ProjectRepository
}

// NewTaskService creates a TaskService backed by the given repositories.
func NewTaskService(tasks domain.TaskRepository, projects domain.ProjectRepository) *TaskService {
	return &TaskService{tasks: tasks, projects: projects}
}

// Create adds a task to one of the user's projects.
func (s *TaskService) Create(ctx context.Context, userID, projectID int64, title string, description *string) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.Invalid("title is required")
	}
	if err := s.ensureProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.tasks.CreateTask(ctx, &domain.Task{
		UserID:      userID,
		ProjectID:   projectID,
		Title:       title,
		Description: description,
	})
}

// Get returns a single task.
func (s *TaskService) Get(ctx context.Context, userID, id int64) (*domain.Task, error) {
	t, err := s.tasks.GetTask(ctx, userID, id)
	return t, taskErr(err)
}

// Update merges patch into the stored task. Fields left nil keep their
// stored value; a new project must also belong to the user.
func (s *TaskService) Update(ctx context.Context, userID, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, domain.Invalid("title must not be empty")
	}

	existing, err := s.tasks.GetTask(ctx, userID, id)
	if err != nil {
		return nil, taskErr(err)
	}
	if patch.ProjectID != nil && *patch.ProjectID != existing.ProjectID {
		if err := s.ensureProject(ctx, userID, *patch.ProjectID); err != nil {
			return nil, err
		}
	}

	merged := patch.Apply(*existing)
	t, err := s.tasks.UpdateTask(ctx, &merged)
	return t, taskErr(err)
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, userID, id int64) error {
	return taskErr(s.tasks.DeleteTask(ctx, userID, id))
}

func (s *TaskService) ensureProject(ctx context.Context, userID, projectID int64) error {
	_, err := s.projects.GetProject(ctx, userID, projectID)
	return projectErr(err)
}

func taskErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return errTaskNotFound
	}
	return err
}
