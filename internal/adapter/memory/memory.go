// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"tracker/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	users    []*domain.User
	projects map[int64]*domain.Project
	tasks    map[int64]*domain.Task

	userIDCounter    int64
	projectIDCounter int64
	taskIDCounter    int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		projects: make(map[int64]*domain.Project),
		tasks:    make(map[int64]*domain.Task),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.ProjectRepository = (*DB)(nil)
var _ domain.TaskRepository = (*DB)(nil)

// --- UserRepository ---

// Create creates a new user.
func (db *DB) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.users {
		if existing.Email == u.Email {
			return nil, domain.ErrConflict
		}
	}

	db.userIDCounter++
	stored := *u
	stored.ID = db.userIDCounter
	stored.CreatedAt = time.Now().UTC()
	if stored.Role == "" {
		stored.Role = domain.RoleUser
	}
	db.users = append(db.users, &stored)

	out := stored
	return &out, nil
}

// GetByEmail retrieves a user by email.
func (db *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListUsers returns all users ordered by ID.
func (db *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.User, 0, len(db.users))
	for _, u := range db.users {
		out = append(out, *u)
	}
	return out, nil
}

// SetRole updates the role of the user with the given email.
func (db *DB) SetRole(ctx context.Context, email, role string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			u.Role = role
			return nil
		}
	}
	return domain.ErrNotFound
}

// --- ProjectRepository ---

// CreateProject adds a project owned by userID.
func (db *DB) CreateProject(ctx context.Context, userID int64, name string) (*domain.Project, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.projectIDCounter++
	p := &domain.Project{
		ID:        db.projectIDCounter,
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	db.projects[p.ID] = p

	out := *p
	return &out, nil
}

// GetProject returns the project if it exists and belongs to userID.
func (db *DB) GetProject(ctx context.Context, userID, id int64) (*domain.Project, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.projects[id]
	if !ok || p.UserID != userID {
		return nil, domain.ErrNotFound
	}
	out := *p
	return &out, nil
}

// ListProjects lists the user's projects ordered by ID.
func (db *DB) ListProjects(ctx context.Context, userID int64) ([]domain.Project, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Project, 0)
	for _, p := range db.projects {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateProject renames a project owned by userID.
func (db *DB) UpdateProject(ctx context.Context, userID, id int64, name string) (*domain.Project, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.projects[id]
	if !ok || p.UserID != userID {
		return nil, domain.ErrNotFound
	}
	p.Name = name
	out := *p
	return &out, nil
}

// DeleteProject removes a project owned by userID and its tasks.
func (db *DB) DeleteProject(ctx context.Context, userID, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.projects[id]
	if !ok || p.UserID != userID {
		return domain.ErrNotFound
	}
	delete(db.projects, id)
	for tid, t := range db.tasks {
		if t.ProjectID == id {
			delete(db.tasks, tid)
		}
	}
	return nil
}

// --- TaskRepository ---

// CreateTask stores a new task.
func (db *DB) CreateTask(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.taskIDCounter++
	stored := *t
	stored.ID = db.taskIDCounter
	stored.CreatedAt = time.Now().UTC()
	db.tasks[stored.ID] = &stored

	out := stored
	return &out, nil
}

// GetTask returns the task if it exists and belongs to userID.
func (db *DB) GetTask(ctx context.Context, userID, id int64) (*domain.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	t, ok := db.tasks[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrNotFound
	}
	out := *t
	return &out, nil
}

// ListProjectTasks lists the tasks of a project owned by userID.
func (db *DB) ListProjectTasks(ctx context.Context, userID, projectID int64) ([]domain.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Task, 0)
	for _, t := range db.tasks {
		if t.UserID == userID && t.ProjectID == projectID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateTask overwrites the mutable fields of a task owned by t.UserID.
func (db *DB) UpdateTask(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	stored, ok := db.tasks[t.ID]
	if !ok || stored.UserID != t.UserID {
		return nil, domain.ErrNotFound
	}
	stored.Title = t.Title
	stored.Description = t.Description
	stored.ProjectID = t.ProjectID

	out := *stored
	return &out, nil
}

// DeleteTask removes a task owned by userID.
func (db *DB) DeleteTask(ctx context.Context, userID, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	t, ok := db.tasks[id]
	if !ok || t.UserID != userID {
		return domain.ErrNotFound
	}
	delete(db.tasks, id)
	return nil
}
