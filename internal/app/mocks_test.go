package app

import (
	"context"
	"strings"

	"tracker/internal/domain"
)

// ---------------------------------------------------------------------------
// Mock repositories (function-fields pattern)
// ---------------------------------------------------------------------------

type mockUserRepo struct {
	createFn     func(ctx context.Context, u *domain.User) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	getByIDFn    func(ctx context.Context, id int64) (*domain.User, error)
	listFn       func(ctx context.Context) ([]domain.User, error)
	setRoleFn    func(ctx context.Context, email, role string) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	out := *u
	out.ID = 1
	return &out, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) SetRole(ctx context.Context, email, role string) error {
	if m.setRoleFn != nil {
		return m.setRoleFn(ctx, email, role)
	}
	return nil
}

type mockProjectRepo struct {
	createFn func(ctx context.Context, userID int64, name string) (*domain.Project, error)
	getFn    func(ctx context.Context, userID, id int64) (*domain.Project, error)
	listFn   func(ctx context.Context, userID int64) ([]domain.Project, error)
	updateFn func(ctx context.Context, userID, id int64, name string) (*domain.Project, error)
	deleteFn func(ctx context.Context, userID, id int64) error
}

func (m *mockProjectRepo) CreateProject(ctx context.Context, userID int64, name string) (*domain.Project, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, name)
	}
	return &domain.Project{ID: 1, UserID: userID, Name: name}, nil
}

func (m *mockProjectRepo) GetProject(ctx context.Context, userID, id int64) (*domain.Project, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return &domain.Project{ID: id, UserID: userID, Name: "default"}, nil
}

func (m *mockProjectRepo) ListProjects(ctx context.Context, userID int64) ([]domain.Project, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockProjectRepo) UpdateProject(ctx context.Context, userID, id int64, name string) (*domain.Project, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, id, name)
	}
	return &domain.Project{ID: id, UserID: userID, Name: name}, nil
}

func (m *mockProjectRepo) DeleteProject(ctx context.Context, userID, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

type mockTaskRepo struct {
	createFn func(ctx context.Context, t *domain.Task) (*domain.Task, error)
	getFn    func(ctx context.Context, userID, id int64) (*domain.Task, error)
	listFn   func(ctx context.Context, userID, projectID int64) ([]domain.Task, error)
	updateFn func(ctx context.Context, t *domain.Task) (*domain.Task, error)
	deleteFn func(ctx context.Context, userID, id int64) error
}

func (m *mockTaskRepo) CreateTask(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	if m.createFn != nil {
		return m.createFn(ctx, t)
	}
	out := *t
	out.ID = 1
	return &out, nil
}

func (m *mockTaskRepo) GetTask(ctx context.Context, userID, id int64) (*domain.Task, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockTaskRepo) ListProjectTasks(ctx context.Context, userID, projectID int64) ([]domain.Task, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, projectID)
	}
	return nil, nil
}

func (m *mockTaskRepo) UpdateTask(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, t)
	}
	out := *t
	return &out, nil
}

func (m *mockTaskRepo) DeleteTask(ctx context.Context, userID, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Fake hasher and issuer
// ---------------------------------------------------------------------------

// fakeHasher "hashes" by prefixing and counts verifications.
type fakeHasher struct {
	hashErr  error
	verified int
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

func (h *fakeHasher) Verify(password, encoded string) (bool, error) {
	h.verified++
	if !strings.HasPrefix(encoded, "hashed:") {
		return false, errMalformedForTest
	}
	return encoded == "hashed:"+password, nil
}

type fakeIssuer struct {
	subject, role string
}

func (f *fakeIssuer) Issue(subject, role string) (string, error) {
	f.subject, f.role = subject, role
	return "token-" + subject + "-" + role, nil
}

var errMalformedForTest = domain.Invalid("malformed")
