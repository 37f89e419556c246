package adapthttp

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"tracker/internal/app"
	"tracker/internal/auth"
	"tracker/internal/observability"
)

// Deps are the collaborators the HTTP adapter routes requests to.
type Deps struct {
	Auth     *app.AuthService
	Projects *app.ProjectService
	Tasks    *app.TaskService
	Tokens   auth.Verifier

	// SSO is nil when single sign-on is not configured.
	SSO SSOProvider
	// Health reports backing store reachability. Optional.
	Health func(context.Context) error

	Logger       *slog.Logger
	Metrics      *observability.Metrics
	CookieSecure bool
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth     *app.AuthService
	projects *app.ProjectService
	tasks    *app.TaskService
	tokens   auth.Verifier
	sso      SSOProvider
	health   func(context.Context) error

	logger       *slog.Logger
	metrics      *observability.Metrics
	cookieSecure bool
	validate     *validator.Validate
}

// New creates a Server wired to the given application services.
func New(d Deps) *Server {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		auth:         d.Auth,
		projects:     d.Projects,
		tasks:        d.Tasks,
		tokens:       d.Tokens,
		sso:          d.SSO,
		health:       d.Health,
		logger:       logger,
		metrics:      d.Metrics,
		cookieSecure: d.CookieSecure,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	mux.HandleFunc("POST /auth/sign-up", s.handleSignUp)
	mux.HandleFunc("POST /auth/sign-in", s.handleSignIn)
	mux.HandleFunc("POST /auth/sign-out", s.handleSignOut)
	mux.HandleFunc("GET /auth/config", s.handleConfig)
	mux.HandleFunc("GET /auth/sso/login", s.handleSSOLogin)
	mux.HandleFunc("GET /auth/sso/callback", s.handleSSOCallback)

	mux.Handle("POST /project", s.requireAuth(s.handleCreateProject))
	mux.Handle("GET /project", s.requireAuth(s.handleListProjects))
	mux.Handle("GET /project/{id}", s.requireAuth(s.handleGetProject))
	mux.Handle("GET /project/{id}/tasks", s.requireAuth(s.handleProjectTasks))
	mux.Handle("PUT /project/{id}", s.requireAuth(s.handleUpdateProject))
	mux.Handle("DELETE /project/{id}", s.requireAuth(s.handleDeleteProject))

	mux.Handle("POST /task", s.requireAuth(s.handleCreateTask))
	mux.Handle("GET /task/{id}", s.requireAuth(s.handleGetTask))
	mux.Handle("PUT /task/{id}", s.requireAuth(s.handleUpdateTask))
	mux.Handle("DELETE /task/{id}", s.requireAuth(s.handleDeleteTask))

	mux.Handle("GET /admin/users", s.requireAdmin(s.handleListUsers))

	return s.loggingMiddleware(s.metricsMiddleware(withNoCache(mux)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.logger.ErrorContext(r.Context(), "health check failed", slog.Any("error", err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
