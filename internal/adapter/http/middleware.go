package adapthttp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"tracker/internal/auth"
)

// requestIDHeader carries the per-request correlation id.
const requestIDHeader = "X-Request-ID"

// identityHandler is a handler that runs with an authenticated caller.
type identityHandler func(w http.ResponseWriter, r *http.Request, id *auth.Identity)

// requireAuth rejects requests without a valid session cookie.
func (s *Server) requireAuth(next identityHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := auth.Authenticate(r, s.tokens)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		next(w, r.WithContext(auth.WithIdentity(r.Context(), id)), id)
	})
}

// requireAdmin additionally requires the admin role.
func (s *Server) requireAdmin(next identityHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := auth.Authorize(r, s.tokens)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		next(w, r.WithContext(auth.WithIdentity(r.Context(), id)), id)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

// loggingMiddleware logs one line per request and tags it with a request id.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.InfoContext(r.Context(), "http request",
			slog.String("request_id", reqID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// metricsMiddleware records request durations by matched route.
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	if s.metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.ObserveRequest(r.Method, route, rec.status, time.Since(start).Seconds())
	})
}
