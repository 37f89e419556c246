package adapthttp

import (
	"net/http"

	"tracker/internal/auth"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request, _ *auth.Identity) {
	users, err := s.auth.ListUsers(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": len(users),
		"data":  users,
	})
}
