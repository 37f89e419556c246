package adapthttp

import (
	"net/http"

	"tracker/internal/auth"
	"tracker/internal/domain"
)

type taskRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitnil,max=4000"`
}

type taskUpdateRequest struct {
	Title       *string `json:"title" validate:"omitnil,max=200"`
	Description *string `json:"description" validate:"omitnil,max=4000"`
	ProjectID   *int64  `json:"project_id" validate:"omitnil,gt=0"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request, id *auth.Identity) {
	projectID, err := parseID(r.URL.Query().Get("project_id"), "project_id")
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	var req taskRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	t, err := s.tasks.Create(r.Context(), id.UserID, projectID, req.Title, req.Description)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request, id *auth.Identity) {
	taskID, err := pathID(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	t, err := s.tasks.Get(r.Context(), id.UserID, taskID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request, id *auth.Identity) {
	taskID, err := pathID(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	var req taskUpdateRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	t, err := s.tasks.Update(r.Context(), id.UserID, taskID, domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request, id *auth.Identity) {
	taskID, err := pathID(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if err := s.tasks.Delete(r.Context(), id.UserID, taskID); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
