package adapthttp

import (
	"net/http"

	"tracker/internal/auth"
)

type projectRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type projectUpdateRequest struct {
	Name *string `json:"name" validate:"omitnil,max=200"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request, id *auth.Identity) {
	var req projectRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	p, err := s.projects.Create(r.Context(), id.UserID, req.Name)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request, id *auth.Identity) {
	list, err := s.projects.List(r.Context(), id.UserID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request, id *auth.Identity) {
	projectID, err := pathID(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	p, err := s.projects.Get(r.Context(), id.UserID, projectID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleProjectTasks(w http.ResponseWriter, r *http.Request, id *auth.Identity) {
	projectID, err := pathID(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	tasks, err := s.projects.Tasks(r.Context(), id.UserID, projectID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request, id *auth.Identity) {
	projectID, err := pathID(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	var req projectUpdateRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	p, err := s.projects.Update(r.Context(), id.UserID, projectID, req.Name)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request, id *auth.Identity) {
	projectID, err := pathID(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if err := s.projects.Delete(r.Context(), id.UserID, projectID); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
