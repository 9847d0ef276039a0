package rest

import (
	"errors"
	"net/http"

	"communityhub/internal/common"
	"communityhub/internal/server/models"

	"github.com/gorilla/mux"
)

// serviceError maps common sentinel errors onto responses shared by the CRUD
// handlers.
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, common.ErrorForbidden):
		writeMessage(w, http.StatusForbidden, "Not allowed")
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "err", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := s.resources.List(r.Context(), models.ResourceFilter{
		Category: q.Get("category"),
		Title:    q.Get("title"),
		Tags:     q["tags"],
		SortBy:   q.Get("sortBy"),
	})
	if err != nil {
		s.serviceError(w, r, err, "Resource not found")
		return
	}
	if items == nil {
		items = []models.Resource{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetResource(w http.ResponseWriter, r *http.Request) {
	item, err := s.resources.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.serviceError(w, r, err, "Resource not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleCreateResource(w http.ResponseWriter, r *http.Request) {
	var res models.Resource
	if err := decodeBody(r, &res); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if res.Title == "" || res.Description == "" || res.Category == "" {
		writeMessage(w, http.StatusBadRequest, "Title, description and category are required")
		return
	}

	created, err := s.resources.Create(r.Context(), userIDFromContext(r.Context()), &res)
	if err != nil {
		s.serviceError(w, r, err, "Resource not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateResource(w http.ResponseWriter, r *http.Request) {
	var res models.Resource
	if err := decodeBody(r, &res); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	res.ID = mux.Vars(r)["id"]

	updated, err := s.resources.Update(r.Context(), userIDFromContext(r.Context()), &res)
	if err != nil {
		s.serviceError(w, r, err, "Resource not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteResource(w http.ResponseWriter, r *http.Request) {
	err := s.resources.Delete(r.Context(), userIDFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		s.serviceError(w, r, err, "Resource not found")
		return
	}
	writeMessage(w, http.StatusOK, "Resource deleted successfully")
}
