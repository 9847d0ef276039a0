package rest

import (
	"net/http"

	"communityhub/internal/server/models"

	"github.com/gorilla/mux"
)

func (s *Server) handleListDiscussions(w http.ResponseWriter, r *http.Request) {
	items, err := s.discussions.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		s.serviceError(w, r, err, "Discussion not found")
		return
	}
	if items == nil {
		items = []models.Discussion{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetDiscussion(w http.ResponseWriter, r *http.Request) {
	item, err := s.discussions.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.serviceError(w, r, err, "Discussion not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleCreateDiscussion(w http.ResponseWriter, r *http.Request) {
	var d models.Discussion
	if err := decodeBody(r, &d); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if d.Title == "" || d.Content == "" || d.Category == "" {
		writeMessage(w, http.StatusBadRequest, "Title, content and category are required")
		return
	}

	created, err := s.discussions.Create(r.Context(), userIDFromContext(r.Context()), &d)
	if err != nil {
		s.serviceError(w, r, err, "Discussion not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"discussion": created})
}

func (s *Server) handleUpdateDiscussion(w http.ResponseWriter, r *http.Request) {
	var d models.Discussion
	if err := decodeBody(r, &d); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	d.ID = mux.Vars(r)["id"]

	updated, err := s.discussions.Update(r.Context(), userIDFromContext(r.Context()), &d)
	if err != nil {
		s.serviceError(w, r, err, "Discussion not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"discussion": updated})
}

func (s *Server) handleDeleteDiscussion(w http.ResponseWriter, r *http.Request) {
	err := s.discussions.Delete(r.Context(), userIDFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		s.serviceError(w, r, err, "Discussion not found")
		return
	}
	writeMessage(w, http.StatusOK, "Discussion deleted successfully")
}

type addCommentRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var req addCommentRequest
	if err := decodeBody(r, &req); err != nil || req.Content == "" {
		writeMessage(w, http.StatusBadRequest, "Comment content is required")
		return
	}

	updated, err := s.discussions.AddComment(r.Context(),
		userIDFromContext(r.Context()), mux.Vars(r)["id"], req.Content)
	if err != nil {
		s.serviceError(w, r, err, "Discussion not found")
		return
	}
	writeJSON(w, http.StatusCreated, updated)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	err := s.discussions.DeleteComment(r.Context(),
		userIDFromContext(r.Context()), vars["id"], vars["commentId"])
	if err != nil {
		s.serviceError(w, r, err, "Comment not found")
		return
	}
	writeMessage(w, http.StatusOK, "Comment deleted successfully")
}
