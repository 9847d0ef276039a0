package rest

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router builds the full route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.metricsMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Public user routes.
	api.HandleFunc("/users/register", s.handleRegister).Methods("POST")
	api.HandleFunc("/users/login", s.handleLogin).Methods("POST")
	api.HandleFunc("/users/refresh-token", s.handleRefreshToken).Methods("POST")
	api.HandleFunc("/users/logout", s.handleLogout).Methods("POST")

	// Protected user routes.
	api.Handle("/users/profile", s.requireAuth(s.handleProfile)).Methods("GET")

	// Resources.
	api.HandleFunc("/resources", s.handleListResources).Methods("GET")
	api.HandleFunc("/resources/{id}", s.handleGetResource).Methods("GET")
	api.Handle("/resources", s.requireAuth(s.handleCreateResource)).Methods("POST")
	api.Handle("/resources/{id}", s.requireAuth(s.handleUpdateResource)).Methods("PUT")
	api.Handle("/resources/{id}", s.requireAuth(s.handleDeleteResource)).Methods("DELETE")

	// Discussions and comments.
	api.HandleFunc("/discussions", s.handleListDiscussions).Methods("GET")
	api.HandleFunc("/discussions/{id}", s.handleGetDiscussion).Methods("GET")
	api.Handle("/discussions", s.requireAuth(s.handleCreateDiscussion)).Methods("POST")
	api.Handle("/discussions/{id}", s.requireAuth(s.handleUpdateDiscussion)).Methods("PUT")
	api.Handle("/discussions/{id}", s.requireAuth(s.handleDeleteDiscussion)).Methods("DELETE")
	api.Handle("/discussions/{id}/comments", s.requireAuth(s.handleAddComment)).Methods("POST")
	api.Handle("/discussions/{id}/comments/{commentId}", s.requireAuth(s.handleDeleteComment)).Methods("DELETE")

	// Uploads.
	api.Handle("/uploads/presign", s.requireAuth(s.handlePresignUpload)).Methods("POST")
	api.Handle("/uploads/presign-download", s.requireAuth(s.handlePresignDownload)).Methods("GET")

	return r
}
