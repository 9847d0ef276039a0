// Package rest implements the public JSON-over-HTTP interface of the server:
// routing, authentication middleware, cookie handling, and handlers for
// users, resources, discussions, and uploads.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"communityhub/internal/logging"
	"communityhub/internal/server/config"
	"communityhub/internal/server/models"
	"communityhub/internal/server/services"
)

// UserService is the slice of services.UserService the transport needs.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, *services.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Authenticate(accessToken string) (string, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
}

// ResourceService is the slice of services.ResourceService the transport needs.
type ResourceService interface {
	Create(ctx context.Context, userID string, r *models.Resource) (*models.Resource, error)
	List(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, error)
	Get(ctx context.Context, id string) (*models.Resource, error)
	Update(ctx context.Context, userID string, r *models.Resource) (*models.Resource, error)
	Delete(ctx context.Context, userID, id string) error
}

// DiscussionService is the slice of services.DiscussionService the transport needs.
type DiscussionService interface {
	Create(ctx context.Context, userID string, d *models.Discussion) (*models.Discussion, error)
	List(ctx context.Context, category string) ([]models.Discussion, error)
	Get(ctx context.Context, id string) (*models.Discussion, error)
	Update(ctx context.Context, userID string, d *models.Discussion) (*models.Discussion, error)
	Delete(ctx context.Context, userID, id string) error
	AddComment(ctx context.Context, userID, discussionID, content string) (*models.Discussion, error)
	DeleteComment(ctx context.Context, userID, discussionID, commentID string) error
}

// AttachmentService is the slice of services.AttachmentService the transport needs.
type AttachmentService interface {
	GetPresignedPutURL(ctx context.Context, userID string) (string, string, error)
	GetPresignedGetURL(ctx context.Context, key string) (string, error)
}

// Server serves the REST API.
type Server struct {
	cfg         *config.Config
	logger      logging.Logger
	users       UserService
	resources   ResourceService
	discussions DiscussionService
	attachments AttachmentService
}

// NewServer wires handlers to their services.
func NewServer(cfg *config.Config, logger logging.Logger, users UserService,
	resources ResourceService, discussions DiscussionService, attachments AttachmentService) *Server {
	return &Server{
		cfg:         cfg,
		logger:      logger,
		users:       users,
		resources:   resources,
		discussions: discussions,
		attachments: attachments,
	}
}

// Run serves until ctx is canceled, then shuts the listener down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.EndpointAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.cfg.EndpointAddr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
