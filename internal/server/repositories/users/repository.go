// Package users declares the server-side repository contract for user accounts.
package users

import (
	"context"

	"communityhub/internal/server/models"
)

// Repository defines persistence operations for user accounts.
type Repository interface {
	// Create stores a new user. Implementations should return
	// common.ErrorAlreadyExists when the email is already taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail looks a user up by email, returning common.ErrorNotFound
	// when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID looks a user up by id, returning common.ErrorNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
