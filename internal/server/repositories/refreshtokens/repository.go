// Package refreshtokens declares the server-side repository contract for the
// persisted refresh-token allow-list.
package refreshtokens

import (
	"context"
	"time"

	"communityhub/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh
// tokens. A user may hold any number of concurrent entries (one per device).
type Repository interface {
	// Create stores a new refresh token for userID with an expiry of now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find looks a refresh token up by its token string and returns its
	// metadata, or common.ErrorNotFound when absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// TakeForRotation removes the token and reports whether it was present.
	// The removal and the membership check are one statement, so two
	// concurrent rotations of the same token cannot both succeed.
	TakeForRotation(ctx context.Context, token string) (userID string, taken bool, err error)

	// Delete removes a refresh token by its token string. Deleting a
	// non-existent token is not an error (logout is idempotent).
	Delete(ctx context.Context, token string) error
}
