package repositories

import (
	"context"
	"time"

	"github.com/petrobook/petrobook/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// SaveUser persists a new user (upsert on user_id).
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by ID, excluding soft-deleted users.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email, excluding soft-deleted users.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateUser updates mutable user fields.
	UpdateUser(ctx context.Context, user domain.User) error

	// MarkUserDeleted soft-deletes a user.
	MarkUserDeleted(ctx context.Context, userID string, deletedBy string, now time.Time) error
}
