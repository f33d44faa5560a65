package repositories

import (
	"context"

	"github.com/bookshare/bookshare_backend/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	// SaveUser inserts a new user. Returns apperrors.ErrDuplicate when the
	// email unique index rejects the row.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by ID. Returns apperrors.ErrNotFound when absent.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by normalized email. Returns apperrors.ErrNotFound when absent.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateUser persists changed profile fields of an existing user.
	UpdateUser(ctx context.Context, user domain.User) error
}
