package repositories

import (
	"context"

	"github.com/bookshare/bookshare_backend/internal/core/domain"
)

// AuthLinkRepository defines persistence operations for provider linkages.
// One row exists per (user, provider); uniqueness of (provider, providerID)
// and of the local email is enforced by the database.
type AuthLinkRepository interface {
	// FindAccountByProvider looks up a linked account by provider credentials.
	// Returns apperrors.ErrNotFound when no such linkage exists.
	FindAccountByProvider(ctx context.Context, provider domain.AuthProvider, providerID string) (*domain.ProviderAccount, error)

	// FindLocalAccountByEmail looks up the local-credential account for an email.
	// Returns apperrors.ErrNotFound when absent.
	FindLocalAccountByEmail(ctx context.Context, email string) (*domain.ProviderAccount, error)

	// FindLinkByUserID assembles all provider accounts linked to a user.
	// Returns apperrors.ErrNotFound when the user has no linkage yet.
	FindLinkByUserID(ctx context.Context, userID string) (*domain.AuthLink, error)

	// UpsertAccount creates or refreshes the (user, provider) linkage without
	// touching other providers' rows. Returns apperrors.ErrDuplicate when a
	// unique index rejects the write (same provider identity already linked
	// to another user).
	UpsertAccount(ctx context.Context, account domain.ProviderAccount) error

	// DeleteAccount removes a single provider linkage. Used to discard
	// orphaned links that point at a user that no longer exists.
	DeleteAccount(ctx context.Context, provider domain.AuthProvider, providerID string) error
}
