package services

import (
	"context"

	"github.com/bookshare/bookshare_backend/internal/core/domain"
	"github.com/bookshare/bookshare_backend/internal/dto"
)

// LocalAuthSvc defines the password-based authentication operations.
type LocalAuthSvc interface {
	// RegisterLocal creates (or enriches) the account for a local signup and
	// attaches the hashed credential. Returns apperrors.ErrValidation for
	// missing email / short password and apperrors.ErrDuplicate when a local
	// credential already exists for the normalized email.
	RegisterLocal(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// AuthenticateLocal verifies email/password. Every failure mode returns
	// the generic apperrors.ErrUnauthorized.
	AuthenticateLocal(ctx context.Context, email, password string) (*domain.User, error)
}

// ProviderUpsertSvc resolves an external identity to exactly one canonical
// user, creating or linking as needed. Idempotent.
type ProviderUpsertSvc interface {
	UpsertFromProvider(ctx context.Context, ident domain.ExternalIdentity) (*domain.User, error)
}

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetLinkedAccounts returns every provider linkage the user has. A user
	// without any linkage yields an empty link, not an error.
	GetLinkedAccounts(ctx context.Context, userID string) (*domain.AuthLink, error)
}

// IdentitySvcFacade combines all identity-resolution service interfaces.
type IdentitySvcFacade interface {
	LocalAuthSvc
	ProviderUpsertSvc
	UserReaderSvc
}
