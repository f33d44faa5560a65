package services

import (
	"context"

	"github.com/bookshare/bookshare_backend/internal/core/domain"
)

// OAuthProviderSvc is implemented once per external provider. It hides the
// provider-specific wire shapes behind the uniform ExternalIdentity value.
type OAuthProviderSvc interface {
	// Provider names the identity source this adapter serves.
	Provider() domain.AuthProvider

	// GenerateStateString creates a CSRF token for the authorization flow.
	GenerateStateString(ctx context.Context) (string, error)

	// LoginURL returns the provider URL to redirect the user to.
	LoginURL(ctx context.Context, state string) string

	// FetchIdentity exchanges the authorization code and retrieves the
	// user's normalized profile from the provider.
	FetchIdentity(ctx context.Context, code string) (*domain.ExternalIdentity, error)
}
