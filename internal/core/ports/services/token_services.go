package services

import (
	"context"
	"time"

	"github.com/bookshare/bookshare_backend/internal/core/domain"
)

// TokenSvcFacade issues the application's bearer tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed, time-limited JWT carrying the
	// user id (subject) and role, and returns it with its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
