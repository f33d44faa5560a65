package services

import (
	"context"
	"time"

	"github.com/bookshare/bookshare_backend/internal/core/domain"
	portssvc "github.com/bookshare/bookshare_backend/internal/core/ports/services"
	"github.com/bookshare/bookshare_backend/internal/platform/config"
	"github.com/bookshare/bookshare_backend/internal/utils"
)

// tokenService implements the TokenSvcFacade for issuing JWT access tokens.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	role := user.Role
	if role == "" {
		role = domain.RoleUser
	}
	accessToken, err := utils.GenerateJWT(user.UserID, string(role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}
