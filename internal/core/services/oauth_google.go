package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bookshare/bookshare_backend/internal/core/domain"
	portssvc "github.com/bookshare/bookshare_backend/internal/core/ports/services"
	"github.com/bookshare/bookshare_backend/internal/platform/config"
	"github.com/bookshare/bookshare_backend/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// googleUserInfo is the shape returned by Google's userinfo endpoint.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// googleOAuthService adapts Google's OAuth flow to the uniform
// OAuthProviderSvc interface.
type googleOAuthService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthService creates the Google provider adapter.
func NewGoogleOAuthService(cfg *config.Config) portssvc.OAuthProviderSvc {
	return &googleOAuthService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.OAuthProviderSvc = (*googleOAuthService)(nil)

func (s *googleOAuthService) Provider() domain.AuthProvider {
	return domain.ProviderGoogle
}

// GenerateStateString creates a secure random string used as a CSRF token for the OAuth flow.
func (s *googleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// LoginURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthService) LoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// FetchIdentity exchanges the authorization code and builds the normalized
// identity. The ID token is preferred when Google returns one (its claims
// are signed); the userinfo endpoint is the fallback.
func (s *googleOAuthService) FetchIdentity(ctx context.Context, code string) (*domain.ExternalIdentity, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}

	if idTokenString, ok := token.Extra("id_token").(string); ok && idTokenString != "" {
		if ident, err := s.identityFromIDToken(ctx, idTokenString); err == nil {
			return ident, nil
		}
		// Validation failure falls through to the userinfo endpoint.
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}
	return &domain.ExternalIdentity{
		Provider:   domain.ProviderGoogle,
		ProviderID: info.ID,
		Email:      utils.NormalizeEmail(info.Email),
		Name:       info.Name,
		Photo:      info.Picture,
	}, nil
}

func (s *googleOAuthService) identityFromIDToken(ctx context.Context, idTokenString string) (*domain.ExternalIdentity, error) {
	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	if payload.Subject == "" {
		return nil, fmt.Errorf("google ID token payload has no subject")
	}
	return &domain.ExternalIdentity{
		Provider:   domain.ProviderGoogle,
		ProviderID: payload.Subject,
		Email:      utils.NormalizeEmail(email),
		Name:       name,
		Photo:      picture,
	}, nil
}

func (s *googleOAuthService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := s.oauth2Config.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info from google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google api returned non-200 status for userinfo: %s", resp.Status)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info from google: %w", err)
	}
	return &info, nil
}
