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
	"golang.org/x/oauth2/facebook"
)

const facebookProfileURL = "https://graph.facebook.com/me?fields=id,name,email,picture.type(large)"

// facebookProfile is the shape returned by the Graph API /me endpoint.
// Email is absent when the user declined the email permission.
type facebookProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

// facebookOAuthService adapts Facebook's OAuth flow to the uniform
// OAuthProviderSvc interface.
type facebookOAuthService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewFacebookOAuthService creates the Facebook provider adapter.
func NewFacebookOAuthService(cfg *config.Config) portssvc.OAuthProviderSvc {
	return &facebookOAuthService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.FacebookClientID,
			ClientSecret: cfg.FacebookClientSecret,
			RedirectURL:  cfg.FacebookRedirectURL,
			Scopes:       []string{"email"},
			Endpoint:     facebook.Endpoint,
		},
	}
}

var _ portssvc.OAuthProviderSvc = (*facebookOAuthService)(nil)

func (s *facebookOAuthService) Provider() domain.AuthProvider {
	return domain.ProviderFacebook
}

// GenerateStateString creates a secure random string used as a CSRF token for the OAuth flow.
func (s *facebookOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// LoginURL returns the URL to redirect the user to for Facebook login.
func (s *facebookOAuthService) LoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// FetchIdentity exchanges the authorization code and retrieves the user's
// profile from the Graph API.
func (s *facebookOAuthService) FetchIdentity(ctx context.Context, code string) (*domain.ExternalIdentity, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}

	client := s.oauth2Config.Client(ctx, token)
	resp, err := client.Get(facebookProfileURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile from facebook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("facebook api returned non-200 status for profile: %s", resp.Status)
	}

	var profile facebookProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile from facebook: %w", err)
	}
	if profile.ID == "" {
		return nil, fmt.Errorf("facebook profile has no id")
	}

	return &domain.ExternalIdentity{
		Provider:   domain.ProviderFacebook,
		ProviderID: profile.ID,
		Email:      utils.NormalizeEmail(profile.Email),
		Name:       profile.Name,
		Photo:      profile.Picture.Data.URL,
	}, nil
}
