package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bookshare/bookshare_backend/internal/core/ports/services"
	"github.com/bookshare/bookshare_backend/internal/dto"
	"github.com/bookshare/bookshare_backend/internal/middleware"
	"github.com/bookshare/bookshare_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateMaxAge = 600 // seconds
	oauthFailedPath  = "/auth/failed"
)

// OAuthHandler drives the redirect-based login flow for external providers.
// Each provider contributes its own adapter; the handler logic is shared.
type OAuthHandler struct {
	identityService portssvc.ProviderUpsertSvc
	tokenService    portssvc.TokenSvcFacade
	secureCookies   bool
}

// NewOAuthHandler creates a new OAuthHandler.
func NewOAuthHandler(is portssvc.ProviderUpsertSvc, ts portssvc.TokenSvcFacade, cfg *config.Config) *OAuthHandler {
	return &OAuthHandler{
		identityService: is,
		tokenService:    ts,
		secureCookies:   cfg.IsProduction,
	}
}

// registerOAuthRoutes sets up the provider login and callback routes.
func registerOAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewOAuthHandler(services.Identity, services.Token, cfg)

	auth := rg.Group("/auth")
	{
		auth.GET("/google", h.Login(services.GoogleOAuth))
		auth.GET("/facebook", h.Login(services.FacebookOAuth))
	}

	redirect := rg.Group("/oauth2/redirect")
	{
		redirect.GET("/google", h.Callback(services.GoogleOAuth))
		redirect.GET("/facebook", h.Callback(services.FacebookOAuth))
	}
}

// Login godoc
// @Summary Start provider login
// @Description Sets a CSRF state cookie and redirects to the provider's consent screen.
// @Tags oauth
// @Success 307 "Redirect to provider"
// @Failure 500 {object} ErrorResponse
// @Router /auth/google [get]
// @Router /auth/facebook [get]
func (h *OAuthHandler) Login(provider portssvc.OAuthProviderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		logger := middleware.GetLoggerFromCtx(ctx)

		state, err := provider.GenerateStateString(ctx)
		if err != nil {
			logger.Error("Failed to generate OAuth state", slog.String("provider", string(provider.Provider())), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to start login"})
			return
		}

		c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/", "", h.secureCookies, true)
		c.Redirect(http.StatusTemporaryRedirect, provider.LoginURL(ctx, state))
	}
}

// Callback godoc
// @Summary Provider login callback
// @Description Verifies the CSRF state, resolves the provider identity to a local account and returns a signed token.
// @Tags oauth
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Failure 302 "Redirect to /auth/failed on state or provider failure"
// @Failure 500 {object} ErrorResponse
// @Router /oauth2/redirect/google [get]
// @Router /oauth2/redirect/facebook [get]
func (h *OAuthHandler) Callback(provider portssvc.OAuthProviderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("provider", string(provider.Provider())))

		if errParam := c.Query("error"); errParam != "" {
			logger.Warn("Provider returned an error", slog.String("error", errParam))
			c.Redirect(http.StatusFound, oauthFailedPath)
			return
		}

		state := c.Query("state")
		cookieState, err := c.Cookie(oauthStateCookie)
		if err != nil || state == "" || state != cookieState {
			logger.Warn("OAuth state mismatch or missing")
			c.Redirect(http.StatusFound, oauthFailedPath)
			return
		}
		// State is single-use; expire the cookie immediately.
		c.SetCookie(oauthStateCookie, "", -1, "/", "", h.secureCookies, true)

		code := c.Query("code")
		if code == "" {
			logger.Warn("Authorization code missing from callback")
			c.Redirect(http.StatusFound, oauthFailedPath)
			return
		}

		ident, err := provider.FetchIdentity(ctx, code)
		if err != nil {
			logger.Warn("Failed to fetch identity from provider", slog.String("error", err.Error()))
			c.Redirect(http.StatusFound, oauthFailedPath)
			return
		}

		user, err := h.identityService.UpsertFromProvider(ctx, *ident)
		if err != nil {
			logger.Error("Identity resolution failed", slog.String("error", err.Error()))
			c.Redirect(http.StatusFound, oauthFailedPath)
			return
		}

		token, _, err := h.tokenService.GenerateAccessToken(ctx, user)
		if err != nil {
			logger.Error("Failed to generate token after provider login", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to generate token"})
			return
		}

		logger.Info("Provider login successful", slog.String("user_id", user.UserID))
		c.JSON(http.StatusOK, dto.AuthResponse{
			Message: "Login successful",
			Token:   token,
			User:    dto.ToUserResponse(user),
		})
	}
}
