package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/bookshare/bookshare_backend/internal/apperrors"
	portssvc "github.com/bookshare/bookshare_backend/internal/core/ports/services"
	"github.com/bookshare/bookshare_backend/internal/dto"
	"github.com/bookshare/bookshare_backend/internal/middleware"
	"github.com/bookshare/bookshare_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles local (email/password) authentication requests.
type AuthHandler struct {
	identityService portssvc.IdentitySvcFacade
	tokenService    portssvc.TokenSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(is portssvc.IdentitySvcFacade, ts portssvc.TokenSvcFacade) *AuthHandler {
	return &AuthHandler{
		identityService: is,
		tokenService:    ts,
	}
}

// registerAuthRoutes sets up the local authentication routes.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.Identity, services.Token)

	// Rate limit login attempts: 5 requests per minute per IP
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", limitMiddleware, h.Login)
		auth.GET("/failed", h.Failed)
	}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user account with an email/password credential and returns a signed token.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration Info"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered with a password"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	user, err := h.identityService.RegisterLocal(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Message: "Email already in use"})
			return
		}
		respondServiceError(c, err)
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to generate token after registration", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message: "Signup successful",
		Token:   token,
		User:    dto.ToUserResponse(user),
	})
}

// Login godoc
// @Summary User login
// @Description Authenticates an email/password pair and returns a signed token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	user, err := h.identityService.AuthenticateLocal(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Deliberately generic so the response does not reveal which part failed.
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid email or password"})
			return
		}
		respondServiceError(c, err)
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to generate token on login", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    dto.ToUserResponse(user),
	})
}

// Failed godoc
// @Summary OAuth failure landing
// @Description Terminal endpoint that failed provider logins are redirected to.
// @Tags auth
// @Produce json
// @Failure 401 {object} ErrorResponse
// @Router /auth/failed [get]
func (h *AuthHandler) Failed(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication failed"})
}
