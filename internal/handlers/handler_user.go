package handlers

import (
	"net/http"
	"sort"

	portssvc "github.com/bookshare/bookshare_backend/internal/core/ports/services"
	"github.com/bookshare/bookshare_backend/internal/dto"
	"github.com/bookshare/bookshare_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// UserHandler handles requests about the authenticated user.
type UserHandler struct {
	identityService portssvc.IdentitySvcFacade
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(is portssvc.IdentitySvcFacade) *UserHandler {
	return &UserHandler{identityService: is}
}

// registerUserRoutes sets up the authenticated user routes.
func registerUserRoutes(api *gin.RouterGroup, authRequired gin.HandlerFunc, is portssvc.IdentitySvcFacade) {
	h := NewUserHandler(is)

	users := api.Group("/users", authRequired)
	{
		users.GET("/me", h.GetMe)
	}
}

// GetMe godoc
// @Summary Get the authenticated user
// @Description Returns the caller's profile and which login providers are linked to it.
// @Tags users
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
		return
	}

	user, err := h.identityService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	link, err := h.identityService.GetLinkedAccounts(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	providers := make([]string, 0, len(link.Accounts))
	for p := range link.Accounts {
		providers = append(providers, string(p))
	}
	sort.Strings(providers)

	c.JSON(http.StatusOK, dto.MeResponse{
		User:      dto.ToUserResponse(user),
		Providers: providers,
	})
}
