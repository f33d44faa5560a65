package handlers

import (
	"net/http"

	portssvc "github.com/bookshare/bookshare_backend/internal/core/ports/services"
	"github.com/bookshare/bookshare_backend/internal/dto"
	"github.com/bookshare/bookshare_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// FavoriteHandler handles requests against the caller's favorites list.
type FavoriteHandler struct {
	favoriteService portssvc.FavoriteSvcFacade
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(fs portssvc.FavoriteSvcFacade) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: fs}
}

// registerFavoriteRoutes sets up the favorites routes. All of them require
// authentication.
func registerFavoriteRoutes(api *gin.RouterGroup, authRequired gin.HandlerFunc, fs portssvc.FavoriteSvcFacade) {
	h := NewFavoriteHandler(fs)

	favorites := api.Group("/favorites", authRequired)
	{
		favorites.GET("", h.ListFavorites)
		favorites.POST("/:bookId", h.AddFavorite)
		favorites.DELETE("/:bookId", h.RemoveFavorite)
	}
}

// AddFavorite godoc
// @Summary Favorite a book
// @Description Idempotently adds a visible book to the caller's favorites.
// @Tags favorites
// @Produce json
// @Param bookId path string true "Book ID"
// @Success 201 {object} dto.FavoriteResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/favorites/{bookId} [post]
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
		return
	}

	fav, err := h.favoriteService.AddFavorite(c.Request.Context(), userID, c.Param("bookId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Book favorited",
		"favorite": dto.ToFavoriteResponse(fav),
	})
}

// RemoveFavorite godoc
// @Summary Unfavorite a book
// @Description Removes a book from the caller's favorites. Removing an absent favorite is not an error.
// @Tags favorites
// @Produce json
// @Param bookId path string true "Book ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/favorites/{bookId} [delete]
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
		return
	}

	removed, err := h.favoriteService.RemoveFavorite(c.Request.Context(), userID, c.Param("bookId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	msg := "Book unfavorited"
	if !removed {
		msg = "Book was not favorited"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// ListFavorites godoc
// @Summary List favorited books
// @Description Returns the visible books the caller favorited, most recent first.
// @Tags favorites
// @Produce json
// @Success 200 {object} dto.ListBooksResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/favorites [get]
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
		return
	}

	books, err := h.favoriteService.ListFavoriteBooks(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListBooksResponse(books))
}
