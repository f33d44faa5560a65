package dto

import (
	"time"

	"github.com/bookshare/bookshare_backend/internal/core/domain"
)

// FavoriteResponse is the public projection of a favorite record.
type FavoriteResponse struct {
	UserID    string    `json:"userID"`
	BookID    string    `json:"bookID"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToFavoriteResponse converts a domain.Favorite.
func ToFavoriteResponse(fav *domain.Favorite) FavoriteResponse {
	return FavoriteResponse{
		UserID:    fav.UserID,
		BookID:    fav.BookID,
		CreatedAt: fav.CreatedAt,
	}
}
