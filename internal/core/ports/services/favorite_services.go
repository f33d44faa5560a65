package services

import (
	"context"

	"github.com/bookshare/bookshare_backend/internal/core/domain"
)

// FavoriteSvcFacade manages a user's favorites list.
type FavoriteSvcFacade interface {
	// AddFavorite idempotently favorites a visible book. A malformed id or a
	// missing/hidden book yields apperrors.ErrNotFound.
	AddFavorite(ctx context.Context, userID, bookID string) (*domain.Favorite, error)

	// RemoveFavorite deletes the favorite if present and reports whether a
	// record was removed. Removing an absent favorite is not an error.
	RemoveFavorite(ctx context.Context, userID, bookID string) (bool, error)

	// ListFavoriteBooks returns the visible books the user favorited,
	// most-recently-favorited first.
	ListFavoriteBooks(ctx context.Context, userID string) ([]domain.Book, error)
}
