package repositories

import (
	"context"

	"github.com/bookshare/bookshare_backend/internal/core/domain"
)

// FavoriteRepository defines persistence operations for favorite records.
type FavoriteRepository interface {
	// SaveFavorite ensures exactly one (user, book) favorite exists.
	// Saving an already existing favorite is a no-op.
	SaveFavorite(ctx context.Context, favorite domain.Favorite) error

	// RemoveFavorite deletes the favorite if present and reports whether a
	// row was removed.
	RemoveFavorite(ctx context.Context, userID, bookID string) (bool, error)

	// ListFavoritesByUser returns the user's favorites, most recent first.
	ListFavoritesByUser(ctx context.Context, userID string) ([]domain.Favorite, error)
}
