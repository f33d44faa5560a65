package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bookshare/bookshare_backend/internal/apperrors"
	"github.com/bookshare/bookshare_backend/internal/core/domain"
	portsrepo "github.com/bookshare/bookshare_backend/internal/core/ports/repositories"
	portssvc "github.com/bookshare/bookshare_backend/internal/core/ports/services"
	"github.com/google/uuid"
)

type favoriteService struct {
	favoriteRepo portsrepo.FavoriteRepository
	bookRepo     portsrepo.BookRepository
}

// NewFavoriteService creates the favorites service.
func NewFavoriteService(favoriteRepo portsrepo.FavoriteRepository, bookRepo portsrepo.BookRepository) portssvc.FavoriteSvcFacade {
	return &favoriteService{favoriteRepo: favoriteRepo, bookRepo: bookRepo}
}

var _ portssvc.FavoriteSvcFacade = (*favoriteService)(nil)

func (s *favoriteService) AddFavorite(ctx context.Context, userID, bookID string) (*domain.Favorite, error) {
	if _, err := uuid.Parse(bookID); err != nil {
		return nil, fmt.Errorf("invalid book id: %w", apperrors.ErrNotFound)
	}

	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !book.Visible() {
		return nil, apperrors.ErrNotFound
	}

	favorite := domain.Favorite{
		UserID:    userID,
		BookID:    bookID,
		CreatedAt: time.Now(),
	}
	if err := s.favoriteRepo.SaveFavorite(ctx, favorite); err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	return &favorite, nil
}

func (s *favoriteService) RemoveFavorite(ctx context.Context, userID, bookID string) (bool, error) {
	if _, err := uuid.Parse(bookID); err != nil {
		return false, fmt.Errorf("invalid book id: %w", apperrors.ErrNotFound)
	}
	removed, err := s.favoriteRepo.RemoveFavorite(ctx, userID, bookID)
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}
	return removed, nil
}

func (s *favoriteService) ListFavoriteBooks(ctx context.Context, userID string) ([]domain.Book, error) {
	favorites, err := s.favoriteRepo.ListFavoritesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	if len(favorites) == 0 {
		return []domain.Book{}, nil
	}

	bookIDs := make([]string, len(favorites))
	for i, f := range favorites {
		bookIDs[i] = f.BookID
	}
	books, err := s.bookRepo.FindVisibleBooksByIDs(ctx, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch favorite books: %w", err)
	}

	// Preserve most-recently-favorited-first order; hidden books are simply skipped.
	byID := make(map[string]domain.Book, len(books))
	for _, b := range books {
		byID[b.BookID] = b
	}
	ordered := make([]domain.Book, 0, len(books))
	for _, f := range favorites {
		if b, ok := byID[f.BookID]; ok {
			ordered = append(ordered, b)
		}
	}
	return ordered, nil
}
