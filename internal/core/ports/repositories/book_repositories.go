package repositories

import (
	"context"

	"github.com/bookshare/bookshare_backend/internal/core/domain"
)

// BookRepository defines persistence operations for book records.
type BookRepository interface {
	// SaveBook inserts a new book.
	SaveBook(ctx context.Context, book domain.Book) error

	// FindBookByID retrieves a book by ID regardless of visibility.
	// Returns apperrors.ErrNotFound when absent.
	FindBookByID(ctx context.Context, bookID string) (*domain.Book, error)

	// ListVisibleBooks returns books whose active flag is not explicitly
	// false, newest first. Legacy rows without the flag are included.
	ListVisibleBooks(ctx context.Context, limit, offset int) ([]domain.Book, error)

	// FindVisibleBooksByIDs returns the visible books among the given IDs,
	// in no particular order.
	FindVisibleBooksByIDs(ctx context.Context, bookIDs []string) ([]domain.Book, error)
}
