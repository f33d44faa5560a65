package services

import (
	"context"

	"github.com/bookshare/bookshare_backend/internal/core/domain"
	"github.com/bookshare/bookshare_backend/internal/dto"
)

// BookReaderSvc defines read operations for books.
type BookReaderSvc interface {
	// ListBooks returns visible book summaries, newest first.
	ListBooks(ctx context.Context, limit, offset int) ([]domain.Book, error)

	// GetBookByID retrieves a single book. A malformed or unknown id yields
	// apperrors.ErrNotFound.
	GetBookByID(ctx context.Context, bookID string) (*domain.Book, error)
}

// BookWriterSvc defines write operations for books.
type BookWriterSvc interface {
	// CreateBook persists book metadata for a PDF already placed on disk at
	// pdfPath (relative). Returns apperrors.ErrValidation when the title or
	// path is missing.
	CreateBook(ctx context.Context, creatorUserID string, req dto.CreateBookRequest, pdfPath string) (*domain.Book, error)
}

// BookSvcFacade combines all book service interfaces.
type BookSvcFacade interface {
	BookReaderSvc
	BookWriterSvc
}
