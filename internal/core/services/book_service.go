package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bookshare/bookshare_backend/internal/apperrors"
	"github.com/bookshare/bookshare_backend/internal/core/domain"
	portsrepo "github.com/bookshare/bookshare_backend/internal/core/ports/repositories"
	portssvc "github.com/bookshare/bookshare_backend/internal/core/ports/services"
	"github.com/bookshare/bookshare_backend/internal/dto"
	"github.com/bookshare/bookshare_backend/internal/utils"
	"github.com/google/uuid"
)

type bookService struct {
	bookRepo portsrepo.BookRepository
}

// NewBookService creates the book service.
func NewBookService(bookRepo portsrepo.BookRepository) portssvc.BookSvcFacade {
	return &bookService{bookRepo: bookRepo}
}

var _ portssvc.BookSvcFacade = (*bookService)(nil)

func (s *bookService) CreateBook(ctx context.Context, creatorUserID string, req dto.CreateBookRequest, pdfPath string) (*domain.Book, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", apperrors.ErrValidation)
	}
	if pdfPath == "" {
		return nil, fmt.Errorf("pdf file is required: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	active := true
	book := domain.Book{
		BookID:        uuid.NewString(),
		Title:         title,
		Author:        strings.TrimSpace(req.Author),
		Description:   strings.TrimSpace(req.Description),
		Tags:          utils.ParseTags(req.Tags),
		PDFPath:       pdfPath,
		IsActive:      &active,
		CreatedBy:     creatorUserID,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	if err := s.bookRepo.SaveBook(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return &book, nil
}

func (s *bookService) ListBooks(ctx context.Context, limit, offset int) ([]domain.Book, error) {
	books, err := s.bookRepo.ListVisibleBooks(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func (s *bookService) GetBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
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
	return book, nil
}
