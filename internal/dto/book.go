package dto

import (
	"time"

	"github.com/bookshare/bookshare_backend/internal/core/domain"
)

// CreateBookRequest carries the multipart form fields of a book upload.
// The PDF itself is handled separately by the upload storage collaborator.
type CreateBookRequest struct {
	Title       string `form:"title"`
	Author      string `form:"author"`
	Description string `form:"description"`
	Tags        string `form:"tags"` // comma-separated
}

// BookResponse is the public summary projection of a book. The raw PDF path
// is deliberately excluded from list and detail views.
type BookResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CoverPath   string    `json:"coverPath,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreatedBookResponse is returned right after a successful upload and is the
// one projection that includes the stored PDF path.
type CreatedBookResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	PDFPath     string    `json:"pdfPath"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListBooksResponse wraps book summaries.
type ListBooksResponse struct {
	Books []BookResponse `json:"books"`
}

// ToBookResponse converts a domain.Book to its summary projection.
func ToBookResponse(book domain.Book) BookResponse {
	return BookResponse{
		ID:          book.BookID,
		Title:       book.Title,
		Author:      book.Author,
		Description: book.Description,
		Tags:        book.Tags,
		CoverPath:   book.CoverPath,
		CreatedAt:   book.CreatedAt,
		UpdatedAt:   book.LastUpdatedAt,
	}
}

// ToCreatedBookResponse converts a freshly created domain.Book.
func ToCreatedBookResponse(book *domain.Book) CreatedBookResponse {
	return CreatedBookResponse{
		ID:          book.BookID,
		Title:       book.Title,
		Author:      book.Author,
		Description: book.Description,
		Tags:        book.Tags,
		PDFPath:     book.PDFPath,
		CreatedAt:   book.CreatedAt,
	}
}

// ToListBooksResponse converts a slice of domain.Book to ListBooksResponse.
func ToListBooksResponse(books []domain.Book) ListBooksResponse {
	responses := make([]BookResponse, len(books))
	for i, b := range books {
		responses[i] = ToBookResponse(b)
	}
	return ListBooksResponse{Books: responses}
}
