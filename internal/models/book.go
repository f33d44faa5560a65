package models

import "time"

// Book is the database representation of a book row. IsActive is nullable
// on purpose: rows created before the flag existed carry NULL and are
// treated as active.
type Book struct {
	BookID        string    `db:"book_id"`
	Title         string    `db:"title"`
	Author        *string   `db:"author"`
	Description   *string   `db:"description"`
	Tags          []string  `db:"tags"`
	PDFPath       string    `db:"pdf_path"`
	CoverPath     *string   `db:"cover_path"`
	IsActive      *bool     `db:"is_active"`
	CreatedBy     string    `db:"created_by"`
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
