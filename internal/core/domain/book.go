package domain

import "time"

// Book is a shared document with an attached PDF.
// PDFPath is a relative, portable path under the uploads directory.
// IsActive is a tri-state soft-visibility flag: records written before the
// flag existed carry nil and are treated as active.
type Book struct {
	BookID        string    `json:"bookID"`
	Title         string    `json:"title"`
	Author        string    `json:"author,omitempty"`
	Description   string    `json:"description,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	PDFPath       string    `json:"pdfPath"`
	CoverPath     string    `json:"coverPath,omitempty"`
	IsActive      *bool     `json:"isActive,omitempty"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// Visible reports whether the book should appear in listings.
// Only an explicit false hides a book.
func (b Book) Visible() bool {
	return b.IsActive == nil || *b.IsActive
}
