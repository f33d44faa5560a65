package domain

import "time"

// Favorite is a join record between a user and a book.
// A given (UserID, BookID) pair occurs at most once.
type Favorite struct {
	UserID    string    `json:"userID"`
	BookID    string    `json:"bookID"`
	CreatedAt time.Time `json:"createdAt"`
}
