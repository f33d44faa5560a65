package models

import "time"

// Favorite is the database representation of a favorite row.
type Favorite struct {
	UserID    string    `db:"user_id"`
	BookID    string    `db:"book_id"`
	CreatedAt time.Time `db:"created_at"`
}
