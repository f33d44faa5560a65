package models

import "time"

// User is the database representation of a user row. Optional columns are
// pointers so NULL round-trips cleanly through pgx.
type User struct {
	UserID            string     `db:"user_id"`
	Email             *string    `db:"email"`
	Name              *string    `db:"name"`
	Photo             *string    `db:"photo"`
	Role              string     `db:"role"`
	PrimaryProvider   *string    `db:"primary_provider"`
	PrimaryProviderID *string    `db:"primary_provider_id"`
	CreatedAt         time.Time  `db:"created_at"`
	LastUpdatedAt     time.Time  `db:"last_updated_at"`
}
