package models

import "time"

// AuthLinkAccount is the database representation of one provider linkage
// row. The table has one row per (user, provider); together the rows of a
// user form their auth link.
type AuthLinkAccount struct {
	UserID        string    `db:"user_id"`
	Provider      string    `db:"provider"`
	ProviderID    string    `db:"provider_id"`
	Email         *string   `db:"email"`
	Photo         *string   `db:"photo"`
	PasswordHash  *string   `db:"password_hash"`
	LinkedAt      time.Time `db:"linked_at"`
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
