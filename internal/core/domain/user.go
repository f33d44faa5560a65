package domain

import "time"

// Role controls what a user may do. Only two roles exist today.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a canonical user account in the domain.
// Email, Name and Photo are optional: an account born from an OAuth provider
// that withholds the email starts out with only a provider linkage.
type User struct {
	UserID string `json:"userID"` // Primary key (UUID)
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	Photo  string `json:"photo,omitempty"`
	Role   Role   `json:"role"`

	// PrimaryProvider records the provider the account was first created
	// through. Set once, never changed afterwards.
	PrimaryProvider   AuthProvider `json:"primaryProvider,omitempty"`
	PrimaryProviderID string       `json:"primaryProviderID,omitempty"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
