package dto

import "github.com/bookshare/bookshare_backend/internal/core/domain"

// MeResponse is the authenticated user's own view: the profile plus the
// login providers currently linked to the account.
type MeResponse struct {
	User      UserResponse `json:"user"`
	Providers []string     `json:"providers"`
}

// UserResponse is the public projection of a user account.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Photo string `json:"photo,omitempty"`
	Role  string `json:"role"`
}

// ToUserResponse converts a domain.User to its public projection.
func ToUserResponse(user *domain.User) UserResponse {
	role := user.Role
	if role == "" {
		role = domain.RoleUser
	}
	return UserResponse{
		ID:    user.UserID,
		Name:  user.Name,
		Email: user.Email,
		Photo: user.Photo,
		Role:  string(role),
	}
}
