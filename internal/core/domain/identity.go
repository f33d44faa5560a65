package domain

import "time"

// AuthProvider identifies an identity source: the local password mechanism
// or an external OAuth provider.
type AuthProvider string

const (
	ProviderLocal    AuthProvider = "local"
	ProviderGoogle   AuthProvider = "google"
	ProviderFacebook AuthProvider = "facebook"
)

// ExternalIdentity is the normalized shape of a profile returned by any
// provider. Each provider adapter produces one of these; the identity
// service consumes them uniformly. Email may be empty (Facebook users can
// withhold it).
type ExternalIdentity struct {
	Provider   AuthProvider
	ProviderID string
	Email      string // already lower-cased and trimmed by the adapter
	Name       string
	Photo      string
}

// ProviderAccount is one provider's credentials linked to a user.
// PasswordHash is only populated for the local provider.
type ProviderAccount struct {
	UserID       string       `json:"userID"`
	Provider     AuthProvider `json:"provider"`
	ProviderID   string       `json:"providerID"`
	Email        string       `json:"email,omitempty"`
	Photo        string       `json:"photo,omitempty"`
	PasswordHash string       `json:"-"`
	LinkedAt     time.Time    `json:"linkedAt"`
}

// AuthLink is the full set of provider accounts linked to one user.
// At most one account exists per (user, provider).
type AuthLink struct {
	UserID   string
	Accounts map[AuthProvider]ProviderAccount
}
