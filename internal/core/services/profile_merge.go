package services

import (
	"time"

	"github.com/bookshare/bookshare_backend/internal/core/domain"
)

// mergeProfile applies the first-write-wins enrichment policy: fields the
// user record is missing are filled from the incoming identity, populated
// fields are never overwritten, and the primary provider is recorded only
// when currently unset. The returned flag reports whether anything changed.
func mergeProfile(user domain.User, ident domain.ExternalIdentity, now time.Time) (domain.User, bool) {
	changed := false

	if user.Email == "" && ident.Email != "" {
		user.Email = ident.Email
		changed = true
	}
	if user.Name == "" && ident.Name != "" {
		user.Name = ident.Name
		changed = true
	}
	if user.Photo == "" && ident.Photo != "" {
		user.Photo = ident.Photo
		changed = true
	}
	if user.PrimaryProvider == "" {
		user.PrimaryProvider = ident.Provider
		changed = true
	}
	if user.PrimaryProviderID == "" && ident.ProviderID != "" {
		user.PrimaryProviderID = ident.ProviderID
		changed = true
	}

	if changed {
		user.LastUpdatedAt = now
	}
	return user, changed
}
