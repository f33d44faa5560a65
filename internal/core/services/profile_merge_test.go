package services_test

import (
	"context"
	"testing"

	"github.com/bookshare/bookshare_backend/internal/apperrors"
	"github.com/bookshare/bookshare_backend/internal/core/domain"
	"github.com/bookshare/bookshare_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Enrichment policy, asserted through UpsertFromProvider: the incoming
// identity resolves to an existing user by email and may only fill gaps in
// the profile, never overwrite populated fields.
func TestUpsertFromProvider_EnrichmentPolicy(t *testing.T) {
	tests := []struct {
		name       string
		existing   domain.User
		ident      domain.ExternalIdentity
		wantUpdate bool
		check      func(t *testing.T, updated domain.User)
	}{
		{
			name: "fills only the missing fields",
			existing: domain.User{
				UserID:          "u1",
				Email:           "kept@example.com",
				PrimaryProvider: domain.ProviderLocal,
			},
			ident: domain.ExternalIdentity{
				Provider:   domain.ProviderGoogle,
				ProviderID: "g-1",
				Email:      "kept@example.com",
				Name:       "Incoming Name",
				Photo:      "https://example.com/p.jpg",
			},
			wantUpdate: true,
			check: func(t *testing.T, updated domain.User) {
				assert.Equal(t, "kept@example.com", updated.Email)
				assert.Equal(t, "Incoming Name", updated.Name)
				assert.Equal(t, "https://example.com/p.jpg", updated.Photo)
				assert.Equal(t, domain.ProviderLocal, updated.PrimaryProvider)
				assert.Equal(t, "g-1", updated.PrimaryProviderID)
			},
		},
		{
			name: "complete profile is left untouched",
			existing: domain.User{
				UserID:            "u1",
				Email:             "a@example.com",
				Name:              "A",
				Photo:             "p",
				PrimaryProvider:   domain.ProviderGoogle,
				PrimaryProviderID: "g-1",
			},
			ident: domain.ExternalIdentity{
				Provider:   domain.ProviderFacebook,
				ProviderID: "f-1",
				Email:      "a@example.com",
				Name:       "B",
				Photo:      "q",
			},
			wantUpdate: false,
		},
		{
			name: "records primary provider when unset",
			existing: domain.User{
				UserID: "u1",
				Email:  "a@example.com",
			},
			ident: domain.ExternalIdentity{
				Provider:   domain.ProviderFacebook,
				ProviderID: "f-2",
				Email:      "a@example.com",
			},
			wantUpdate: true,
			check: func(t *testing.T, updated domain.User) {
				assert.Equal(t, domain.ProviderFacebook, updated.PrimaryProvider)
				assert.Equal(t, "f-2", updated.PrimaryProviderID)
			},
		},
		{
			name: "empty incoming fields never clear values",
			existing: domain.User{
				UserID:            "u1",
				Email:             "a@example.com",
				Name:              "A",
				Photo:             "p",
				PrimaryProvider:   domain.ProviderGoogle,
				PrimaryProviderID: "g-1",
			},
			ident: domain.ExternalIdentity{
				Provider:   domain.ProviderFacebook,
				ProviderID: "f-3",
				Email:      "a@example.com",
			},
			wantUpdate: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			existing := tc.existing

			var updated *domain.User
			userRepo := &MockUserRepository{
				FindUserByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
					return &existing, nil
				},
				UpdateUserFn: func(ctx context.Context, user domain.User) error {
					updated = &user
					return nil
				},
			}
			linkRepo := &MockAuthLinkRepository{
				FindAccountByProviderFn: func(ctx context.Context, provider domain.AuthProvider, providerID string) (*domain.ProviderAccount, error) {
					return nil, apperrors.ErrNotFound
				},
				UpsertAccountFn: func(ctx context.Context, account domain.ProviderAccount) error {
					return nil
				},
			}
			svc := services.NewIdentityService(userRepo, linkRepo)

			user, err := svc.UpsertFromProvider(ctx, tc.ident)

			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, existing.UserID, user.UserID)
			if tc.wantUpdate {
				require.NotNil(t, updated, "expected an enrichment write")
				tc.check(t, *updated)
				assert.Equal(t, *updated, *user)
			} else {
				assert.Nil(t, updated, "no enrichment write expected")
				assert.Equal(t, existing.Name, user.Name)
				assert.Equal(t, existing.Photo, user.Photo)
				assert.Equal(t, existing.PrimaryProvider, user.PrimaryProvider)
			}
		})
	}
}
