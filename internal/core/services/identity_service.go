package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bookshare/bookshare_backend/internal/apperrors"
	"github.com/bookshare/bookshare_backend/internal/core/domain"
	portsrepo "github.com/bookshare/bookshare_backend/internal/core/ports/repositories"
	portssvc "github.com/bookshare/bookshare_backend/internal/core/ports/services"
	"github.com/bookshare/bookshare_backend/internal/dto"
	"github.com/bookshare/bookshare_backend/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const minPasswordLength = 6

var validate = validator.New()

// identityService resolves every authentication attempt (local or OAuth) to
// exactly one canonical user, creating or linking records as needed. Races
// on concurrent first logins are resolved by the database's unique indexes,
// which surface as apperrors.ErrDuplicate rather than silent duplication.
type identityService struct {
	userRepo portsrepo.UserRepository
	linkRepo portsrepo.AuthLinkRepository
}

// NewIdentityService creates the identity resolution service.
func NewIdentityService(userRepo portsrepo.UserRepository, linkRepo portsrepo.AuthLinkRepository) portssvc.IdentitySvcFacade {
	return &identityService{userRepo: userRepo, linkRepo: linkRepo}
}

var _ portssvc.IdentitySvcFacade = (*identityService)(nil)

func (s *identityService) RegisterLocal(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := utils.NormalizeEmail(req.Email)
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("a valid email is required: %w", apperrors.ErrValidation)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, apperrors.ErrValidation)
	}

	// A local credential may exist at most once per email.
	_, err := s.linkRepo.FindLocalAccountByEmail(ctx, email)
	if err == nil {
		return nil, fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing local credential: %w", err)
	}

	now := time.Now()
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		// Account born through an OAuth provider; attach the local
		// credential and fill the gaps without overwriting anything.
		merged, changed := mergeProfile(*user, domain.ExternalIdentity{
			Provider:   domain.ProviderLocal,
			ProviderID: email,
			Name:       req.Name,
		}, now)
		if changed {
			if err := s.userRepo.UpdateUser(ctx, merged); err != nil {
				return nil, fmt.Errorf("failed to enrich user on local registration: %w", err)
			}
		}
		user = &merged
	case errors.Is(err, apperrors.ErrNotFound):
		newUser := domain.User{
			UserID:            uuid.NewString(),
			Email:             email,
			Name:              req.Name,
			Role:              domain.RoleUser,
			PrimaryProvider:   domain.ProviderLocal,
			PrimaryProviderID: email,
			CreatedAt:         now,
			LastUpdatedAt:     now,
		}
		if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
			return nil, err
		}
		user = &newUser
	default:
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	err = s.linkRepo.UpsertAccount(ctx, domain.ProviderAccount{
		UserID:       user.UserID,
		Provider:     domain.ProviderLocal,
		ProviderID:   email,
		Email:        email,
		PasswordHash: passwordHash,
		LinkedAt:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store local credential: %w", err)
	}

	return user, nil
}

func (s *identityService) AuthenticateLocal(ctx context.Context, email, password string) (*domain.User, error) {
	normalized := utils.NormalizeEmail(email)
	if normalized == "" || password == "" {
		return nil, apperrors.ErrUnauthorized
	}

	account, err := s.linkRepo.FindLocalAccountByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up local credential: %w", err)
	}
	if account.PasswordHash == "" || !utils.CheckPasswordHash(password, account.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindUserByID(ctx, account.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load user for login: %w", err)
	}
	return user, nil
}

func (s *identityService) UpsertFromProvider(ctx context.Context, ident domain.ExternalIdentity) (*domain.User, error) {
	if ident.Provider == "" || ident.ProviderID == "" {
		return nil, fmt.Errorf("provider profile is missing an id: %w", apperrors.ErrValidation)
	}
	ident.Email = utils.NormalizeEmail(ident.Email)
	now := time.Now()

	// 1) Returning user on this provider.
	user, err := s.findUserByLink(ctx, ident)
	if err != nil {
		return nil, err
	}

	// 2) Link onto an account first created through another provider.
	if user == nil && ident.Email != "" {
		existing, err := s.userRepo.FindUserByEmail(ctx, ident.Email)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user by email: %w", err)
		}
		user = existing
	}

	// 3) New account, seeded with whatever the profile carries.
	if user == nil {
		newUser := domain.User{
			UserID:            uuid.NewString(),
			Email:             ident.Email,
			Name:              ident.Name,
			Photo:             ident.Photo,
			Role:              domain.RoleUser,
			PrimaryProvider:   ident.Provider,
			PrimaryProviderID: ident.ProviderID,
			CreatedAt:         now,
			LastUpdatedAt:     now,
		}
		if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
			return nil, err
		}
		user = &newUser
	} else {
		merged, changed := mergeProfile(*user, ident, now)
		if changed {
			if err := s.userRepo.UpdateUser(ctx, merged); err != nil {
				return nil, fmt.Errorf("failed to enrich user profile: %w", err)
			}
		}
		user = &merged
	}

	// Record/refresh this provider's linkage; other providers' rows are untouched.
	err = s.linkRepo.UpsertAccount(ctx, domain.ProviderAccount{
		UserID:     user.UserID,
		Provider:   ident.Provider,
		ProviderID: ident.ProviderID,
		Email:      ident.Email,
		Photo:      ident.Photo,
		LinkedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record provider linkage: %w", err)
	}

	return user, nil
}

// findUserByLink resolves step 1 of the upsert: an existing linkage for the
// provider identity. A linkage pointing at a vanished user is discarded so
// resolution falls through to the email-match / create path.
func (s *identityService) findUserByLink(ctx context.Context, ident domain.ExternalIdentity) (*domain.User, error) {
	account, err := s.linkRepo.FindAccountByProvider(ctx, ident.Provider, ident.ProviderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up provider linkage: %w", err)
	}

	user, err := s.userRepo.FindUserByID(ctx, account.UserID)
	if err == nil {
		return user, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		// Orphaned link: drop it and resolve from scratch.
		if delErr := s.linkRepo.DeleteAccount(ctx, ident.Provider, ident.ProviderID); delErr != nil {
			return nil, fmt.Errorf("failed to discard orphaned provider linkage: %w", delErr)
		}
		return nil, nil
	}
	return nil, fmt.Errorf("failed to load linked user: %w", err)
}

func (s *identityService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *identityService) GetLinkedAccounts(ctx context.Context, userID string) (*domain.AuthLink, error) {
	link, err := s.linkRepo.FindLinkByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.AuthLink{UserID: userID, Accounts: map[domain.AuthProvider]domain.ProviderAccount{}}, nil
		}
		return nil, fmt.Errorf("failed to load provider linkages: %w", err)
	}
	return link, nil
}
