package services_test

import (
	"context"
	"testing"

	"github.com/bookshare/bookshare_backend/internal/apperrors"
	"github.com/bookshare/bookshare_backend/internal/core/domain"
	portssvc "github.com/bookshare/bookshare_backend/internal/core/ports/services"
	"github.com/bookshare/bookshare_backend/internal/core/services"
	"github.com/bookshare/bookshare_backend/internal/dto"
	"github.com/bookshare/bookshare_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
	SaveUserFn        func(ctx context.Context, user domain.User) error
	FindUserByIDFn    func(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	UpdateUserFn      func(ctx context.Context, user domain.User) error
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	if m.SaveUserFn != nil {
		return m.SaveUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindUserByEmailFn != nil {
		return m.FindUserByEmailFn(ctx, email)
	}
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock AuthLinkRepository ---
type MockAuthLinkRepository struct {
	mock.Mock
	FindAccountByProviderFn   func(ctx context.Context, provider domain.AuthProvider, providerID string) (*domain.ProviderAccount, error)
	FindLocalAccountByEmailFn func(ctx context.Context, email string) (*domain.ProviderAccount, error)
	FindLinkByUserIDFn        func(ctx context.Context, userID string) (*domain.AuthLink, error)
	UpsertAccountFn           func(ctx context.Context, account domain.ProviderAccount) error
	DeleteAccountFn           func(ctx context.Context, provider domain.AuthProvider, providerID string) error
}

func (m *MockAuthLinkRepository) FindAccountByProvider(ctx context.Context, provider domain.AuthProvider, providerID string) (*domain.ProviderAccount, error) {
	if m.FindAccountByProviderFn != nil {
		return m.FindAccountByProviderFn(ctx, provider, providerID)
	}
	args := m.Called(ctx, provider, providerID)
	var account *domain.ProviderAccount
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.ProviderAccount)
	}
	return account, args.Error(1)
}

func (m *MockAuthLinkRepository) FindLocalAccountByEmail(ctx context.Context, email string) (*domain.ProviderAccount, error) {
	if m.FindLocalAccountByEmailFn != nil {
		return m.FindLocalAccountByEmailFn(ctx, email)
	}
	args := m.Called(ctx, email)
	var account *domain.ProviderAccount
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.ProviderAccount)
	}
	return account, args.Error(1)
}

func (m *MockAuthLinkRepository) FindLinkByUserID(ctx context.Context, userID string) (*domain.AuthLink, error) {
	if m.FindLinkByUserIDFn != nil {
		return m.FindLinkByUserIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var link *domain.AuthLink
	if args.Get(0) != nil {
		link = args.Get(0).(*domain.AuthLink)
	}
	return link, args.Error(1)
}

func (m *MockAuthLinkRepository) UpsertAccount(ctx context.Context, account domain.ProviderAccount) error {
	if m.UpsertAccountFn != nil {
		return m.UpsertAccountFn(ctx, account)
	}
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAuthLinkRepository) DeleteAccount(ctx context.Context, provider domain.AuthProvider, providerID string) error {
	if m.DeleteAccountFn != nil {
		return m.DeleteAccountFn(ctx, provider, providerID)
	}
	args := m.Called(ctx, provider, providerID)
	return args.Error(0)
}

// --- Test Suite ---
type IdentityServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	mockLinkRepo *MockAuthLinkRepository
	service      portssvc.IdentitySvcFacade
}

func (suite *IdentityServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockLinkRepo = new(MockAuthLinkRepository)
	suite.service = services.NewIdentityService(suite.mockUserRepo, suite.mockLinkRepo)
}

// --- RegisterLocal Tests ---

func (suite *IdentityServiceTestSuite) TestRegisterLocal_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{Name: "Test User", Email: "Test@Example.com", Password: "password123"}
	normalizedEmail := "test@example.com"

	suite.mockLinkRepo.On("FindLocalAccountByEmail", ctx, normalizedEmail).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, normalizedEmail).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == normalizedEmail &&
			user.Name == "Test User" &&
			user.Role == domain.RoleUser &&
			user.PrimaryProvider == domain.ProviderLocal
	})).Return(nil).Once()
	suite.mockLinkRepo.On("UpsertAccount", ctx, mock.MatchedBy(func(account domain.ProviderAccount) bool {
		return account.Provider == domain.ProviderLocal &&
			account.ProviderID == normalizedEmail &&
			account.PasswordHash != "" &&
			account.PasswordHash != "password123" &&
			utils.CheckPasswordHash("password123", account.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.RegisterLocal(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(normalizedEmail, user.Email)
	suite.NotEmpty(user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *IdentityServiceTestSuite) TestRegisterLocal_MissingEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{Password: "password123"}

	user, err := suite.service.RegisterLocal(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *IdentityServiceTestSuite) TestRegisterLocal_ShortPassword() {
	ctx := context.Background()
	req := dto.RegisterRequest{Email: "test@example.com", Password: "short"}

	user, err := suite.service.RegisterLocal(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *IdentityServiceTestSuite) TestRegisterLocal_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{Email: "taken@example.com", Password: "password123"}
	existingAccount := &domain.ProviderAccount{
		UserID:       uuid.NewString(),
		Provider:     domain.ProviderLocal,
		ProviderID:   "taken@example.com",
		PasswordHash: "some-hash",
	}

	suite.mockLinkRepo.On("FindLocalAccountByEmail", ctx, "taken@example.com").Return(existingAccount, nil).Once()

	user, err := suite.service.RegisterLocal(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

// A user born through an OAuth provider can register a password afterwards:
// the credential attaches to the same account instead of creating a second one.
func (suite *IdentityServiceTestSuite) TestRegisterLocal_AttachesToProviderBornAccount() {
	ctx := context.Background()
	email := "linked@example.com"
	existingUser := &domain.User{
		UserID:            uuid.NewString(),
		Email:             email,
		Name:              "Existing Name",
		Photo:             "https://example.com/p.jpg",
		Role:              domain.RoleUser,
		PrimaryProvider:   domain.ProviderGoogle,
		PrimaryProviderID: "google-sub-1",
	}
	req := dto.RegisterRequest{Name: "Other Name", Email: email, Password: "password123"}

	suite.mockLinkRepo.On("FindLocalAccountByEmail", ctx, email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, email).Return(existingUser, nil).Once()
	suite.mockLinkRepo.On("UpsertAccount", ctx, mock.MatchedBy(func(account domain.ProviderAccount) bool {
		return account.UserID == existingUser.UserID && account.Provider == domain.ProviderLocal
	})).Return(nil).Once()

	user, err := suite.service.RegisterLocal(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(existingUser.UserID, user.UserID)
	// Populated fields keep their first value.
	suite.Equal("Existing Name", user.Name)
	suite.Equal(domain.ProviderGoogle, user.PrimaryProvider)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

// --- AuthenticateLocal Tests ---

func (suite *IdentityServiceTestSuite) TestAuthenticateLocal_Success() {
	ctx := context.Background()
	email := "login@example.com"
	password := "password123"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	userID := uuid.NewString()
	account := &domain.ProviderAccount{
		UserID:       userID,
		Provider:     domain.ProviderLocal,
		ProviderID:   email,
		Email:        email,
		PasswordHash: hash,
	}
	expectedUser := &domain.User{UserID: userID, Email: email, Role: domain.RoleUser}

	suite.mockLinkRepo.On("FindLocalAccountByEmail", ctx, email).Return(account, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(expectedUser, nil).Once()

	user, err := suite.service.AuthenticateLocal(ctx, "Login@Example.com", password)

	suite.Require().NoError(err)
	suite.Equal(expectedUser, user)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *IdentityServiceTestSuite) TestAuthenticateLocal_UnknownEmail() {
	ctx := context.Background()

	suite.mockLinkRepo.On("FindLocalAccountByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.AuthenticateLocal(ctx, "nobody@example.com", "password123")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *IdentityServiceTestSuite) TestAuthenticateLocal_WrongPassword() {
	ctx := context.Background()
	email := "login@example.com"
	hash, err := utils.HashPassword("correct-password")
	suite.Require().NoError(err)

	account := &domain.ProviderAccount{
		UserID:       uuid.NewString(),
		Provider:     domain.ProviderLocal,
		ProviderID:   email,
		PasswordHash: hash,
	}

	suite.mockLinkRepo.On("FindLocalAccountByEmail", ctx, email).Return(account, nil).Once()

	user, err := suite.service.AuthenticateLocal(ctx, email, "wrong-password")

	suite.Require().Error(err)
	suite.Nil(user)
	// Wrong password and unknown email are indistinguishable to the caller.
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *IdentityServiceTestSuite) TestAuthenticateLocal_EmptyInput() {
	ctx := context.Background()

	user, err := suite.service.AuthenticateLocal(ctx, "", "")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- UpsertFromProvider Tests ---

func (suite *IdentityServiceTestSuite) TestUpsertFromProvider_ReturningUser() {
	ctx := context.Background()
	userID := uuid.NewString()
	ident := domain.ExternalIdentity{
		Provider:   domain.ProviderGoogle,
		ProviderID: "google-sub-1",
		Email:      "user@example.com",
		Name:       "Test User",
		Photo:      "https://example.com/p.jpg",
	}
	linkedAccount := &domain.ProviderAccount{UserID: userID, Provider: domain.ProviderGoogle, ProviderID: "google-sub-1"}
	existingUser := &domain.User{
		UserID:            userID,
		Email:             "user@example.com",
		Name:              "Test User",
		Photo:             "https://example.com/p.jpg",
		Role:              domain.RoleUser,
		PrimaryProvider:   domain.ProviderGoogle,
		PrimaryProviderID: "google-sub-1",
	}

	suite.mockLinkRepo.On("FindAccountByProvider", ctx, domain.ProviderGoogle, "google-sub-1").Return(linkedAccount, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(existingUser, nil).Once()
	suite.mockLinkRepo.On("UpsertAccount", ctx, mock.MatchedBy(func(account domain.ProviderAccount) bool {
		return account.UserID == userID && account.Provider == domain.ProviderGoogle
	})).Return(nil).Once()

	user, err := suite.service.UpsertFromProvider(ctx, ident)

	suite.Require().NoError(err)
	suite.Equal(userID, user.UserID)
	// Fully populated profile: no enrichment write expected.
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *IdentityServiceTestSuite) TestUpsertFromProvider_LinksSecondProviderByEmail() {
	ctx := context.Background()
	userID := uuid.NewString()
	// Account first created through Google, now logging in with Facebook.
	existingUser := &domain.User{
		UserID:            userID,
		Email:             "user@example.com",
		Name:              "Test User",
		Role:              domain.RoleUser,
		PrimaryProvider:   domain.ProviderGoogle,
		PrimaryProviderID: "google-sub-1",
	}
	ident := domain.ExternalIdentity{
		Provider:   domain.ProviderFacebook,
		ProviderID: "fb-id-9",
		Email:      "user@example.com",
		Name:       "Different Name",
		Photo:      "https://example.com/fb.jpg",
	}

	suite.mockLinkRepo.On("FindAccountByProvider", ctx, domain.ProviderFacebook, "fb-id-9").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "user@example.com").Return(existingUser, nil).Once()
	// Only the missing photo is filled; name and primary provider stay.
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.UserID == userID &&
			user.Name == "Test User" &&
			user.Photo == "https://example.com/fb.jpg" &&
			user.PrimaryProvider == domain.ProviderGoogle
	})).Return(nil).Once()
	suite.mockLinkRepo.On("UpsertAccount", ctx, mock.MatchedBy(func(account domain.ProviderAccount) bool {
		return account.UserID == userID &&
			account.Provider == domain.ProviderFacebook &&
			account.ProviderID == "fb-id-9" &&
			account.PasswordHash == ""
	})).Return(nil).Once()

	user, err := suite.service.UpsertFromProvider(ctx, ident)

	suite.Require().NoError(err)
	suite.Equal(userID, user.UserID)
	suite.Equal("Test User", user.Name)
	suite.Equal("https://example.com/fb.jpg", user.Photo)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *IdentityServiceTestSuite) TestUpsertFromProvider_CreatesNewUser() {
	ctx := context.Background()
	ident := domain.ExternalIdentity{
		Provider:   domain.ProviderGoogle,
		ProviderID: "google-sub-new",
		Email:      "new@example.com",
		Name:       "New User",
	}

	suite.mockLinkRepo.On("FindAccountByProvider", ctx, domain.ProviderGoogle, "google-sub-new").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "new@example.com" &&
			user.Name == "New User" &&
			user.PrimaryProvider == domain.ProviderGoogle &&
			user.PrimaryProviderID == "google-sub-new"
	})).Return(nil).Once()
	suite.mockLinkRepo.On("UpsertAccount", ctx, mock.MatchedBy(func(account domain.ProviderAccount) bool {
		return account.Provider == domain.ProviderGoogle && account.ProviderID == "google-sub-new"
	})).Return(nil).Once()

	user, err := suite.service.UpsertFromProvider(ctx, ident)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.Equal(domain.RoleUser, user.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *IdentityServiceTestSuite) TestUpsertFromProvider_NoEmailCreatesUser() {
	ctx := context.Background()
	// Facebook accounts may carry no email at all.
	ident := domain.ExternalIdentity{
		Provider:   domain.ProviderFacebook,
		ProviderID: "fb-no-email",
		Name:       "No Email",
	}

	suite.mockLinkRepo.On("FindAccountByProvider", ctx, domain.ProviderFacebook, "fb-no-email").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "" && user.PrimaryProvider == domain.ProviderFacebook
	})).Return(nil).Once()
	suite.mockLinkRepo.On("UpsertAccount", ctx, mock.AnythingOfType("domain.ProviderAccount")).Return(nil).Once()

	user, err := suite.service.UpsertFromProvider(ctx, ident)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	// Email lookup must be skipped entirely when the profile has none.
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByEmail", mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *IdentityServiceTestSuite) TestUpsertFromProvider_OrphanedLinkDiscarded() {
	ctx := context.Background()
	vanishedUserID := uuid.NewString()
	ident := domain.ExternalIdentity{
		Provider:   domain.ProviderGoogle,
		ProviderID: "google-sub-orphan",
		Email:      "orphan@example.com",
		Name:       "Orphan",
	}
	orphanedAccount := &domain.ProviderAccount{UserID: vanishedUserID, Provider: domain.ProviderGoogle, ProviderID: "google-sub-orphan"}

	suite.mockLinkRepo.On("FindAccountByProvider", ctx, domain.ProviderGoogle, "google-sub-orphan").Return(orphanedAccount, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, vanishedUserID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLinkRepo.On("DeleteAccount", ctx, domain.ProviderGoogle, "google-sub-orphan").Return(nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "orphan@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.UserID != vanishedUserID && user.Email == "orphan@example.com"
	})).Return(nil).Once()
	suite.mockLinkRepo.On("UpsertAccount", ctx, mock.AnythingOfType("domain.ProviderAccount")).Return(nil).Once()

	user, err := suite.service.UpsertFromProvider(ctx, ident)

	suite.Require().NoError(err)
	suite.NotEqual(vanishedUserID, user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *IdentityServiceTestSuite) TestUpsertFromProvider_MissingProviderID() {
	ctx := context.Background()

	user, err := suite.service.UpsertFromProvider(ctx, domain.ExternalIdentity{Provider: domain.ProviderGoogle})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- GetLinkedAccounts Tests ---

func (suite *IdentityServiceTestSuite) TestGetLinkedAccounts_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	link := &domain.AuthLink{
		UserID: userID,
		Accounts: map[domain.AuthProvider]domain.ProviderAccount{
			domain.ProviderLocal: {UserID: userID, Provider: domain.ProviderLocal},
		},
	}

	suite.mockLinkRepo.On("FindLinkByUserID", ctx, userID).Return(link, nil).Once()

	got, err := suite.service.GetLinkedAccounts(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(link, got)
}

func (suite *IdentityServiceTestSuite) TestGetLinkedAccounts_NoLinkageIsEmptyNotError() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockLinkRepo.On("FindLinkByUserID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.GetLinkedAccounts(ctx, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.Empty(got.Accounts)
}

func TestIdentityService(t *testing.T) {
	suite.Run(t, new(IdentityServiceTestSuite))
}
