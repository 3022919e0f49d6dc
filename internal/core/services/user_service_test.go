package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/core/services"
	"github.com/expenseflow/expense_approval_app/internal/dto"
	"github.com/expenseflow/expense_approval_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, authProvider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, authProvider, providerUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

func registerReq() dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:                "Test User",
		Email:               "test@example.com",
		Password:            "password123",
		ConfirmPassword:     "password123",
		DefaultCurrencyCode: "USD",
	}
}

// --- Register Tests ---

func (suite *UserServiceTestSuite) TestRegister_FirstUserBecomesAdmin() {
	ctx := context.Background()

	suite.mockUserRepo.On("CountUsers", ctx).Return(int64(0), nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Role == domain.RoleAdmin &&
			user.Status == domain.StatusActive &&
			user.AuthProvider == domain.ProviderLocal &&
			user.PasswordHash != "" &&
			user.PasswordHash != "password123"
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, registerReq())

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(domain.RoleAdmin, user.Role)
	suite.NotEmpty(user.UserID)
	suite.True(utils.CheckPasswordHash("password123", user.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_LaterUsersBecomeEmployees() {
	ctx := context.Background()

	suite.mockUserRepo.On("CountUsers", ctx).Return(int64(3), nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Role == domain.RoleEmployee
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, registerReq())

	suite.Require().NoError(err)
	suite.Equal(domain.RoleEmployee, user.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()

	suite.mockUserRepo.On("CountUsers", ctx).Return(int64(1), nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.Register(ctx, registerReq())

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- AuthenticateUser Tests ---

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	stored := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "test@example.com",
		PasswordHash: hash,
		Status:       domain.StatusActive,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "test@example.com").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "test@example.com", "password123")

	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	stored := &domain.User{
		UserID:       uuid.NewString(),
		PasswordHash: hash,
		Status:       domain.StatusActive,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "test@example.com").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "test@example.com", "wrong-password")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmail() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.AuthenticateUser(ctx, "nobody@example.com", "password123")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_InactiveAccount() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	stored := &domain.User{
		UserID:       uuid.NewString(),
		PasswordHash: hash,
		Status:       domain.StatusInactive,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "test@example.com").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "test@example.com", "password123")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- CreateManagedUser Tests ---

func (suite *UserServiceTestSuite) TestCreateManagedUser_Success() {
	ctx := context.Background()
	admin := portssvc.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	req := dto.CreateManagedUserRequest{
		Name:                "New Manager",
		Email:               "manager@example.com",
		Password:            "password123",
		Role:                domain.RoleManager,
		DefaultCurrencyCode: "EUR",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Role == domain.RoleManager &&
			user.Status == domain.StatusActive &&
			user.CreatedBy == admin.UserID
	})).Return(nil).Once()

	user, err := suite.service.CreateManagedUser(ctx, admin, req)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleManager, user.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateManagedUser_NonAdminForbidden() {
	ctx := context.Background()
	manager := portssvc.Actor{UserID: uuid.NewString(), Role: domain.RoleManager}

	user, err := suite.service.CreateManagedUser(ctx, manager, dto.CreateManagedUserRequest{Role: domain.RoleEmployee})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateManagedUser_AdminRoleRejected() {
	ctx := context.Background()
	admin := portssvc.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}

	user, err := suite.service.CreateManagedUser(ctx, admin, dto.CreateManagedUserRequest{Role: domain.RoleAdmin})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- SetRole Tests ---

func (suite *UserServiceTestSuite) TestSetRole_Success() {
	ctx := context.Background()
	admin := portssvc.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	targetID := uuid.NewString()
	target := &domain.User{UserID: targetID, Role: domain.RoleEmployee}

	suite.mockUserRepo.On("FindUserByID", ctx, targetID).Return(target, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.UserID == targetID && user.Role == domain.RoleManager && user.LastUpdatedBy == admin.UserID
	})).Return(nil).Once()

	updated, err := suite.service.SetRole(ctx, admin, targetID, domain.RoleManager)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleManager, updated.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestSetRole_TargetAdminForbidden() {
	ctx := context.Background()
	admin := portssvc.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	targetID := uuid.NewString()
	target := &domain.User{UserID: targetID, Role: domain.RoleAdmin}

	suite.mockUserRepo.On("FindUserByID", ctx, targetID).Return(target, nil).Once()

	updated, err := suite.service.SetRole(ctx, admin, targetID, domain.RoleManager)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestSetRole_SelfForbidden() {
	ctx := context.Background()
	admin := portssvc.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}

	updated, err := suite.service.SetRole(ctx, admin, admin.UserID, domain.RoleManager)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestSetRole_PromotionToAdminRejected() {
	ctx := context.Background()
	admin := portssvc.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}

	updated, err := suite.service.SetRole(ctx, admin, uuid.NewString(), domain.RoleAdmin)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestSetRole_NonAdminForbidden() {
	ctx := context.Background()
	manager := portssvc.Actor{UserID: uuid.NewString(), Role: domain.RoleManager}

	updated, err := suite.service.SetRole(ctx, manager, uuid.NewString(), domain.RoleManager)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- DeleteUser Tests ---

func (suite *UserServiceTestSuite) TestDeleteUser_Success() {
	ctx := context.Background()
	admin := portssvc.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	targetID := uuid.NewString()
	target := &domain.User{UserID: targetID, Role: domain.RoleEmployee}

	suite.mockUserRepo.On("FindUserByID", ctx, targetID).Return(target, nil).Once()
	suite.mockUserRepo.On("MarkUserDeleted", ctx, targetID, mock.AnythingOfType("time.Time"), admin.UserID).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, admin, targetID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_TargetAdminForbidden() {
	ctx := context.Background()
	admin := portssvc.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	targetID := uuid.NewString()
	target := &domain.User{UserID: targetID, Role: domain.RoleAdmin}

	suite.mockUserRepo.On("FindUserByID", ctx, targetID).Return(target, nil).Once()

	err := suite.service.DeleteUser(ctx, admin, targetID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkUserDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeleteUser_SelfForbidden() {
	ctx := context.Background()
	admin := portssvc.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}

	err := suite.service.DeleteUser(ctx, admin, admin.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestDeleteUser_NotFound() {
	ctx := context.Background()
	admin := portssvc.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	targetID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, targetID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteUser(ctx, admin, targetID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- FindOrCreateExternalUser Tests ---

func (suite *UserServiceTestSuite) TestFindOrCreateExternalUser_ExistingProviderIdentity() {
	ctx := context.Background()
	stored := &domain.User{
		UserID:         uuid.NewString(),
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: "google-sub-1",
		Status:         domain.StatusActive,
	}

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "google-sub-1").Return(stored, nil).Once()

	user, err := suite.service.FindOrCreateExternalUser(ctx, domain.ProviderGoogle, "google-sub-1", "g@example.com", "G User")

	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestFindOrCreateExternalUser_FirstSignInCreatesEmployee() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "google-sub-2").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Role == domain.RoleEmployee &&
			user.AuthProvider == domain.ProviderGoogle &&
			user.ProviderUserID == "google-sub-2" &&
			user.PasswordHash == ""
	})).Return(nil).Once()

	user, err := suite.service.FindOrCreateExternalUser(ctx, domain.ProviderGoogle, "google-sub-2", "new@example.com", "New User")

	suite.Require().NoError(err)
	suite.Equal(domain.RoleEmployee, user.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateExternalUser_LinksExistingEmail() {
	ctx := context.Background()
	existing := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "local@example.com",
		AuthProvider: domain.ProviderLocal,
		Status:       domain.StatusActive,
	}

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "google-sub-3").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "local@example.com").Return(existing, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.UserID == existing.UserID &&
			user.AuthProvider == domain.ProviderGoogle &&
			user.ProviderUserID == "google-sub-3"
	})).Return(nil).Once()

	user, err := suite.service.FindOrCreateExternalUser(ctx, domain.ProviderGoogle, "google-sub-3", "local@example.com", "Local User")

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- ListUsers Tests ---

func (suite *UserServiceTestSuite) TestListUsers_AdminOnly() {
	ctx := context.Background()
	employee := portssvc.Actor{UserID: uuid.NewString(), Role: domain.RoleEmployee}

	users, err := suite.service.ListUsers(ctx, employee, 20, 0)

	suite.Require().Error(err)
	suite.Nil(users)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUsers", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestListUsers_Success() {
	ctx := context.Background()
	admin := portssvc.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	expected := []domain.User{{UserID: uuid.NewString()}, {UserID: uuid.NewString()}}

	suite.mockUserRepo.On("FindUsers", ctx, 20, 0).Return(expected, nil).Once()

	users, err := suite.service.ListUsers(ctx, admin, 20, 0)

	suite.Require().NoError(err)
	suite.Len(users, 2)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
