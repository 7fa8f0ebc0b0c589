package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finreg/adjustments_app/internal/apperrors"
	"github.com/finreg/adjustments_app/internal/core/domain"
	portssvc "github.com/finreg/adjustments_app/internal/core/ports/services"
	"github.com/finreg/adjustments_app/internal/core/services"
	"github.com/finreg/adjustments_app/internal/dto"
	"github.com/finreg/adjustments_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository (based on UserService usage) ---
type MockUserRepository struct {
	mock.Mock
	FindUserByIDFn       func(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	FindUserByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	ListUsersFn          func(ctx context.Context, limit, offset int) ([]domain.User, error)
	SaveUserFn           func(ctx context.Context, user domain.User) error
	UpdateUserFn         func(ctx context.Context, user domain.User) error
	MarkUserDeletedFn    func(ctx context.Context, userID string, deletedBy string, now time.Time) error
	UpdateRefreshTokenFn func(ctx context.Context, userID string, refreshTokenHash string, expiryTime *time.Time) error
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

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindUserByUsernameFn != nil {
		return m.FindUserByUsernameFn(ctx, username)
	}
	args := m.Called(ctx, username)
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

func (m *MockUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if m.ListUsersFn != nil {
		return m.ListUsersFn(ctx, limit, offset)
	}
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	if m.SaveUserFn != nil {
		return m.SaveUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string, now time.Time) error {
	if m.MarkUserDeletedFn != nil {
		return m.MarkUserDeletedFn(ctx, userID, deletedBy, now)
	}
	args := m.Called(ctx, userID, deletedBy, now)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime *time.Time) error {
	if m.UpdateRefreshTokenFn != nil {
		return m.UpdateRefreshTokenFn(ctx, userID, refreshTokenHash, expiryTime)
	}
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) SaveSessionLog(ctx context.Context, session domain.SessionLog) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockUserRepository) CloseSessionLog(ctx context.Context, sessionID string, logoutTime time.Time) error {
	args := m.Called(ctx, sessionID, logoutTime)
	return args.Error(0)
}

func (m *MockUserRepository) ListSessionLogsByUser(ctx context.Context, userID string, limit int) ([]domain.SessionLog, error) {
	args := m.Called(ctx, userID, limit)
	var sessions []domain.SessionLog
	if args.Get(0) != nil {
		sessions = args.Get(0).([]domain.SessionLog)
	}
	return sessions, args.Error(1)
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

// --- CreateUser Tests ---
func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		FullName: "Jane Doe",
		Password: "password123",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == req.Username &&
			user.Email == req.Email &&
			user.Role == domain.RoleStaff &&
			!user.CanApprove && !user.CanProcess &&
			user.IsActive &&
			user.PasswordHash != "" && user.PasswordHash != req.Password
	})).Return(nil).Once()

	created, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.UserID)
	suite.Equal(req.Username, created.Username)
	suite.Equal(domain.RoleStaff, created.Role)
	suite.False(created.CanApprove)
	suite.False(created.CanProcess)
	suite.Nil(created.ApprovalLimit)
	suite.True(utils.CheckPasswordHash(req.Password, created.PasswordHash))

	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_SaveError() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		FullName: "Jane Doe",
		Password: "password123",
	}
	expectedErr := assert.AnError

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(expectedErr).Once()

	created, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, expectedErr)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- GetUserByID Tests ---
func (suite *UserServiceTestSuite) TestGetUserByID_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	expectedUser := &domain.User{UserID: userID, FullName: "Found User"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(expectedUser, nil).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(expectedUser, user)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- UpdateUser Tests ---
func (suite *UserServiceTestSuite) TestUpdateUser_Self() {
	ctx := context.Background()
	userID := uuid.NewString()
	newName := "Renamed User"
	existing := &domain.User{UserID: userID, FullName: "Old Name", Role: domain.RoleStaff}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(existing, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.UserID == userID && user.FullName == newName && user.LastUpdatedBy == userID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{FullName: &newName}, userID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.FullName)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_OtherUserForbiddenForStaff() {
	ctx := context.Background()
	targetID := uuid.NewString()
	requesterID := uuid.NewString()
	newName := "Renamed User"

	suite.mockUserRepo.On("FindUserByID", ctx, requesterID).
		Return(&domain.User{UserID: requesterID, Role: domain.RoleStaff}, nil).Once()

	updated, err := suite.service.UpdateUser(ctx, targetID, dto.UpdateUserRequest{FullName: &newName}, requesterID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_OtherUserAllowedForAdmin() {
	ctx := context.Background()
	targetID := uuid.NewString()
	adminID := uuid.NewString()
	newName := "Renamed User"

	suite.mockUserRepo.On("FindUserByID", ctx, adminID).
		Return(&domain.User{UserID: adminID, Role: domain.RoleAdmin}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, targetID).
		Return(&domain.User{UserID: targetID, Role: domain.RoleStaff}, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.UserID == targetID && user.FullName == newName && user.LastUpdatedBy == adminID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(ctx, targetID, dto.UpdateUserRequest{FullName: &newName}, adminID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.FullName)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- UpdateCapabilities Tests ---
func (suite *UserServiceTestSuite) TestUpdateCapabilities_AdminGrantsApprove() {
	ctx := context.Background()
	targetID := uuid.NewString()
	adminID := uuid.NewString()
	canApprove := true

	suite.mockUserRepo.On("FindUserByID", ctx, adminID).
		Return(&domain.User{UserID: adminID, Role: domain.RoleAdmin}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, targetID).
		Return(&domain.User{UserID: targetID, Role: domain.RoleStaff}, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.UserID == targetID && user.CanApprove && !user.CanProcess
	})).Return(nil).Once()

	updated, err := suite.service.UpdateCapabilities(ctx, targetID, dto.UpdateCapabilitiesRequest{CanApprove: &canApprove}, adminID)

	suite.Require().NoError(err)
	suite.True(updated.CanApprove)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateCapabilities_NonAdminForbidden() {
	ctx := context.Background()
	targetID := uuid.NewString()
	requesterID := uuid.NewString()
	canApprove := true

	suite.mockUserRepo.On("FindUserByID", ctx, requesterID).
		Return(&domain.User{UserID: requesterID, Role: domain.RoleStaff, CanApprove: true}, nil).Once()

	updated, err := suite.service.UpdateCapabilities(ctx, targetID, dto.UpdateCapabilitiesRequest{CanApprove: &canApprove}, requesterID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- AuthenticateUser Tests ---
func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	password := "password123"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "jdoe", PasswordHash: hash, IsActive: true}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "jdoe").Return(user, nil).Once()

	authenticated, err := suite.service.AuthenticateUser(ctx, "jdoe", password)

	suite.Require().NoError(err)
	suite.Equal(user.UserID, authenticated.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-password")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "jdoe", PasswordHash: hash, IsActive: true}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "jdoe").Return(user, nil).Once()

	authenticated, err := suite.service.AuthenticateUser(ctx, "jdoe", "wrong-password")

	suite.Require().Error(err)
	suite.Nil(authenticated)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUsernameIndistinguishable() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "nobody").Return(nil, apperrors.ErrNotFound).Once()

	authenticated, err := suite.service.AuthenticateUser(ctx, "nobody", "whatever")

	suite.Require().Error(err)
	suite.Nil(authenticated)
	// Unknown usernames fail exactly like a wrong password.
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_InactiveUser() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "jdoe", PasswordHash: hash, IsActive: false}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "jdoe").Return(user, nil).Once()

	authenticated, err := suite.service.AuthenticateUser(ctx, "jdoe", "password123")

	suite.Require().Error(err)
	suite.Nil(authenticated)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- HasCapability Tests ---
func (suite *UserServiceTestSuite) TestHasCapability_AdminAlwaysAllowed() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).
		Return(&domain.User{UserID: userID, Role: domain.RoleAdmin, IsActive: true}, nil).Once()

	allowed, err := suite.service.HasCapability(ctx, userID, domain.CapabilityProcess)

	suite.Require().NoError(err)
	suite.True(allowed)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestHasCapability_InactiveUserDenied() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).
		Return(&domain.User{UserID: userID, Role: domain.RoleStaff, CanApprove: true, IsActive: false}, nil).Once()

	allowed, err := suite.service.HasCapability(ctx, userID, domain.CapabilityApprove)

	suite.Require().NoError(err)
	suite.False(allowed)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- DeleteUser Tests ---
func (suite *UserServiceTestSuite) TestDeleteUser_AdminOnly() {
	ctx := context.Background()
	targetID := uuid.NewString()
	requesterID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, requesterID).
		Return(&domain.User{UserID: requesterID, Role: domain.RoleStaff}, nil).Once()

	err := suite.service.DeleteUser(ctx, targetID, requesterID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkUserDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeleteUser_Success() {
	ctx := context.Background()
	targetID := uuid.NewString()
	adminID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, adminID).
		Return(&domain.User{UserID: adminID, Role: domain.RoleAdmin}, nil).Once()
	suite.mockUserRepo.On("MarkUserDeleted", ctx, targetID, adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, targetID, adminID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Session Log Tests ---
func (suite *UserServiceTestSuite) TestRecordLogin_Success() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("SaveSessionLog", ctx, mock.MatchedBy(func(session domain.SessionLog) bool {
		return session.UserID == userID && session.IPAddress == "203.0.113.7" && session.IsActive
	})).Return(nil).Once()

	session, err := suite.service.RecordLogin(ctx, userID, "203.0.113.7", "curl/8.0")

	suite.Require().NoError(err)
	suite.NotEmpty(session.SessionID)
	suite.True(session.IsActive)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestListSessions_OtherUserForbiddenForStaff() {
	ctx := context.Background()
	targetID := uuid.NewString()
	requesterID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, requesterID).
		Return(&domain.User{UserID: requesterID, Role: domain.RoleStaff}, nil).Once()

	sessions, err := suite.service.ListSessions(ctx, targetID, requesterID, 10)

	suite.Require().Error(err)
	suite.Nil(sessions)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestListSessions_Own() {
	ctx := context.Background()
	userID := uuid.NewString()
	expected := []domain.SessionLog{{SessionID: uuid.NewString(), UserID: userID}}

	suite.mockUserRepo.On("ListSessionLogsByUser", ctx, userID, 10).Return(expected, nil).Once()

	sessions, err := suite.service.ListSessions(ctx, userID, userID, 10)

	suite.Require().NoError(err)
	suite.Len(sessions, 1)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Refresh Token Tests ---
func (suite *UserServiceTestSuite) TestClearRefreshToken_PassesEmptyHash() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("UpdateRefreshToken", ctx, userID, "", (*time.Time)(nil)).Return(nil).Once()

	err := suite.service.ClearRefreshToken(ctx, userID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
