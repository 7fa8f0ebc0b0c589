package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finreg/adjustments_app/internal/apperrors"
	"github.com/finreg/adjustments_app/internal/core/domain"
	portsrepo "github.com/finreg/adjustments_app/internal/core/ports/repositories"
	portssvc "github.com/finreg/adjustments_app/internal/core/ports/services"
	"github.com/finreg/adjustments_app/internal/dto"
	"github.com/finreg/adjustments_app/internal/utils"
)

// userService implements identity, capabilities, and the session audit log.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser creates a new user. New users start as STAFF with no lifecycle
// capabilities; an admin grants those afterwards.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	logger := s.GetLogger(ctx)

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: passwordHash,
		Role:         domain.RoleStaff,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "system",
			LastUpdatedAt: now,
			LastUpdatedBy: "system",
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()), slog.String("username", req.Username))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User created", slog.String("user_id", user.UserID), slog.String("username", user.Username))
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email address.
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// ListUsers retrieves a paginated list of users.
func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.userRepo.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser updates a user's own profile fields. Users may only edit
// themselves; admins may edit anyone.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	logger := s.GetLogger(ctx)

	if userID != requestingUserID {
		requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch requesting user: %w", err)
		}
		if requester.Role != domain.RoleAdmin {
			return nil, fmt.Errorf("%w: cannot modify another user's profile", apperrors.ErrForbidden)
		}
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	updated := false
	if req.FullName != nil {
		user.FullName = *req.FullName
		updated = true
	}
	if req.Email != nil {
		user.Email = *req.Email
		updated = true
	}
	if req.Password != nil {
		passwordHash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = passwordHash
		updated = true
	}

	if !updated {
		return user, nil
	}

	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	logger.Info("User updated", slog.String("user_id", userID))
	return user, nil
}

// UpdateCapabilities changes a user's role, lifecycle capabilities, approval
// limit, or active flag. Restricted to admins.
func (s *userService) UpdateCapabilities(ctx context.Context, userID string, req dto.UpdateCapabilitiesRequest, requestingUserID string) (*domain.User, error) {
	logger := s.GetLogger(ctx)

	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch requesting user: %w", err)
	}
	if requester.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: capability changes require an admin", apperrors.ErrForbidden)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.CanApprove != nil {
		user.CanApprove = *req.CanApprove
	}
	if req.CanProcess != nil {
		user.CanProcess = *req.CanProcess
	}
	if req.ApprovalLimit != nil {
		limit := *req.ApprovalLimit
		user.ApprovalLimit = &limit
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user capabilities", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user capabilities: %w", err)
	}

	logger.Info("User capabilities updated",
		slog.String("user_id", userID),
		slog.Bool("can_approve", user.CanApprove),
		slog.Bool("can_process", user.CanProcess))
	return user, nil
}

// UpdateRefreshToken updates the refresh token details for a user.
func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, &refreshTokenExpiryTime); err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	return nil
}

// ClearRefreshToken clears the refresh token for a user.
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, "", nil); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// DeleteUser marks a user as deleted (soft delete). Admin only.
func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	logger := s.GetLogger(ctx)

	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return fmt.Errorf("failed to fetch requesting user: %w", err)
	}
	if requester.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: user deletion requires an admin", apperrors.ErrForbidden)
	}

	if err := s.userRepo.MarkUserDeleted(ctx, userID, requestingUserID, time.Now().UTC()); err != nil {
		logger.Error("Failed to delete user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}

	logger.Info("User deleted", slog.String("user_id", userID))
	return nil
}

// AuthenticateUser authenticates a user with username and password.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	logger := s.GetLogger(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same failure as a wrong password so usernames cannot be probed.
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user for authentication: %w", err)
	}

	if !user.IsActive || user.DeletedAt != nil {
		logger.Warn("Login attempt for inactive or deleted user", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Password mismatch on login", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

// HasCapability reports whether the user holds the capability. Admins always do.
func (s *userService) HasCapability(ctx context.Context, userID string, capability domain.Capability) (bool, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	if !user.IsActive || user.DeletedAt != nil {
		return false, nil
	}
	return user.HasCapability(capability), nil
}

// RecordLogin writes a session log entry for a successful login.
func (s *userService) RecordLogin(ctx context.Context, userID string, ipAddress string, userAgent string) (*domain.SessionLog, error) {
	logger := s.GetLogger(ctx)

	session := domain.SessionLog{
		SessionID: uuid.NewString(),
		UserID:    userID,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		LoginTime: time.Now().UTC(),
		IsActive:  true,
	}

	if err := s.userRepo.SaveSessionLog(ctx, session); err != nil {
		logger.Error("Failed to record login session", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to record login session: %w", err)
	}

	return &session, nil
}

// RecordLogout closes a session log entry.
func (s *userService) RecordLogout(ctx context.Context, sessionID string) error {
	if err := s.userRepo.CloseSessionLog(ctx, sessionID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to close session %s: %w", sessionID, err)
	}
	return nil
}

// ListSessions returns a user's sessions, newest first. Users see their own;
// admins see anyone's.
func (s *userService) ListSessions(ctx context.Context, userID string, requestingUserID string, limit int) ([]domain.SessionLog, error) {
	if userID != requestingUserID {
		requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch requesting user: %w", err)
		}
		if requester.Role != domain.RoleAdmin {
			return nil, fmt.Errorf("%w: cannot list another user's sessions", apperrors.ErrForbidden)
		}
	}

	if limit <= 0 {
		limit = 20
	}

	sessions, err := s.userRepo.ListSessionLogsByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for user %s: %w", userID, err)
	}
	return sessions, nil
}
