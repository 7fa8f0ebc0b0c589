package services

import (
	"context"
	"time"

	"github.com/finreg/adjustments_app/internal/core/domain"
	"github.com/finreg/adjustments_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser creates a new user.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates an existing user's profile.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)

	// UpdateCapabilities changes a user's role, lifecycle capabilities, approval
	// limit, or active flag. Restricted to admins.
	UpdateCapabilities(ctx context.Context, userID string, req dto.UpdateCapabilitiesRequest, requestingUserID string) (*domain.User, error)

	// UpdateRefreshToken updates the refresh token details for a user.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken clears the refresh token for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser marks a user as deleted (soft delete).
	DeleteUser(ctx context.Context, userID string, requestingUserID string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with username and password.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// CapabilityChecker answers whether a user may perform a guarded lifecycle action.
type CapabilityChecker interface {
	// HasCapability reports whether the user holds the capability. Admins
	// always do.
	HasCapability(ctx context.Context, userID string, capability domain.Capability) (bool, error)
}

// SessionLogSvc defines operations for the session audit log.
type SessionLogSvc interface {
	// RecordLogin writes a session log entry for a successful login.
	RecordLogin(ctx context.Context, userID string, ipAddress string, userAgent string) (*domain.SessionLog, error)

	// RecordLogout closes a session log entry.
	RecordLogout(ctx context.Context, sessionID string) error

	// ListSessions returns a user's sessions, newest first.
	ListSessions(ctx context.Context, userID string, requestingUserID string, limit int) ([]domain.SessionLog, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
	CapabilityChecker
	SessionLogSvc
}
