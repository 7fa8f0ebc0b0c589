package repositories

import (
	"context"
	"time"

	"github.com/finreg/adjustments_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their unique username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error

	// MarkUserDeleted soft-deletes a user.
	MarkUserDeleted(ctx context.Context, userID string, deletedBy string, now time.Time) error

	// UpdateRefreshToken stores the hash and expiry of a user's refresh token.
	// Empty hash and nil expiry clear it.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime *time.Time) error
}

// SessionLogRepository defines operations for the session audit log.
type SessionLogRepository interface {
	// SaveSessionLog records a new login session.
	SaveSessionLog(ctx context.Context, session domain.SessionLog) error

	// CloseSessionLog stamps a session's logout time and deactivates it.
	CloseSessionLog(ctx context.Context, sessionID string, logoutTime time.Time) error

	// ListSessionLogsByUser returns a user's sessions, newest first.
	ListSessionLogsByUser(ctx context.Context, userID string, limit int) ([]domain.SessionLog, error)
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	SessionLogRepository
}
