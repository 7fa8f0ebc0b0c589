package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// User is the DB representation of a staff user.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	Email        string `db:"email"`
	FullName     string `db:"full_name"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`

	CanApprove    bool                `db:"can_approve"`
	CanProcess    bool                `db:"can_process"`
	ApprovalLimit decimal.NullDecimal `db:"approval_limit"`

	IsActive bool `db:"is_active"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`

	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// SessionLog is the DB representation of one authenticated session.
type SessionLog struct {
	SessionID  string       `db:"session_id"`
	UserID     string       `db:"user_id"`
	IPAddress  string       `db:"ip_address"`
	UserAgent  string       `db:"user_agent"`
	LoginTime  time.Time    `db:"login_time"`
	LogoutTime sql.NullTime `db:"logout_time"`
	IsActive   bool         `db:"is_active"`
}
