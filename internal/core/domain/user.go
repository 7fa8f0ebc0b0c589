package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserRole defines the coarse role of a user.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleStaff UserRole = "STAFF"
)

// User represents an authenticated staff member.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	FullName     string   `json:"fullName"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`

	// Capability flags for the adjustment lifecycle.
	CanApprove    bool             `json:"canApprove"`
	CanProcess    bool             `json:"canProcess"`
	ApprovalLimit *decimal.Decimal `json:"approvalLimit,omitempty"` // Max magnitude this user may approve, nil = unlimited

	IsActive bool `json:"isActive"`

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete
}

// HasCapability reports whether the user holds the named capability.
// Admins hold every capability.
func (u *User) HasCapability(cap Capability) bool {
	if u.Role == RoleAdmin {
		return true
	}
	switch cap {
	case CapabilityApprove:
		return u.CanApprove
	case CapabilityProcess:
		return u.CanProcess
	}
	return false
}

// SessionLog records one authenticated session of a user.
type SessionLog struct {
	SessionID  string     `json:"sessionID"` // Primary Key (UUID)
	UserID     string     `json:"userID"`
	IPAddress  string     `json:"ipAddress"`
	UserAgent  string     `json:"userAgent"`
	LoginTime  time.Time  `json:"loginTime"`
	LogoutTime *time.Time `json:"logoutTime,omitempty"`
	IsActive   bool       `json:"isActive"`
}
