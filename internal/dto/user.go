package dto

import (
	"time"

	"github.com/finreg/adjustments_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateUserRequest defines the data needed to register a user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest defines the fields of a user profile that may change.
type UpdateUserRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// UpdateCapabilitiesRequest grants or revokes lifecycle capabilities. Admin only.
type UpdateCapabilitiesRequest struct {
	Role          *domain.UserRole `json:"role" binding:"omitempty,oneof=ADMIN STAFF"`
	CanApprove    *bool            `json:"canApprove"`
	CanProcess    *bool            `json:"canProcess"`
	ApprovalLimit *decimal.Decimal `json:"approvalLimit"`
	IsActive      *bool            `json:"isActive"`
}

// LoginRequest defines the credentials for username/password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the issued tokens alongside the authenticated user.
type LoginResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

// RefreshTokenRequest presents a refresh token for rotation.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshTokenResponse returns a fresh token pair.
type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserResponse defines the user data returned by the API.
type UserResponse struct {
	UserID   string          `json:"userID"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	FullName string          `json:"fullName"`
	Role     domain.UserRole `json:"role"`

	CanApprove    bool             `json:"canApprove"`
	CanProcess    bool             `json:"canProcess"`
	ApprovalLimit *decimal.Decimal `json:"approvalLimit,omitempty"`

	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps a page of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// SessionLogResponse defines the data returned for one login session.
type SessionLogResponse struct {
	SessionID  string     `json:"sessionID"`
	UserID     string     `json:"userID"`
	IPAddress  string     `json:"ipAddress"`
	UserAgent  string     `json:"userAgent"`
	LoginTime  time.Time  `json:"loginTime"`
	LogoutTime *time.Time `json:"logoutTime,omitempty"`
	IsActive   bool       `json:"isActive"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		Role:          u.Role,
		CanApprove:    u.CanApprove,
		CanProcess:    u.CanProcess,
		ApprovalLimit: u.ApprovalLimit,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
	}
}

// ToListUsersResponse converts a page of domain users to a DTO response.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = ToUserResponse(&u)
	}
	return ListUsersResponse{
		Users: responses,
	}
}

// ToSessionLogResponse converts a domain.SessionLog to its DTO.
func ToSessionLogResponse(s *domain.SessionLog) SessionLogResponse {
	return SessionLogResponse{
		SessionID:  s.SessionID,
		UserID:     s.UserID,
		IPAddress:  s.IPAddress,
		UserAgent:  s.UserAgent,
		LoginTime:  s.LoginTime,
		LogoutTime: s.LogoutTime,
		IsActive:   s.IsActive,
	}
}

// ToSessionLogResponses converts a slice of session logs to DTOs.
func ToSessionLogResponses(sessions []domain.SessionLog) []SessionLogResponse {
	responses := make([]SessionLogResponse, len(sessions))
	for i, s := range sessions {
		responses[i] = ToSessionLogResponse(&s)
	}
	return responses
}
