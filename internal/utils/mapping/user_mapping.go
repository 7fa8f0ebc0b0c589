package mapping

import (
	"database/sql"

	"github.com/finreg/adjustments_app/internal/core/domain"
	"github.com/finreg/adjustments_app/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		Email:        d.Email,
		FullName:     d.FullName,
		PasswordHash: d.PasswordHash,
		Role:         string(d.Role),
		CanApprove:   d.CanApprove,
		CanProcess:   d.CanProcess,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
		DeletedAt:    d.DeletedAt,
	}
	if d.ApprovalLimit != nil {
		m.ApprovalLimit = decimal.NullDecimal{Decimal: *d.ApprovalLimit, Valid: true}
	}
	if d.RefreshTokenHash != "" {
		m.RefreshTokenHash = sql.NullString{String: d.RefreshTokenHash, Valid: true}
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	return m
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Email:        m.Email,
		FullName:     m.FullName,
		PasswordHash: m.PasswordHash,
		Role:         domain.UserRole(m.Role),
		CanApprove:   m.CanApprove,
		CanProcess:   m.CanProcess,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		DeletedAt:    m.DeletedAt,
	}
	if m.ApprovalLimit.Valid {
		limit := m.ApprovalLimit.Decimal
		d.ApprovalLimit = &limit
	}
	if m.RefreshTokenHash.Valid {
		d.RefreshTokenHash = m.RefreshTokenHash.String
	}
	if m.RefreshTokenExpiryTime.Valid {
		expiry := m.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiryTime = &expiry
	}
	return d
}

// ToDomainUserSlice converts a slice of model Users to domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}

// ToModelSessionLog converts a domain SessionLog to its model
func ToModelSessionLog(d domain.SessionLog) models.SessionLog {
	m := models.SessionLog{
		SessionID: d.SessionID,
		UserID:    d.UserID,
		IPAddress: d.IPAddress,
		UserAgent: d.UserAgent,
		LoginTime: d.LoginTime,
		IsActive:  d.IsActive,
	}
	if d.LogoutTime != nil {
		m.LogoutTime = sql.NullTime{Time: *d.LogoutTime, Valid: true}
	}
	return m
}

// ToDomainSessionLog converts a model SessionLog to its domain form
func ToDomainSessionLog(m models.SessionLog) domain.SessionLog {
	d := domain.SessionLog{
		SessionID: m.SessionID,
		UserID:    m.UserID,
		IPAddress: m.IPAddress,
		UserAgent: m.UserAgent,
		LoginTime: m.LoginTime,
		IsActive:  m.IsActive,
	}
	if m.LogoutTime.Valid {
		logout := m.LogoutTime.Time
		d.LogoutTime = &logout
	}
	return d
}

// ToDomainSessionLogSlice converts a slice of model session logs to domain form
func ToDomainSessionLogSlice(ms []models.SessionLog) []domain.SessionLog {
	ds := make([]domain.SessionLog, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSessionLog(m)
	}
	return ds
}
