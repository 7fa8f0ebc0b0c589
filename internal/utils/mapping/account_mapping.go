package mapping

import (
	"github.com/finreg/adjustments_app/internal/core/domain"
	"github.com/finreg/adjustments_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
		AccountType: models.AccountType(d.AccountType),
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		Code:        m.Code,
		Name:        m.Name,
		Description: m.Description,
		AccountType: domain.AccountType(m.AccountType),
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}

// ToModelAdjustmentType converts a domain AdjustmentType to its model
func ToModelAdjustmentType(d domain.AdjustmentType) models.AdjustmentType {
	return models.AdjustmentType{
		TypeID:      d.TypeID,
		Name:        string(d.Name),
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAdjustmentType converts a model AdjustmentType to its domain form
func ToDomainAdjustmentType(m models.AdjustmentType) domain.AdjustmentType {
	return domain.AdjustmentType{
		TypeID:      m.TypeID,
		Name:        domain.AdjustmentTypeName(m.Name),
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAdjustmentTypeSlice converts a slice of model types to domain types
func ToDomainAdjustmentTypeSlice(ms []models.AdjustmentType) []domain.AdjustmentType {
	ds := make([]domain.AdjustmentType, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAdjustmentType(m)
	}
	return ds
}
