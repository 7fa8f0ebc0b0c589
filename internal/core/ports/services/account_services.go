package services

import (
	"context"

	"github.com/finreg/adjustments_app/internal/core/domain"
	"github.com/finreg/adjustments_app/internal/dto"
)

// AccountReaderSvc defines read operations for account reference data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves accounts, optionally filtered by type and active flag.
	ListAccounts(ctx context.Context, accountType *domain.AccountType, activeOnly bool, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account reference data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)

	// DeactivateAccount retires an account from use by new adjustments.
	DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

// AdjustmentTypeReaderSvc defines read operations for adjustment type reference data
type AdjustmentTypeReaderSvc interface {
	// GetTypeByID retrieves a specific adjustment type by its ID.
	GetTypeByID(ctx context.Context, typeID string) (*domain.AdjustmentType, error)

	// ListTypes retrieves adjustment types, optionally only active ones.
	ListTypes(ctx context.Context, activeOnly bool) ([]domain.AdjustmentType, error)
}

// AdjustmentTypeWriterSvc defines write operations for adjustment type reference data
type AdjustmentTypeWriterSvc interface {
	// CreateType persists a new adjustment type.
	CreateType(ctx context.Context, req dto.CreateAdjustmentTypeRequest, creatorUserID string) (*domain.AdjustmentType, error)

	// UpdateType updates an existing adjustment type's details.
	UpdateType(ctx context.Context, typeID string, req dto.UpdateAdjustmentTypeRequest, requestingUserID string) (*domain.AdjustmentType, error)

	// DeactivateType retires an adjustment type from use by new adjustments.
	DeactivateType(ctx context.Context, typeID string, requestingUserID string) error
}

// AdjustmentTypeSvcFacade combines all adjustment-type service interfaces
type AdjustmentTypeSvcFacade interface {
	AdjustmentTypeReaderSvc
	AdjustmentTypeWriterSvc
}
