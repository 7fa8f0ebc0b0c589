package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

// Account is the DB representation of a ledger account (reference data).
type Account struct {
	AccountID   string      `db:"account_id"`
	Code        string      `db:"code"` // Unique
	Name        string      `db:"name"`
	Description string      `db:"description"`
	AccountType AccountType `db:"account_type"`
	IsActive    bool        `db:"is_active"`
	AuditFields
}

// AdjustmentType is the DB representation of an adjustment category (reference data).
type AdjustmentType struct {
	TypeID      string `db:"type_id"`
	Name        string `db:"name"` // Unique
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
