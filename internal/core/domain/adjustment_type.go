package domain

// AdjustmentTypeName enumerates the adjustment categories.
type AdjustmentTypeName string

const (
	TypeDebit      AdjustmentTypeName = "DEBIT"
	TypeCredit     AdjustmentTypeName = "CREDIT"
	TypeTransfer   AdjustmentTypeName = "TRANSFER"
	TypeReversal   AdjustmentTypeName = "REVERSAL"
	TypeCorrection AdjustmentTypeName = "CORRECTION"
)

// AdjustmentType is reference data: a category an adjustment is filed under.
type AdjustmentType struct {
	TypeID      string             `json:"typeID"` // Primary Key (UUID)
	Name        AdjustmentTypeName `json:"name"`   // Unique
	Description string             `json:"description"`
	IsActive    bool               `json:"isActive"`
	AuditFields
}

// ValidTypeName reports whether name is one of the known adjustment categories.
func ValidTypeName(name AdjustmentTypeName) bool {
	switch name {
	case TypeDebit, TypeCredit, TypeTransfer, TypeReversal, TypeCorrection:
		return true
	}
	return false
}
