package dto

// ExportFormat names a supported export encoding.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ExportParams defines query parameters for exporting adjustments. It reuses
// the listing filter so an export always matches the filtered view on screen.
type ExportParams struct {
	Format ExportFormat `form:"format,default=csv" binding:"omitempty,oneof=csv xlsx"`
	ListAdjustmentsParams
}

// ExportResult carries an encoded export ready to stream to the client.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}
