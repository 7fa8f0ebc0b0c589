package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/finreg/adjustments_app/internal/apperrors"
	"github.com/finreg/adjustments_app/internal/core/domain"
	portsrepo "github.com/finreg/adjustments_app/internal/core/ports/repositories"
	portssvc "github.com/finreg/adjustments_app/internal/core/ports/services"
	"github.com/finreg/adjustments_app/internal/dto"
)

// exportPageSize is the repository page size used while draining a filtered
// listing into an export file.
const exportPageSize = 500

var exportHeader = []string{
	"Sequence Number", "Adjustment Date", "Value Date", "Type",
	"Debit Account", "Credit Account", "Amount", "Currency",
	"Concept", "Status", "Priority", "Created By",
}

// exportService renders filtered adjustment listings as CSV or XLSX files.
type exportService struct {
	BaseService
	adjustmentRepo portsrepo.AdjustmentReader
	accountRepo    portsrepo.AccountReader
	typeRepo       portsrepo.AdjustmentTypeReader
	userSvc        portssvc.UserSvcFacade
}

// NewExportService creates a new ExportService.
func NewExportService(
	adjustmentRepo portsrepo.AdjustmentReader,
	accountRepo portsrepo.AccountReader,
	typeRepo portsrepo.AdjustmentTypeReader,
	userSvc portssvc.UserSvcFacade,
) portssvc.ExportService {
	return &exportService{
		adjustmentRepo: adjustmentRepo,
		accountRepo:    accountRepo,
		typeRepo:       typeRepo,
		userSvc:        userSvc,
	}
}

var _ portssvc.ExportService = (*exportService)(nil)

// ExportAdjustments encodes the adjustments matching the filter in the
// requested format.
func (s *exportService) ExportAdjustments(ctx context.Context, requestingUserID string, params dto.ExportParams) (*dto.ExportResult, error) {
	logger := s.GetLogger(ctx)

	if params.DateFrom != nil && params.DateTo != nil && params.DateFrom.After(*params.DateTo) {
		return nil, fmt.Errorf("%w: date range start is after its end", apperrors.ErrValidation)
	}

	format := params.Format
	if format == "" {
		format = dto.ExportCSV
	}
	if format != dto.ExportCSV && format != dto.ExportXLSX {
		return nil, fmt.Errorf("%w: unsupported export format %s", apperrors.ErrValidation, format)
	}

	user, err := s.userSvc.GetUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch requesting user: %w", err)
	}

	filter := portsrepo.ListAdjustmentsFilter{
		Statuses:        params.Statuses,
		Priority:        params.Priority,
		TypeIDs:         params.TypeIDs,
		DebitAccountID:  params.DebitAccountID,
		CreditAccountID: params.CreditAccountID,
		CurrencyCode:    params.CurrencyCode,
		DateFrom:        params.DateFrom,
		DateTo:          params.DateTo,
		AmountMin:       params.AmountMin,
		AmountMax:       params.AmountMax,
		Search:          params.Search,
	}
	if params.Mine {
		filter.CreatedByUserID = &requestingUserID
	}
	if user.Role != domain.RoleAdmin && !user.CanApprove && !user.CanProcess {
		filter.InvolvedUserID = &requestingUserID
	}

	adjustments, err := s.drainListing(ctx, filter)
	if err != nil {
		logger.Error("Failed to collect adjustments for export", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to collect adjustments for export: %w", err)
	}

	rows, err := s.buildRows(ctx, adjustments)
	if err != nil {
		return nil, err
	}

	stamp := time.Now().UTC().Format("20060102_150405")
	var result *dto.ExportResult
	switch format {
	case dto.ExportCSV:
		data, err := encodeCSV(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to encode CSV export: %w", err)
		}
		result = &dto.ExportResult{
			FileName:    fmt.Sprintf("adjustments_%s.csv", stamp),
			ContentType: "text/csv",
			Data:        data,
		}
	case dto.ExportXLSX:
		data, err := encodeXLSX(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to encode XLSX export: %w", err)
		}
		result = &dto.ExportResult{
			FileName:    fmt.Sprintf("adjustments_%s.xlsx", stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}
	}

	logger.Info("Adjustments exported",
		slog.String("format", string(format)),
		slog.Int("row_count", len(rows)-1))
	return result, nil
}

// drainListing pages through the repository until the filtered listing is
// exhausted.
func (s *exportService) drainListing(ctx context.Context, filter portsrepo.ListAdjustmentsFilter) ([]domain.Adjustment, error) {
	var all []domain.Adjustment
	var nextToken *string
	for {
		page, token, err := s.adjustmentRepo.ListAdjustments(ctx, filter, exportPageSize, nextToken)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if token == nil {
			return all, nil
		}
		nextToken = token
	}
}

// buildRows resolves reference data and flattens adjustments into string rows,
// header first.
func (s *exportService) buildRows(ctx context.Context, adjustments []domain.Adjustment) ([][]string, error) {
	accountIDs := make([]string, 0, len(adjustments)*2)
	seenAccounts := make(map[string]struct{})
	typeNames := make(map[string]string)
	creatorNames := make(map[string]string)

	for _, a := range adjustments {
		for _, id := range []string{a.DebitAccountID, a.CreditAccountID} {
			if _, ok := seenAccounts[id]; !ok {
				seenAccounts[id] = struct{}{}
				accountIDs = append(accountIDs, id)
			}
		}
	}

	accountsMap := map[string]domain.Account{}
	if len(accountIDs) > 0 {
		var err error
		accountsMap, err = s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch accounts for export: %w", err)
		}
	}

	rows := make([][]string, 0, len(adjustments)+1)
	rows = append(rows, exportHeader)

	for _, a := range adjustments {
		typeName, ok := typeNames[a.TypeID]
		if !ok {
			adjType, err := s.typeRepo.FindTypeByID(ctx, a.TypeID)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch adjustment type for export: %w", err)
			}
			typeName = string(adjType.Name)
			typeNames[a.TypeID] = typeName
		}

		creatorName, ok := creatorNames[a.CreatedByUserID]
		if !ok {
			creator, err := s.userSvc.GetUserByID(ctx, a.CreatedByUserID)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch creator for export: %w", err)
			}
			creatorName = creator.FullName
			creatorNames[a.CreatedByUserID] = creatorName
		}

		rows = append(rows, []string{
			a.SequenceNumber,
			a.AdjustmentDate.Format("2006-01-02"),
			a.ValueDate.Format("2006-01-02"),
			typeName,
			formatAccount(accountsMap, a.DebitAccountID),
			formatAccount(accountsMap, a.CreditAccountID),
			a.Amount.String(),
			a.CurrencyCode,
			a.Concept,
			string(a.Status),
			string(a.Priority),
			creatorName,
		})
	}
	return rows, nil
}

// formatAccount renders an account as "CODE - name", falling back to the raw
// ID if the account is missing from the map.
func formatAccount(accounts map[string]domain.Account, accountID string) string {
	account, found := accounts[accountID]
	if !found {
		return accountID
	}
	return fmt.Sprintf("%s - %s", account.Code, account.Name)
}

func encodeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeXLSX(rows [][]string) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Adjustments"
	file.SetSheetName(file.GetSheetName(0), sheet)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
