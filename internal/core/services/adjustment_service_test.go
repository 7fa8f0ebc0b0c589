package services_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/finreg/adjustments_app/internal/apperrors"
	"github.com/finreg/adjustments_app/internal/core/domain"
	portsrepo "github.com/finreg/adjustments_app/internal/core/ports/repositories"
	portssvc "github.com/finreg/adjustments_app/internal/core/ports/services"
	"github.com/finreg/adjustments_app/internal/core/services"
	"github.com/finreg/adjustments_app/internal/dto"
	"github.com/finreg/adjustments_app/internal/platform/config"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AdjustmentRepository (based on AdjustmentService usage) ---
type MockAdjustmentRepository struct {
	mock.Mock
	SaveAdjustmentFn     func(ctx context.Context, adjustment domain.Adjustment) (*domain.Adjustment, error)
	SaveTransitionFn     func(ctx context.Context, adjustment domain.Adjustment, entry domain.HistoryEntry) error
	FindAdjustmentByIDFn func(ctx context.Context, adjustmentID string) (*domain.Adjustment, error)
}

func (m *MockAdjustmentRepository) FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.Adjustment, error) {
	if m.FindAdjustmentByIDFn != nil {
		return m.FindAdjustmentByIDFn(ctx, adjustmentID)
	}
	args := m.Called(ctx, adjustmentID)
	var adjustment *domain.Adjustment
	if args.Get(0) != nil {
		adjustment = args.Get(0).(*domain.Adjustment)
	}
	return adjustment, args.Error(1)
}

func (m *MockAdjustmentRepository) FindAdjustmentsByIDs(ctx context.Context, adjustmentIDs []string) (map[string]domain.Adjustment, error) {
	args := m.Called(ctx, adjustmentIDs)
	var adjustments map[string]domain.Adjustment
	if args.Get(0) != nil {
		adjustments = args.Get(0).(map[string]domain.Adjustment)
	}
	return adjustments, args.Error(1)
}

func (m *MockAdjustmentRepository) ListAdjustments(ctx context.Context, filter portsrepo.ListAdjustmentsFilter, limit int, nextToken *string) ([]domain.Adjustment, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var adjustments []domain.Adjustment
	if args.Get(0) != nil {
		adjustments = args.Get(0).([]domain.Adjustment)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return adjustments, token, args.Error(2)
}

func (m *MockAdjustmentRepository) SaveAdjustment(ctx context.Context, adjustment domain.Adjustment) (*domain.Adjustment, error) {
	if m.SaveAdjustmentFn != nil {
		return m.SaveAdjustmentFn(ctx, adjustment)
	}
	args := m.Called(ctx, adjustment)
	var saved *domain.Adjustment
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.Adjustment)
	}
	return saved, args.Error(1)
}

func (m *MockAdjustmentRepository) UpdateAdjustment(ctx context.Context, adjustment domain.Adjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

func (m *MockAdjustmentRepository) SaveTransition(ctx context.Context, adjustment domain.Adjustment, entry domain.HistoryEntry) error {
	if m.SaveTransitionFn != nil {
		return m.SaveTransitionFn(ctx, adjustment, entry)
	}
	args := m.Called(ctx, adjustment, entry)
	return args.Error(0)
}

func (m *MockAdjustmentRepository) DeleteAdjustments(ctx context.Context, adjustmentIDs []string) error {
	args := m.Called(ctx, adjustmentIDs)
	return args.Error(0)
}

func (m *MockAdjustmentRepository) FindHistoryByAdjustmentID(ctx context.Context, adjustmentID string) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx, adjustmentID)
	var entries []domain.HistoryEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.HistoryEntry)
	}
	return entries, args.Error(1)
}

// Transaction plumbing is exercised against a real database, not here.
func (m *MockAdjustmentRepository) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockAdjustmentRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return nil
}
func (m *MockAdjustmentRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return nil
}

// --- Mock AttachmentRepository ---
type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) FindAttachmentByID(ctx context.Context, attachmentID string) (*domain.Attachment, error) {
	args := m.Called(ctx, attachmentID)
	var attachment *domain.Attachment
	if args.Get(0) != nil {
		attachment = args.Get(0).(*domain.Attachment)
	}
	return attachment, args.Error(1)
}

func (m *MockAttachmentRepository) FindAttachmentsByAdjustmentID(ctx context.Context, adjustmentID string) ([]domain.Attachment, error) {
	args := m.Called(ctx, adjustmentID)
	var attachments []domain.Attachment
	if args.Get(0) != nil {
		attachments = args.Get(0).([]domain.Attachment)
	}
	return attachments, args.Error(1)
}

func (m *MockAttachmentRepository) SaveAttachment(ctx context.Context, attachment domain.Attachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *MockAttachmentRepository) FindCommentsByAdjustmentID(ctx context.Context, adjustmentID string, includeInternal bool) ([]domain.Comment, error) {
	args := m.Called(ctx, adjustmentID, includeInternal)
	var comments []domain.Comment
	if args.Get(0) != nil {
		comments = args.Get(0).([]domain.Comment)
	}
	return comments, args.Error(1)
}

func (m *MockAttachmentRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

// --- Mock reference data readers ---
type MockAccountReader struct {
	mock.Mock
}

func (m *MockAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountReader) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountReader) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	var accounts map[string]domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).(map[string]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountReader) ListAccounts(ctx context.Context, accountType *domain.AccountType, activeOnly bool, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, accountType, activeOnly, limit, offset)
	var accounts []domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.Account)
	}
	return accounts, args.Error(1)
}

type MockTypeReader struct {
	mock.Mock
}

func (m *MockTypeReader) FindTypeByID(ctx context.Context, typeID string) (*domain.AdjustmentType, error) {
	args := m.Called(ctx, typeID)
	var adjType *domain.AdjustmentType
	if args.Get(0) != nil {
		adjType = args.Get(0).(*domain.AdjustmentType)
	}
	return adjType, args.Error(1)
}

func (m *MockTypeReader) FindTypeByName(ctx context.Context, name domain.AdjustmentTypeName) (*domain.AdjustmentType, error) {
	args := m.Called(ctx, name)
	var adjType *domain.AdjustmentType
	if args.Get(0) != nil {
		adjType = args.Get(0).(*domain.AdjustmentType)
	}
	return adjType, args.Error(1)
}

func (m *MockTypeReader) ListTypes(ctx context.Context, activeOnly bool) ([]domain.AdjustmentType, error) {
	args := m.Called(ctx, activeOnly)
	var types []domain.AdjustmentType
	if args.Get(0) != nil {
		types = args.Get(0).([]domain.AdjustmentType)
	}
	return types, args.Error(1)
}

type MockCurrencyReader struct {
	mock.Mock
}

func (m *MockCurrencyReader) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	var currency *domain.Currency
	if args.Get(0) != nil {
		currency = args.Get(0).(*domain.Currency)
	}
	return currency, args.Error(1)
}

func (m *MockCurrencyReader) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	var currencies []domain.Currency
	if args.Get(0) != nil {
		currencies = args.Get(0).([]domain.Currency)
	}
	return currencies, args.Error(1)
}

// --- Test Suite ---
type AdjustmentServiceTestSuite struct {
	suite.Suite
	cfg                *config.Config
	mockAdjustmentRepo *MockAdjustmentRepository
	mockAttachmentRepo *MockAttachmentRepository
	mockAccountReader  *MockAccountReader
	mockTypeReader     *MockTypeReader
	mockCurrencyReader *MockCurrencyReader
	mockUserRepo       *MockUserRepository
	service            portssvc.AdjustmentSvcFacade

	typeID          string
	debitAccountID  string
	creditAccountID string
	creatorID       string
}

func (suite *AdjustmentServiceTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		DefaultCurrencyCode:    "COP",
		AttachmentDir:          suite.T().TempDir(),
		MaxAttachmentSizeBytes: 1024,
	}
	suite.mockAdjustmentRepo = new(MockAdjustmentRepository)
	suite.mockAttachmentRepo = new(MockAttachmentRepository)
	suite.mockAccountReader = new(MockAccountReader)
	suite.mockTypeReader = new(MockTypeReader)
	suite.mockCurrencyReader = new(MockCurrencyReader)
	suite.mockUserRepo = new(MockUserRepository)

	userSvc := services.NewUserService(suite.mockUserRepo)
	suite.service = services.NewAdjustmentService(
		suite.cfg,
		suite.mockAdjustmentRepo,
		suite.mockAttachmentRepo,
		suite.mockAccountReader,
		suite.mockTypeReader,
		suite.mockCurrencyReader,
		userSvc,
	)

	suite.typeID = uuid.NewString()
	suite.debitAccountID = uuid.NewString()
	suite.creditAccountID = uuid.NewString()
	suite.creatorID = uuid.NewString()
}

// expectValidReferences wires the reference lookups for a well-formed request.
func (suite *AdjustmentServiceTestSuite) expectValidReferences(ctx context.Context, currencyCode string) {
	suite.mockTypeReader.On("FindTypeByID", ctx, suite.typeID).
		Return(&domain.AdjustmentType{TypeID: suite.typeID, Name: domain.TypeCorrection, IsActive: true}, nil).Once()
	suite.mockAccountReader.On("FindAccountsByIDs", ctx, []string{suite.debitAccountID, suite.creditAccountID}).
		Return(map[string]domain.Account{
			suite.debitAccountID:  {AccountID: suite.debitAccountID, Code: "1001", IsActive: true},
			suite.creditAccountID: {AccountID: suite.creditAccountID, Code: "2001", IsActive: true},
		}, nil).Once()
	suite.mockCurrencyReader.On("FindCurrencyByCode", ctx, currencyCode).
		Return(&domain.Currency{CurrencyCode: currencyCode, Precision: 2}, nil).Once()
}

// expectUser wires the requesting-user lookup.
func (suite *AdjustmentServiceTestSuite) expectUser(ctx context.Context, user *domain.User) {
	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil)
}

func (suite *AdjustmentServiceTestSuite) validCreateRequest() dto.CreateAdjustmentRequest {
	now := time.Now().UTC()
	return dto.CreateAdjustmentRequest{
		AdjustmentDate:  now,
		ValueDate:       now,
		TypeID:          suite.typeID,
		DebitAccountID:  suite.debitAccountID,
		CreditAccountID: suite.creditAccountID,
		Amount:          decimal.RequireFromString("-150.00"),
		CurrencyCode:    "COP",
		Concept:         "Interest reversal",
		Description:     "Reverses interest charged in error",
		Justification:   "Customer complaint 4411",
	}
}

// --- CreateAdjustment Tests ---
func (suite *AdjustmentServiceTestSuite) TestCreateAdjustment_Success() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	suite.expectValidReferences(ctx, "COP")

	suite.mockAdjustmentRepo.SaveAdjustmentFn = func(ctx context.Context, adjustment domain.Adjustment) (*domain.Adjustment, error) {
		suite.Empty(adjustment.SequenceNumber, "sequence number must be store-assigned")
		saved := adjustment
		saved.SequenceNumber = "AJ00000042"
		return &saved, nil
	}

	created, err := suite.service.CreateAdjustment(ctx, req, suite.creatorID)

	suite.Require().NoError(err)
	suite.Equal("AJ00000042", created.SequenceNumber)
	suite.Equal(domain.StatusDraft, created.Status)
	suite.Equal(domain.PriorityMedium, created.Priority, "priority defaults to MEDIUM")
	suite.Equal(suite.creatorID, created.CreatedByUserID)
	suite.Nil(created.ApprovedByUserID)
	suite.Nil(created.ProcessedByUserID)
	suite.mockTypeReader.AssertExpectations(suite.T())
	suite.mockAccountReader.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestCreateAdjustment_ConcurrentSequenceNumbersDistinct() {
	ctx := context.Background()
	const workers = 8

	suite.mockTypeReader.On("FindTypeByID", ctx, suite.typeID).
		Return(&domain.AdjustmentType{TypeID: suite.typeID, Name: domain.TypeCorrection, IsActive: true}, nil).Times(workers)
	suite.mockAccountReader.On("FindAccountsByIDs", ctx, []string{suite.debitAccountID, suite.creditAccountID}).
		Return(map[string]domain.Account{
			suite.debitAccountID:  {AccountID: suite.debitAccountID, Code: "1001", IsActive: true},
			suite.creditAccountID: {AccountID: suite.creditAccountID, Code: "2001", IsActive: true},
		}, nil).Times(workers)
	suite.mockCurrencyReader.On("FindCurrencyByCode", ctx, "COP").
		Return(&domain.Currency{CurrencyCode: "COP", Precision: 2}, nil).Times(workers)

	// The store stands in for the database sequence: every save hands out
	// the next number, regardless of interleaving.
	var counter int64
	suite.mockAdjustmentRepo.SaveAdjustmentFn = func(ctx context.Context, adjustment domain.Adjustment) (*domain.Adjustment, error) {
		saved := adjustment
		saved.SequenceNumber = fmt.Sprintf("AJ%08d", atomic.AddInt64(&counter, 1))
		return &saved, nil
	}

	sequences := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := suite.service.CreateAdjustment(ctx, suite.validCreateRequest(), suite.creatorID)
			if !suite.NoError(err) {
				return
			}
			sequences <- created.SequenceNumber
		}()
	}
	wg.Wait()
	close(sequences)

	seen := make(map[string]bool)
	for seq := range sequences {
		suite.False(seen[seq], "sequence number %s assigned twice", seq)
		seen[seq] = true
	}
	suite.Len(seen, workers)
}

func (suite *AdjustmentServiceTestSuite) TestCreateAdjustment_DefaultsCurrency() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.CurrencyCode = ""
	suite.expectValidReferences(ctx, "COP")

	suite.mockAdjustmentRepo.SaveAdjustmentFn = func(ctx context.Context, adjustment domain.Adjustment) (*domain.Adjustment, error) {
		saved := adjustment
		saved.SequenceNumber = "AJ00000001"
		return &saved, nil
	}

	created, err := suite.service.CreateAdjustment(ctx, req, suite.creatorID)

	suite.Require().NoError(err)
	suite.Equal("COP", created.CurrencyCode)
}

func (suite *AdjustmentServiceTestSuite) TestCreateAdjustment_PositiveAmountRejected() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.Amount = decimal.RequireFromString("150.00")

	created, err := suite.service.CreateAdjustment(ctx, req, suite.creatorID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, services.ErrAmountOutOfRange)
}

func (suite *AdjustmentServiceTestSuite) TestCreateAdjustment_AmountBelowFloorRejected() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.Amount = decimal.RequireFromString("-1000000000000.00")

	created, err := suite.service.CreateAdjustment(ctx, req, suite.creatorID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, services.ErrAmountOutOfRange)
}

func (suite *AdjustmentServiceTestSuite) TestCreateAdjustment_SameAccountRejected() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.CreditAccountID = req.DebitAccountID

	created, err := suite.service.CreateAdjustment(ctx, req, suite.creatorID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, services.ErrSameAccount)
}

func (suite *AdjustmentServiceTestSuite) TestCreateAdjustment_InactiveTypeRejected() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockTypeReader.On("FindTypeByID", ctx, suite.typeID).
		Return(&domain.AdjustmentType{TypeID: suite.typeID, Name: domain.TypeCorrection, IsActive: false}, nil).Once()

	created, err := suite.service.CreateAdjustment(ctx, req, suite.creatorID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, services.ErrTypeInactive)
}

func (suite *AdjustmentServiceTestSuite) TestCreateAdjustment_ExpiryBeforeDateRejected() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	expiry := req.AdjustmentDate.AddDate(0, 0, -1)
	req.ExpiryDate = &expiry
	suite.expectValidReferences(ctx, "COP")

	created, err := suite.service.CreateAdjustment(ctx, req, suite.creatorID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, services.ErrExpiryBeforeDate)
}

// --- Visibility Tests ---
func (suite *AdjustmentServiceTestSuite) TestGetAdjustmentByID_NonParticipantSeesNotFound() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()
	outsiderID := uuid.NewString()

	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustmentID).
		Return(&domain.Adjustment{AdjustmentID: adjustmentID, CreatedByUserID: suite.creatorID, Status: domain.StatusDraft}, nil).Once()
	suite.expectUser(ctx, &domain.User{UserID: outsiderID, Role: domain.RoleStaff, IsActive: true})

	adjustment, err := suite.service.GetAdjustmentByID(ctx, adjustmentID, outsiderID)

	suite.Require().Error(err)
	suite.Nil(adjustment)
	// Visibility failures read as not-found so record existence leaks nothing.
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AdjustmentServiceTestSuite) TestGetAdjustmentByID_ApproverSeesAll() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()
	approverID := uuid.NewString()

	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustmentID).
		Return(&domain.Adjustment{AdjustmentID: adjustmentID, CreatedByUserID: suite.creatorID, Status: domain.StatusPending}, nil).Once()
	suite.expectUser(ctx, &domain.User{UserID: approverID, Role: domain.RoleStaff, CanApprove: true, IsActive: true})

	adjustment, err := suite.service.GetAdjustmentByID(ctx, adjustmentID, approverID)

	suite.Require().NoError(err)
	suite.Equal(adjustmentID, adjustment.AdjustmentID)
}

// --- RequestTransition Tests ---
func (suite *AdjustmentServiceTestSuite) TestRequestTransition_SubmitDraft() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()

	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustmentID).
		Return(&domain.Adjustment{AdjustmentID: adjustmentID, CreatedByUserID: suite.creatorID, Status: domain.StatusDraft}, nil).Once()
	suite.expectUser(ctx, &domain.User{UserID: suite.creatorID, Role: domain.RoleStaff, IsActive: true})

	var savedEntry domain.HistoryEntry
	suite.mockAdjustmentRepo.SaveTransitionFn = func(ctx context.Context, adjustment domain.Adjustment, entry domain.HistoryEntry) error {
		suite.Equal(domain.StatusPending, adjustment.Status)
		savedEntry = entry
		return nil
	}

	updated, err := suite.service.RequestTransition(ctx, adjustmentID,
		dto.TransitionRequest{TargetStatus: domain.StatusPending, Comment: "ready for review"}, suite.creatorID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, updated.Status)
	suite.Equal(domain.StatusDraft, savedEntry.FromStatus)
	suite.Equal(domain.StatusPending, savedEntry.ToStatus)
	suite.Equal(suite.creatorID, savedEntry.UserID)
	suite.Equal("ready for review", savedEntry.Comment)
	suite.NotEmpty(savedEntry.HistoryID)
}

func (suite *AdjustmentServiceTestSuite) TestRequestTransition_FullLifecycleChain() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()
	approverID := uuid.NewString()
	processorID := uuid.NewString()

	suite.expectUser(ctx, &domain.User{UserID: suite.creatorID, Role: domain.RoleStaff, IsActive: true})
	suite.expectUser(ctx, &domain.User{UserID: approverID, Role: domain.RoleStaff, CanApprove: true, IsActive: true})
	suite.expectUser(ctx, &domain.User{UserID: processorID, Role: domain.RoleStaff, CanProcess: true, IsActive: true})

	current := domain.Adjustment{
		AdjustmentID:    adjustmentID,
		SequenceNumber:  "AJ00000042",
		Status:          domain.StatusDraft,
		CreatedByUserID: suite.creatorID,
		Amount:          decimal.RequireFromString("-150.00"),
	}
	suite.mockAdjustmentRepo.FindAdjustmentByIDFn = func(ctx context.Context, id string) (*domain.Adjustment, error) {
		suite.Equal(adjustmentID, id)
		loaded := current
		return &loaded, nil
	}

	var history []domain.HistoryEntry
	suite.mockAdjustmentRepo.SaveTransitionFn = func(ctx context.Context, adjustment domain.Adjustment, entry domain.HistoryEntry) error {
		history = append(history, entry)
		current = adjustment
		return nil
	}

	steps := []struct {
		target domain.AdjustmentStatus
		actor  string
	}{
		{domain.StatusPending, suite.creatorID},
		{domain.StatusApproved, approverID},
		{domain.StatusProcessed, processorID},
		{domain.StatusAnnulled, processorID},
	}
	for _, step := range steps {
		_, err := suite.service.RequestTransition(ctx, adjustmentID,
			dto.TransitionRequest{TargetStatus: step.target}, step.actor)
		suite.Require().NoError(err, "transition to %s", step.target)
	}

	suite.Require().Len(history, 4)
	expectedChain := []domain.AdjustmentStatus{
		domain.StatusDraft, domain.StatusPending, domain.StatusApproved, domain.StatusProcessed, domain.StatusAnnulled,
	}
	for i, entry := range history {
		suite.Equal(expectedChain[i], entry.FromStatus)
		suite.Equal(expectedChain[i+1], entry.ToStatus)
		suite.Equal(steps[i].actor, entry.UserID)
		suite.Equal(adjustmentID, entry.AdjustmentID)
		suite.NotEmpty(entry.HistoryID)
	}

	// Stamps were set on approval and processing and survive annulment.
	suite.Equal(domain.StatusAnnulled, current.Status)
	suite.Require().NotNil(current.ApprovedByUserID)
	suite.Equal(approverID, *current.ApprovedByUserID)
	suite.NotNil(current.ApprovedAt)
	suite.Require().NotNil(current.ProcessedByUserID)
	suite.Equal(processorID, *current.ProcessedByUserID)
	suite.NotNil(current.ProcessedAt)
	suite.Equal("AJ00000042", current.SequenceNumber)
}

func (suite *AdjustmentServiceTestSuite) TestRequestTransition_DraftToApprovedRejected() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()

	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustmentID).
		Return(&domain.Adjustment{AdjustmentID: adjustmentID, CreatedByUserID: suite.creatorID, Status: domain.StatusDraft}, nil).Once()
	suite.expectUser(ctx, &domain.User{UserID: suite.creatorID, Role: domain.RoleAdmin, IsActive: true})

	updated, err := suite.service.RequestTransition(ctx, adjustmentID,
		dto.TransitionRequest{TargetStatus: domain.StatusApproved}, suite.creatorID)

	suite.Require().Error(err)
	suite.Nil(updated)
	var transitionErr *domain.InvalidTransitionError
	suite.Require().ErrorAs(err, &transitionErr)
	suite.Equal(domain.StatusDraft, transitionErr.From)
	suite.Equal(domain.StatusApproved, transitionErr.To)
	suite.mockAdjustmentRepo.AssertNotCalled(suite.T(), "SaveTransition", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestRequestTransition_ApproveWithoutCapability() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()

	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustmentID).
		Return(&domain.Adjustment{AdjustmentID: adjustmentID, CreatedByUserID: suite.creatorID, Status: domain.StatusPending}, nil).Once()
	suite.expectUser(ctx, &domain.User{UserID: suite.creatorID, Role: domain.RoleStaff, IsActive: true})

	updated, err := suite.service.RequestTransition(ctx, adjustmentID,
		dto.TransitionRequest{TargetStatus: domain.StatusApproved}, suite.creatorID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAdjustmentRepo.AssertNotCalled(suite.T(), "SaveTransition", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestRequestTransition_ApproveStampsApprover() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()
	approverID := uuid.NewString()

	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustmentID).
		Return(&domain.Adjustment{
			AdjustmentID:    adjustmentID,
			CreatedByUserID: suite.creatorID,
			Status:          domain.StatusPending,
			Amount:          decimal.RequireFromString("-150.00"),
		}, nil).Once()
	suite.expectUser(ctx, &domain.User{UserID: approverID, Role: domain.RoleStaff, CanApprove: true, IsActive: true})
	suite.mockAdjustmentRepo.SaveTransitionFn = func(ctx context.Context, adjustment domain.Adjustment, entry domain.HistoryEntry) error {
		return nil
	}

	updated, err := suite.service.RequestTransition(ctx, adjustmentID,
		dto.TransitionRequest{TargetStatus: domain.StatusApproved}, approverID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, updated.Status)
	suite.Require().NotNil(updated.ApprovedByUserID)
	suite.Equal(approverID, *updated.ApprovedByUserID)
	suite.NotNil(updated.ApprovedAt)
	suite.Nil(updated.ProcessedByUserID)
}

func (suite *AdjustmentServiceTestSuite) TestRequestTransition_ApproveOverLimit() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()
	approverID := uuid.NewString()
	limit := decimal.RequireFromString("100.00")

	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustmentID).
		Return(&domain.Adjustment{
			AdjustmentID:    adjustmentID,
			CreatedByUserID: suite.creatorID,
			Status:          domain.StatusPending,
			Amount:          decimal.RequireFromString("-150.00"),
		}, nil).Once()
	suite.expectUser(ctx, &domain.User{
		UserID: approverID, Role: domain.RoleStaff, CanApprove: true, ApprovalLimit: &limit, IsActive: true,
	})

	updated, err := suite.service.RequestTransition(ctx, adjustmentID,
		dto.TransitionRequest{TargetStatus: domain.StatusApproved}, approverID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, services.ErrApprovalLimitExceeded)
	suite.mockAdjustmentRepo.AssertNotCalled(suite.T(), "SaveTransition", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestRequestTransition_ProcessStampsProcessor() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()
	approverID := uuid.NewString()
	processorID := uuid.NewString()

	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustmentID).
		Return(&domain.Adjustment{
			AdjustmentID:     adjustmentID,
			CreatedByUserID:  suite.creatorID,
			Status:           domain.StatusApproved,
			ApprovedByUserID: &approverID,
			Amount:           decimal.RequireFromString("-150.00"),
		}, nil).Once()
	suite.expectUser(ctx, &domain.User{UserID: processorID, Role: domain.RoleStaff, CanProcess: true, IsActive: true})
	suite.mockAdjustmentRepo.SaveTransitionFn = func(ctx context.Context, adjustment domain.Adjustment, entry domain.HistoryEntry) error {
		return nil
	}

	updated, err := suite.service.RequestTransition(ctx, adjustmentID,
		dto.TransitionRequest{TargetStatus: domain.StatusProcessed}, processorID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusProcessed, updated.Status)
	suite.Require().NotNil(updated.ProcessedByUserID)
	suite.Equal(processorID, *updated.ProcessedByUserID)
	suite.NotNil(updated.ProcessedAt)
	// The approver stamp from the earlier transition survives.
	suite.Require().NotNil(updated.ApprovedByUserID)
	suite.Equal(approverID, *updated.ApprovedByUserID)
}

func (suite *AdjustmentServiceTestSuite) TestRequestTransition_UnknownStatusRejected() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()

	updated, err := suite.service.RequestTransition(ctx, adjustmentID,
		dto.TransitionRequest{TargetStatus: "SHIPPED"}, suite.creatorID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- UpdateAdjustment Tests ---
func (suite *AdjustmentServiceTestSuite) TestUpdateAdjustment_PendingNotEditable() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()
	newConcept := "changed"

	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustmentID).
		Return(&domain.Adjustment{AdjustmentID: adjustmentID, CreatedByUserID: suite.creatorID, Status: domain.StatusPending}, nil).Once()
	suite.expectUser(ctx, &domain.User{UserID: suite.creatorID, Role: domain.RoleStaff, IsActive: true})

	updated, err := suite.service.UpdateAdjustment(ctx, adjustmentID, dto.UpdateAdjustmentRequest{Concept: &newConcept}, suite.creatorID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, domain.ErrNotEditable)
	suite.mockAdjustmentRepo.AssertNotCalled(suite.T(), "UpdateAdjustment", mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestUpdateAdjustment_RejectedIsEditable() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()
	newConcept := "resubmission"

	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustmentID).
		Return(&domain.Adjustment{
			AdjustmentID:    adjustmentID,
			CreatedByUserID: suite.creatorID,
			Status:          domain.StatusRejected,
			TypeID:          suite.typeID,
			DebitAccountID:  suite.debitAccountID,
			CreditAccountID: suite.creditAccountID,
			Amount:          decimal.RequireFromString("-150.00"),
			CurrencyCode:    "COP",
			Priority:        domain.PriorityMedium,
		}, nil).Once()
	suite.expectUser(ctx, &domain.User{UserID: suite.creatorID, Role: domain.RoleStaff, IsActive: true})
	suite.expectValidReferences(ctx, "COP")
	suite.mockAdjustmentRepo.On("UpdateAdjustment", ctx, mock.MatchedBy(func(adjustment domain.Adjustment) bool {
		return adjustment.Concept == newConcept && adjustment.LastUpdatedBy == suite.creatorID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAdjustment(ctx, adjustmentID, dto.UpdateAdjustmentRequest{Concept: &newConcept}, suite.creatorID)

	suite.Require().NoError(err)
	suite.Equal(newConcept, updated.Concept)
	suite.mockAdjustmentRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestUpdateAdjustment_AccountSwapToSameRejected() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()

	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustmentID).
		Return(&domain.Adjustment{
			AdjustmentID:    adjustmentID,
			CreatedByUserID: suite.creatorID,
			Status:          domain.StatusDraft,
			TypeID:          suite.typeID,
			DebitAccountID:  suite.debitAccountID,
			CreditAccountID: suite.creditAccountID,
			Amount:          decimal.RequireFromString("-150.00"),
			CurrencyCode:    "COP",
		}, nil).Once()
	suite.expectUser(ctx, &domain.User{UserID: suite.creatorID, Role: domain.RoleStaff, IsActive: true})

	// Changing only the credit account to match the debit must fail even
	// though neither field alone is invalid.
	updated, err := suite.service.UpdateAdjustment(ctx, adjustmentID,
		dto.UpdateAdjustmentRequest{CreditAccountID: &suite.debitAccountID}, suite.creatorID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, services.ErrSameAccount)
}

// --- DeleteAdjustments Tests ---
func (suite *AdjustmentServiceTestSuite) TestDeleteAdjustments_Success() {
	ctx := context.Background()
	ids := []string{uuid.NewString(), uuid.NewString()}

	suite.expectUser(ctx, &domain.User{UserID: suite.creatorID, Role: domain.RoleStaff, IsActive: true})
	suite.mockAdjustmentRepo.On("FindAdjustmentsByIDs", ctx, ids).
		Return(map[string]domain.Adjustment{
			ids[0]: {AdjustmentID: ids[0], CreatedByUserID: suite.creatorID, Status: domain.StatusDraft},
			ids[1]: {AdjustmentID: ids[1], CreatedByUserID: suite.creatorID, Status: domain.StatusRejected},
		}, nil).Once()
	suite.mockAdjustmentRepo.On("DeleteAdjustments", ctx, ids).Return(nil).Once()

	err := suite.service.DeleteAdjustments(ctx, ids, suite.creatorID)

	suite.Require().NoError(err)
	suite.mockAdjustmentRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestDeleteAdjustments_NonEditableBlocksWholeBatch() {
	ctx := context.Background()
	ids := []string{uuid.NewString(), uuid.NewString()}

	suite.expectUser(ctx, &domain.User{UserID: suite.creatorID, Role: domain.RoleStaff, IsActive: true})
	suite.mockAdjustmentRepo.On("FindAdjustmentsByIDs", ctx, ids).
		Return(map[string]domain.Adjustment{
			ids[0]: {AdjustmentID: ids[0], CreatedByUserID: suite.creatorID, Status: domain.StatusDraft},
			ids[1]: {AdjustmentID: ids[1], CreatedByUserID: suite.creatorID, Status: domain.StatusProcessed},
		}, nil).Once()

	err := suite.service.DeleteAdjustments(ctx, ids, suite.creatorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrNotEditable)
	suite.mockAdjustmentRepo.AssertNotCalled(suite.T(), "DeleteAdjustments", mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestDeleteAdjustments_OtherUsersDraftForbidden() {
	ctx := context.Background()
	ids := []string{uuid.NewString()}
	requesterID := uuid.NewString()

	suite.expectUser(ctx, &domain.User{UserID: requesterID, Role: domain.RoleStaff, CanApprove: true, IsActive: true})
	suite.mockAdjustmentRepo.On("FindAdjustmentsByIDs", ctx, ids).
		Return(map[string]domain.Adjustment{
			ids[0]: {AdjustmentID: ids[0], CreatedByUserID: suite.creatorID, Status: domain.StatusDraft},
		}, nil).Once()

	err := suite.service.DeleteAdjustments(ctx, ids, requesterID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAdjustmentRepo.AssertNotCalled(suite.T(), "DeleteAdjustments", mock.Anything, mock.Anything)
}

// --- Attachment Tests ---
func (suite *AdjustmentServiceTestSuite) TestAttachFile_Success() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()
	content := []byte("%PDF-1.4 fake receipt")

	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustmentID).
		Return(&domain.Adjustment{AdjustmentID: adjustmentID, CreatedByUserID: suite.creatorID, Status: domain.StatusDraft}, nil).Once()
	suite.expectUser(ctx, &domain.User{UserID: suite.creatorID, Role: domain.RoleStaff, IsActive: true})
	suite.mockAttachmentRepo.On("SaveAttachment", ctx, mock.MatchedBy(func(attachment domain.Attachment) bool {
		return attachment.AdjustmentID == adjustmentID &&
			attachment.FileName == "receipt.pdf" &&
			attachment.SizeBytes == int64(len(content)) &&
			attachment.UploadedBy == suite.creatorID
	})).Return(nil).Once()

	attachment, err := suite.service.AttachFile(ctx, adjustmentID, "receipt.pdf", "signed receipt", content, suite.creatorID)

	suite.Require().NoError(err)
	suite.NotEmpty(attachment.AttachmentID)
	suite.FileExists(attachment.StoragePath)
	suite.mockAttachmentRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestAttachFile_NotEditableState() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()

	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustmentID).
		Return(&domain.Adjustment{AdjustmentID: adjustmentID, CreatedByUserID: suite.creatorID, Status: domain.StatusApproved}, nil).Once()
	suite.expectUser(ctx, &domain.User{UserID: suite.creatorID, Role: domain.RoleStaff, IsActive: true})

	attachment, err := suite.service.AttachFile(ctx, adjustmentID, "receipt.pdf", "", []byte("data"), suite.creatorID)

	suite.Require().Error(err)
	suite.Nil(attachment)
	suite.ErrorIs(err, domain.ErrNotEditable)
	suite.mockAttachmentRepo.AssertNotCalled(suite.T(), "SaveAttachment", mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestAttachFile_EmptyContent() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()

	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustmentID).
		Return(&domain.Adjustment{AdjustmentID: adjustmentID, CreatedByUserID: suite.creatorID, Status: domain.StatusDraft}, nil).Once()
	suite.expectUser(ctx, &domain.User{UserID: suite.creatorID, Role: domain.RoleStaff, IsActive: true})

	attachment, err := suite.service.AttachFile(ctx, adjustmentID, "empty.pdf", "", nil, suite.creatorID)

	suite.Require().Error(err)
	suite.Nil(attachment)
	suite.ErrorIs(err, services.ErrAttachmentEmpty)
}

func (suite *AdjustmentServiceTestSuite) TestAttachFile_TooLarge() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()
	content := make([]byte, suite.cfg.MaxAttachmentSizeBytes+1)

	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustmentID).
		Return(&domain.Adjustment{AdjustmentID: adjustmentID, CreatedByUserID: suite.creatorID, Status: domain.StatusDraft}, nil).Once()
	suite.expectUser(ctx, &domain.User{UserID: suite.creatorID, Role: domain.RoleStaff, IsActive: true})

	attachment, err := suite.service.AttachFile(ctx, adjustmentID, "huge.bin", "", content, suite.creatorID)

	suite.Require().Error(err)
	suite.Nil(attachment)
	suite.ErrorIs(err, services.ErrAttachmentTooLarge)
}

// --- Comment Tests ---
func (suite *AdjustmentServiceTestSuite) TestAddComment_AllowedInTerminalState() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()

	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustmentID).
		Return(&domain.Adjustment{AdjustmentID: adjustmentID, CreatedByUserID: suite.creatorID, Status: domain.StatusProcessed}, nil).Once()
	suite.expectUser(ctx, &domain.User{UserID: suite.creatorID, Role: domain.RoleStaff, IsActive: true})
	suite.mockAttachmentRepo.On("SaveComment", ctx, mock.MatchedBy(func(comment domain.Comment) bool {
		return comment.AdjustmentID == adjustmentID && comment.Text == "posted to GL" && !comment.IsInternal
	})).Return(nil).Once()

	comment, err := suite.service.AddComment(ctx, adjustmentID,
		dto.CreateCommentRequest{Text: "posted to GL"}, suite.creatorID)

	suite.Require().NoError(err)
	suite.NotEmpty(comment.CommentID)
	suite.mockAttachmentRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestListComments_InternalHiddenFromStaff() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()

	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustmentID).
		Return(&domain.Adjustment{AdjustmentID: adjustmentID, CreatedByUserID: suite.creatorID, Status: domain.StatusPending}, nil).Once()
	suite.expectUser(ctx, &domain.User{UserID: suite.creatorID, Role: domain.RoleStaff, IsActive: true})
	suite.mockAttachmentRepo.On("FindCommentsByAdjustmentID", ctx, adjustmentID, false).
		Return([]domain.Comment{}, nil).Once()

	_, err := suite.service.ListComments(ctx, adjustmentID, suite.creatorID)

	suite.Require().NoError(err)
	suite.mockAttachmentRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestListComments_InternalVisibleToApprover() {
	ctx := context.Background()
	adjustmentID := uuid.NewString()
	approverID := uuid.NewString()

	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustmentID).
		Return(&domain.Adjustment{AdjustmentID: adjustmentID, CreatedByUserID: suite.creatorID, Status: domain.StatusPending}, nil).Once()
	suite.expectUser(ctx, &domain.User{UserID: approverID, Role: domain.RoleStaff, CanApprove: true, IsActive: true})
	suite.mockAttachmentRepo.On("FindCommentsByAdjustmentID", ctx, adjustmentID, true).
		Return([]domain.Comment{}, nil).Once()

	_, err := suite.service.ListComments(ctx, adjustmentID, approverID)

	suite.Require().NoError(err)
	suite.mockAttachmentRepo.AssertExpectations(suite.T())
}

// --- ListAdjustments Tests ---
func (suite *AdjustmentServiceTestSuite) TestListPendingApproval_WithoutApproveCapability() {
	ctx := context.Background()
	requesterID := uuid.NewString()

	suite.expectUser(ctx, &domain.User{UserID: requesterID, Role: domain.RoleStaff, IsActive: true})

	_, err := suite.service.ListPendingApproval(ctx, requesterID, dto.ListAdjustmentsParams{})

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAdjustmentRepo.AssertNotCalled(suite.T(), "ListAdjustments")
}

func (suite *AdjustmentServiceTestSuite) TestListPendingApproval_ForcesPendingFilter() {
	ctx := context.Background()
	requesterID := uuid.NewString()

	suite.expectUser(ctx, &domain.User{UserID: requesterID, Role: domain.RoleStaff, CanApprove: true, IsActive: true})
	suite.mockAdjustmentRepo.On("ListAdjustments", ctx, mock.MatchedBy(func(filter portsrepo.ListAdjustmentsFilter) bool {
		return len(filter.Statuses) == 1 && filter.Statuses[0] == domain.StatusPending
	}), 20, (*string)(nil)).Return([]domain.Adjustment{}, nil, nil).Once()

	// A caller-supplied status filter must not widen the pending view.
	_, err := suite.service.ListPendingApproval(ctx, requesterID, dto.ListAdjustmentsParams{
		Statuses: []domain.AdjustmentStatus{domain.StatusDraft},
	})

	suite.Require().NoError(err)
	suite.mockAdjustmentRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestListAdjustments_StaffScopedToOwnRecords() {
	ctx := context.Background()
	requesterID := uuid.NewString()

	suite.expectUser(ctx, &domain.User{UserID: requesterID, Role: domain.RoleStaff, IsActive: true})
	suite.mockAdjustmentRepo.On("ListAdjustments", ctx, mock.MatchedBy(func(filter portsrepo.ListAdjustmentsFilter) bool {
		return filter.InvolvedUserID != nil && *filter.InvolvedUserID == requesterID
	}), 20, (*string)(nil)).Return([]domain.Adjustment{}, nil, nil).Once()

	_, err := suite.service.ListAdjustments(ctx, requesterID, dto.ListAdjustmentsParams{})

	suite.Require().NoError(err)
	suite.mockAdjustmentRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestListAdjustments_AdminUnscopedAndCapped() {
	ctx := context.Background()
	adminID := uuid.NewString()

	suite.expectUser(ctx, &domain.User{UserID: adminID, Role: domain.RoleAdmin, IsActive: true})
	suite.mockAdjustmentRepo.On("ListAdjustments", ctx, mock.MatchedBy(func(filter portsrepo.ListAdjustmentsFilter) bool {
		return filter.InvolvedUserID == nil
	}), 100, (*string)(nil)).Return([]domain.Adjustment{}, nil, nil).Once()

	_, err := suite.service.ListAdjustments(ctx, adminID, dto.ListAdjustmentsParams{Limit: 500})

	suite.Require().NoError(err)
	suite.mockAdjustmentRepo.AssertExpectations(suite.T())
}

func TestAdjustmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdjustmentServiceTestSuite))
}
