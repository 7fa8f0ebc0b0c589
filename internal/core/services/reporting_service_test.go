package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finreg/adjustments_app/internal/apperrors"
	"github.com/finreg/adjustments_app/internal/core/domain"
	portssvc "github.com/finreg/adjustments_app/internal/core/ports/services"
	"github.com/finreg/adjustments_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetStatusBreakdown(ctx context.Context, from, to time.Time) ([]domain.StatusBreakdownRow, error) {
	args := m.Called(ctx, from, to)
	var rows []domain.StatusBreakdownRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.StatusBreakdownRow)
	}
	return rows, args.Error(1)
}

func (m *MockReportingRepository) GetTypeBreakdown(ctx context.Context, from, to time.Time) ([]domain.TypeBreakdownRow, error) {
	args := m.Called(ctx, from, to)
	var rows []domain.TypeBreakdownRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.TypeBreakdownRow)
	}
	return rows, args.Error(1)
}

func (m *MockReportingRepository) GetPriorityBreakdown(ctx context.Context, from, to time.Time) ([]domain.PriorityBreakdownRow, error) {
	args := m.Called(ctx, from, to)
	var rows []domain.PriorityBreakdownRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.PriorityBreakdownRow)
	}
	return rows, args.Error(1)
}

func (m *MockReportingRepository) CountPendingApproval(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingRepository) GetAverageProcessingDays(ctx context.Context) (*float64, error) {
	args := m.Called(ctx)
	var avg *float64
	if args.Get(0) != nil {
		avg = args.Get(0).(*float64)
	}
	return avg, args.Error(1)
}

func (m *MockReportingRepository) GetRecentAdjustments(ctx context.Context, from, to time.Time, limit int) ([]domain.RecentAdjustmentRow, error) {
	args := m.Called(ctx, from, to, limit)
	var rows []domain.RecentAdjustmentRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.RecentAdjustmentRow)
	}
	return rows, args.Error(1)
}

func (m *MockReportingRepository) GetUserActivity(ctx context.Context, from, to time.Time) ([]domain.UserActivityRow, error) {
	args := m.Called(ctx, from, to)
	var rows []domain.UserActivityRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.UserActivityRow)
	}
	return rows, args.Error(1)
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingService
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
}

func (suite *ReportingServiceTestSuite) TestGetDashboard_TotalsDerivedFromStatusBreakdown() {
	ctx := context.Background()
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	avg := 2.5

	byStatus := []domain.StatusBreakdownRow{
		{Status: domain.StatusDraft, Count: 3, Amount: decimal.RequireFromString("-30.00")},
		{Status: domain.StatusProcessed, Count: 2, Amount: decimal.RequireFromString("-120.00")},
	}

	suite.mockRepo.On("GetStatusBreakdown", ctx, from, to).Return(byStatus, nil).Once()
	suite.mockRepo.On("GetTypeBreakdown", ctx, from, to).Return([]domain.TypeBreakdownRow{}, nil).Once()
	suite.mockRepo.On("GetPriorityBreakdown", ctx, from, to).Return([]domain.PriorityBreakdownRow{}, nil).Once()
	suite.mockRepo.On("CountPendingApproval", ctx).Return(int64(4), nil).Once()
	suite.mockRepo.On("GetAverageProcessingDays", ctx).Return(&avg, nil).Once()
	suite.mockRepo.On("GetRecentAdjustments", ctx, from, to, 10).Return([]domain.RecentAdjustmentRow{}, nil).Once()

	summary, err := suite.service.GetDashboard(ctx, &from, &to)

	suite.Require().NoError(err)
	suite.Equal(int64(5), summary.TotalAdjustments)
	suite.True(summary.TotalAmount.Equal(decimal.RequireFromString("-150.00")))
	suite.Equal(int64(4), summary.PendingApproval)
	suite.Require().NotNil(summary.AvgProcessingDays)
	suite.InDelta(2.5, *summary.AvgProcessingDays, 0.0001)
	suite.Equal(from, summary.FromDate)
	suite.Equal(to, summary.ToDate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetDashboard_DefaultsToThirtyDayWindow() {
	ctx := context.Background()

	matchWindow := mock.MatchedBy(func(from time.Time) bool {
		return time.Since(from.AddDate(0, 0, 30)) < time.Minute
	})
	matchNow := mock.MatchedBy(func(to time.Time) bool {
		return time.Since(to) < time.Minute
	})

	suite.mockRepo.On("GetStatusBreakdown", ctx, matchWindow, matchNow).Return([]domain.StatusBreakdownRow{}, nil).Once()
	suite.mockRepo.On("GetTypeBreakdown", ctx, matchWindow, matchNow).Return([]domain.TypeBreakdownRow{}, nil).Once()
	suite.mockRepo.On("GetPriorityBreakdown", ctx, matchWindow, matchNow).Return([]domain.PriorityBreakdownRow{}, nil).Once()
	suite.mockRepo.On("CountPendingApproval", ctx).Return(int64(0), nil).Once()
	suite.mockRepo.On("GetAverageProcessingDays", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("GetRecentAdjustments", ctx, matchWindow, matchNow, 10).Return([]domain.RecentAdjustmentRow{}, nil).Once()

	summary, err := suite.service.GetDashboard(ctx, nil, nil)

	suite.Require().NoError(err)
	suite.Equal(int64(0), summary.TotalAdjustments)
	suite.True(summary.TotalAmount.IsZero())
	suite.Nil(summary.AvgProcessingDays, "no processed adjustments means no average")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetDashboard_InvertedRangeRejected() {
	ctx := context.Background()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)

	summary, err := suite.service.GetDashboard(ctx, &from, &to)

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetStatusBreakdown", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGetUserActivity_Success() {
	ctx := context.Background()
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.UserActivityRow{
		{UserID: "u1", UserName: "Jane Doe", CreatedCount: 7, ApprovedCount: 2, ProcessedCount: 0},
	}

	suite.mockRepo.On("GetUserActivity", ctx, from, to).Return(rows, nil).Once()

	activity, err := suite.service.GetUserActivity(ctx, &from, &to)

	suite.Require().NoError(err)
	suite.Require().Len(activity, 1)
	suite.Equal(int64(7), activity[0].CreatedCount)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
