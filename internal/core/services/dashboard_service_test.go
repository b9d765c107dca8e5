package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/petrobook/petrobook/internal/core/billing"
	portssvc "github.com/petrobook/petrobook/internal/core/ports/services"
	"github.com/petrobook/petrobook/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockDashboardRepository is a mock type for the DashboardRepository interface
type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) FetchInvoiceRecords(ctx context.Context, from, to time.Time) ([]billing.InvoiceRecord, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.InvoiceRecord), args.Error(1)
}

func (m *MockDashboardRepository) FetchPaymentRecords(ctx context.Context, from, to time.Time) ([]billing.PaymentRecord, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.PaymentRecord), args.Error(1)
}

// --- Test Suite Setup ---

type DashboardServiceTestSuite struct {
	suite.Suite
	mockRepo *MockDashboardRepository
	service  portssvc.DashboardSvc
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockDashboardRepository)
	suite.service = services.NewDashboardService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *DashboardServiceTestSuite) TestGetSummary_RollsUpRecords() {
	ctx := context.Background()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	march := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	invoices := []billing.InvoiceRecord{
		{Date: march, Total: 100, Status: "sent", Counterparty: "Acme"},
		{Date: march, Total: 200, Status: "paid", Counterparty: "Globex"},
	}
	payments := []billing.PaymentRecord{
		{Date: march, Amount: 200},
	}

	suite.mockRepo.On("FetchInvoiceRecords", ctx, from, to).Return(invoices, nil).Once()
	suite.mockRepo.On("FetchPaymentRecords", ctx, from, to).Return(payments, nil).Once()

	summary, err := suite.service.GetSummary(ctx, from, to)

	suite.Require().NoError(err)
	suite.InDelta(300.0, summary.TotalInvoiced, 1e-9)
	suite.InDelta(200.0, summary.TotalPaid, 1e-9)
	suite.InDelta(100.0, summary.UnpaidAmount, 1e-9)
	suite.Require().Len(summary.MonthlySeries, 1)
	suite.Equal("Mar 26", summary.MonthlySeries[0].Month)
	suite.Len(summary.TopCounterparties, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DashboardServiceTestSuite) TestGetSummary_InvoiceFetchError() {
	ctx := context.Background()
	from := time.Now().AddDate(-1, 0, 0)
	to := time.Now()

	suite.mockRepo.On("FetchInvoiceRecords", ctx, from, to).Return(nil, errors.New("db down")).Once()

	_, err := suite.service.GetSummary(ctx, from, to)

	suite.Require().Error(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "FetchPaymentRecords", mock.Anything, mock.Anything, mock.Anything)
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}
