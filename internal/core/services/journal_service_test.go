package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/petrobook/petrobook/internal/apperrors"
	"github.com/petrobook/petrobook/internal/core/domain"
	portssvc "github.com/petrobook/petrobook/internal/core/ports/services"
	"github.com/petrobook/petrobook/internal/core/services"
	"github.com/petrobook/petrobook/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockJournalRepository is a mock type for the JournalRepositoryWithTx interface
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var journals []domain.Journal
	if args.Get(0) != nil {
		journals = args.Get(0).([]domain.Journal)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return journals, next, args.Error(2)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error {
	args := m.Called(ctx, journal, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateJournalStatus(ctx context.Context, journalID string, status domain.JournalStatus, userID string, now time.Time) error {
	args := m.Called(ctx, journalID, status, userID, now)
	return args.Error(0)
}

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountBalance(ctx context.Context, accountID string, delta decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, delta, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalSvcFacade
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo)
}

func (suite *JournalServiceTestSuite) activeAccounts(ids ...string) map[string]domain.Account {
	accounts := make(map[string]domain.Account, len(ids))
	for _, id := range ids {
		accounts[id] = domain.Account{AccountID: id, IsActive: true}
	}
	return accounts
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateJournal_CoercesFreeTextAmounts() {
	ctx := context.Background()
	cashID := uuid.NewString()
	salesID := uuid.NewString()
	req := dto.CreateJournalRequest{
		JournalDate: time.Now(),
		Description: "Sale of goods",
		Lines: []dto.JournalLineInput{
			{AccountID: cashID, Debit: "150.50", Credit: ""},
			{AccountID: salesID, Debit: "not-a-number", Credit: "150.50"},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{cashID, salesID}).
		Return(suite.activeAccounts(cashID, salesID), nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalance", ctx, cashID, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalance", ctx, salesID, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	journal, lines, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.JournalStatusPosted, journal.Status)
	suite.Require().Len(lines, 2)
	suite.True(lines[0].Debit.Equal(decimal.RequireFromString("150.5")))
	// Malformed numeric text coerces to zero rather than failing the entry.
	suite.True(lines[1].Debit.IsZero())
	suite.True(lines[1].Credit.Equal(decimal.RequireFromString("150.5")))
	suite.True(domain.Balanced(lines))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_UnbalancedIsStored() {
	ctx := context.Background()
	a := uuid.NewString()
	b := uuid.NewString()
	req := dto.CreateJournalRequest{
		JournalDate: time.Now(),
		Lines: []dto.JournalLineInput{
			{AccountID: a, Debit: "100"},
			{AccountID: b, Credit: "90"},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{a, b}).
		Return(suite.activeAccounts(a, b), nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalance", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, lines, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.False(domain.Balanced(lines))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_UnknownAccount() {
	ctx := context.Background()
	known := uuid.NewString()
	unknown := uuid.NewString()
	req := dto.CreateJournalRequest{
		JournalDate: time.Now(),
		Lines: []dto.JournalLineInput{
			{AccountID: known, Debit: "10"},
			{AccountID: unknown, Credit: "10"},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{known, unknown}).
		Return(suite.activeAccounts(known), nil).Once()

	_, _, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_SwapsDebitsAndCredits() {
	ctx := context.Background()
	journalID := uuid.NewString()
	accountA := uuid.NewString()
	accountB := uuid.NewString()

	original := &domain.Journal{
		JournalID: journalID,
		Status:    domain.JournalStatusPosted,
	}
	originalLines := []domain.JournalLine{
		{JournalLineID: uuid.NewString(), JournalID: journalID, AccountID: accountA, Debit: decimal.NewFromInt(75), Credit: decimal.Zero},
		{JournalLineID: uuid.NewString(), JournalID: journalID, AccountID: accountB, Debit: decimal.Zero, Credit: decimal.NewFromInt(75)},
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", ctx, journalID).Return(originalLines, nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()
	suite.mockJournalRepo.On("UpdateJournalStatus", ctx, journalID, domain.JournalStatusReversed, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalance", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	reversal, lines, err := suite.service.ReverseJournal(ctx, journalID, uuid.NewString())

	suite.Require().NoError(err)
	suite.NotEqual(journalID, reversal.JournalID)
	suite.Require().Len(lines, 2)
	suite.True(lines[0].Credit.Equal(decimal.NewFromInt(75)))
	suite.True(lines[0].Debit.IsZero())
	suite.True(lines[1].Debit.Equal(decimal.NewFromInt(75)))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournal_AlreadyReversed() {
	ctx := context.Background()
	journalID := uuid.NewString()
	original := &domain.Journal{JournalID: journalID, Status: domain.JournalStatusReversed}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(original, nil).Once()

	_, _, err := suite.service.ReverseJournal(ctx, journalID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
