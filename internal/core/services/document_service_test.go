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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockDocumentRepository is a mock type for the DocumentRepositoryWithTx interface
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListDocuments(ctx context.Context, docType domain.DocumentType, limit int, nextToken *string) ([]domain.Document, *string, error) {
	args := m.Called(ctx, docType, limit, nextToken)
	var docs []domain.Document
	if args.Get(0) != nil {
		docs = args.Get(0).([]domain.Document)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return docs, next, args.Error(2)
}

func (m *MockDocumentRepository) ListDocumentsByCounterparty(ctx context.Context, counterpartyID string, limit int, offset int) ([]domain.Document, error) {
	args := m.Called(ctx, counterpartyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, userID string, now time.Time) error {
	args := m.Called(ctx, documentID, status, userID, now)
	return args.Error(0)
}

func (m *MockDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

func (m *MockDocumentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockDocumentRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDocumentRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockCounterpartyReader is a mock type for the CounterpartyReader interface
type MockCounterpartyReader struct {
	mock.Mock
}

func (m *MockCounterpartyReader) FindCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error) {
	args := m.Called(ctx, counterpartyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counterparty), args.Error(1)
}

func (m *MockCounterpartyReader) ListCounterparties(ctx context.Context, kind domain.CounterpartyKind, limit int, offset int) ([]domain.Counterparty, error) {
	args := m.Called(ctx, kind, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Counterparty), args.Error(1)
}

// --- Test Suite Setup ---

type DocumentServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockDocumentRepository
	mockCpRepo *MockCounterpartyReader
	service    portssvc.DocumentSvcFacade
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockDocumentRepository)
	suite.mockCpRepo = new(MockCounterpartyReader)
	suite.service = services.NewDocumentService(
		suite.mockRepo,
		services.WithCounterpartyReader(suite.mockCpRepo),
	)
}

// --- Test Cases ---

func (suite *DocumentServiceTestSuite) TestCreateDocument_ComputesTotals() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	counterpartyID := uuid.NewString()
	req := dto.CreateDocumentRequest{
		DocumentNumber: "INV-2026-0001",
		CounterpartyID: counterpartyID,
		IssueDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:        time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		CurrencyCode:   "USD",
		Items: []dto.LineItemInput{
			{Description: "Consulting", Quantity: 2, UnitAmount: 100, TaxRatePercent: 12},
			{Description: "Hosting", Quantity: 1, UnitAmount: 50, TaxRatePercent: 0},
		},
	}

	suite.mockCpRepo.On("FindCounterpartyByID", ctx, counterpartyID).Return(&domain.Counterparty{
		CounterpartyID: counterpartyID,
		Name:           "Acme Trading Ltd",
		Address:        "1 Market Street",
	}, nil).Once()
	suite.mockRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.Document")).Return(nil).Once()

	doc, err := suite.service.CreateDocument(ctx, domain.DocumentTypeInvoice, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(doc)
	suite.NotEmpty(doc.DocumentID)
	suite.Equal(domain.DocumentStatusDraft, doc.Status)
	suite.Equal("Acme Trading Ltd", doc.CounterpartyName)
	suite.InDelta(250.0, doc.Subtotal, 1e-9)
	suite.InDelta(24.0, doc.TaxTotal, 1e-9)
	suite.InDelta(274.0, doc.Total, 1e-9)
	suite.Len(doc.Items, 2)
	suite.Equal(0, doc.Items[0].Position)
	suite.Equal(1, doc.Items[1].Position)
	suite.Equal(creatorUserID, doc.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCpRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_KeepsRequestedStatus() {
	ctx := context.Background()
	counterpartyID := uuid.NewString()
	req := dto.CreateDocumentRequest{
		DocumentNumber: "BILL-0007",
		CounterpartyID: counterpartyID,
		IssueDate:      time.Now(),
		DueDate:        time.Now().AddDate(0, 1, 0),
		Status:         domain.DocumentStatusSent,
		CurrencyCode:   "EUR",
		Items:          []dto.LineItemInput{{Description: "Diesel delivery", Quantity: 10, UnitAmount: 5}},
	}

	suite.mockCpRepo.On("FindCounterpartyByID", ctx, counterpartyID).Return(&domain.Counterparty{CounterpartyID: counterpartyID, Name: "Fuel Supplier"}, nil).Once()
	suite.mockRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.Document")).Return(nil).Once()

	doc, err := suite.service.CreateDocument(ctx, domain.DocumentTypeBill, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.DocumentStatusSent, doc.Status)
	suite.Equal(domain.DocumentTypeBill, doc.DocumentType)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_UnknownCounterparty() {
	ctx := context.Background()
	counterpartyID := uuid.NewString()
	req := dto.CreateDocumentRequest{
		DocumentNumber: "INV-2026-0002",
		CounterpartyID: counterpartyID,
		IssueDate:      time.Now(),
		DueDate:        time.Now(),
		CurrencyCode:   "USD",
		Items:          []dto.LineItemInput{{Description: "Anything", Quantity: 1, UnitAmount: 1}},
	}

	suite.mockCpRepo.On("FindCounterpartyByID", ctx, counterpartyID).Return(nil, apperrors.ErrNotFound).Once()

	doc, err := suite.service.CreateDocument(ctx, domain.DocumentTypeInvoice, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(doc)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestGetDocumentByID_NotFound() {
	ctx := context.Background()
	documentID := uuid.NewString()

	suite.mockRepo.On("FindDocumentByID", ctx, documentID).Return(nil, apperrors.ErrNotFound).Once()

	doc, err := suite.service.GetDocumentByID(ctx, documentID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(doc)
}

func (suite *DocumentServiceTestSuite) TestUpdateDocument_ReplacesItemsAndRecomputes() {
	ctx := context.Background()
	documentID := uuid.NewString()
	updaterUserID := uuid.NewString()

	existing := &domain.Document{
		DocumentID:     documentID,
		DocumentType:   domain.DocumentTypeInvoice,
		DocumentNumber: "INV-2026-0003",
		CounterpartyID: uuid.NewString(),
		Status:         domain.DocumentStatusDraft,
		CurrencyCode:   "USD",
		Items: []domain.LineItem{
			{LineItemID: uuid.NewString(), DocumentID: documentID, Description: "Old line", Quantity: 1, UnitAmount: 10},
		},
		Subtotal: 10, TaxTotal: 0, Total: 10,
	}

	newItems := []dto.LineItemInput{
		{Description: "New line", Quantity: 3, UnitAmount: 40, TaxRatePercent: 10},
	}

	suite.mockRepo.On("FindDocumentByID", ctx, documentID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateDocument", ctx, mock.AnythingOfType("domain.Document")).Return(nil).Once()

	updated, err := suite.service.UpdateDocument(ctx, documentID, dto.UpdateDocumentRequest{Items: &newItems}, updaterUserID)

	suite.Require().NoError(err)
	suite.Len(updated.Items, 1)
	suite.Equal("New line", updated.Items[0].Description)
	suite.InDelta(120.0, updated.Subtotal, 1e-9)
	suite.InDelta(12.0, updated.TaxTotal, 1e-9)
	suite.InDelta(132.0, updated.Total, 1e-9)
	suite.Equal(updaterUserID, updated.LastUpdatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}
