package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/petrobook/petrobook/internal/apperrors"
	"github.com/petrobook/petrobook/internal/core/domain"
	portssvc "github.com/petrobook/petrobook/internal/core/ports/services"
	"github.com/petrobook/petrobook/internal/dto"
	"github.com/petrobook/petrobook/internal/middleware"
)

// --- Mock DocumentService ---
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) ListDocuments(ctx context.Context, docType domain.DocumentType, limit int, nextToken *string) ([]domain.Document, *string, error) {
	args := m.Called(ctx, docType, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Document), token, args.Error(2)
}

func (m *MockDocumentService) ListDocumentsByCounterparty(ctx context.Context, counterpartyID string, limit int, offset int) ([]domain.Document, error) {
	args := m.Called(ctx, counterpartyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentService) CreateDocument(ctx context.Context, docType domain.DocumentType, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, error) {
	args := m.Called(ctx, docType, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) UpdateDocument(ctx context.Context, documentID string, req dto.UpdateDocumentRequest, updaterUserID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, updaterUserID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID, status, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) DeleteDocument(ctx context.Context, documentID string, deleterUserID string) error {
	args := m.Called(ctx, documentID, deleterUserID)
	return args.Error(0)
}

func (m *MockDocumentService) SendDocument(ctx context.Context, documentID string, req dto.SendDocumentRequest, senderUserID string) error {
	args := m.Called(ctx, documentID, req, senderUserID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.DocumentSvcFacade = (*MockDocumentService)(nil)

// --- Mock ExportService ---
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) RenderDocumentPDF(ctx context.Context, documentID string, logoPNG []byte) ([]byte, string, error) {
	args := m.Called(ctx, documentID, logoPNG)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

var _ portssvc.ExportSvcFacade = (*MockExportService)(nil)

// --- Test Suite ---
type DocumentHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockDocService    *MockDocumentService
	mockExportService *MockExportService
	jwtSecret         string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *DocumentHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "petrobook-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *DocumentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockDocService = new(MockDocumentService)
	suite.mockExportService = new(MockExportService)

	registerDocumentRoutes(suite.router.Group("/api/v1/invoices"), domain.DocumentTypeInvoice, suite.mockDocService, suite.mockExportService)
}

func (suite *DocumentHandlerTestSuite) authedRequest(method, url string, body *strings.Reader) *http.Request {
	if body == nil {
		body = strings.NewReader("")
	}
	req, _ := http.NewRequest(method, url, body)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// --- Test Cases ---

func (suite *DocumentHandlerTestSuite) TestGetDocument_Success() {
	docID := uuid.NewString()
	expected := &domain.Document{
		DocumentID:     docID,
		DocumentType:   domain.DocumentTypeInvoice,
		DocumentNumber: "INV-1001",
		Status:         domain.DocumentStatusSent,
		CurrencyCode:   "USD",
	}

	suite.mockDocService.On("GetDocumentByID", mock.Anything, docID).Return(expected, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/invoices/"+docID, nil))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DocumentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(docID, resp.DocumentID)
	suite.Equal("INV-1001", resp.DocumentNumber)
	suite.mockDocService.AssertExpectations(suite.T())
}

func (suite *DocumentHandlerTestSuite) TestGetDocument_NotFound() {
	docID := uuid.NewString()
	suite.mockDocService.On("GetDocumentByID", mock.Anything, docID).Return(nil, apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/invoices/"+docID, nil))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockDocService.AssertExpectations(suite.T())
}

func (suite *DocumentHandlerTestSuite) TestGetDocument_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/invoices/"+uuid.NewString(), nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockDocService.AssertNotCalled(suite.T(), "GetDocumentByID")
}

func (suite *DocumentHandlerTestSuite) TestDownloadDocumentPDF_Success() {
	docID := uuid.NewString()
	pdfBytes := []byte("%PDF-1.3 fake content")
	suite.mockExportService.On("RenderDocumentPDF", mock.Anything, docID, []byte(nil)).
		Return(pdfBytes, "invoice-INV-1001.pdf", nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, fmt.Sprintf("/api/v1/invoices/%s/pdf", docID), nil))

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/pdf", w.Header().Get("Content-Type"))
	suite.Equal(`attachment; filename="invoice-INV-1001.pdf"`, w.Header().Get("Content-Disposition"))
	suite.Equal(pdfBytes, w.Body.Bytes())
	suite.mockExportService.AssertExpectations(suite.T())
}

func (suite *DocumentHandlerTestSuite) TestDownloadDocumentPDF_NotFound() {
	docID := uuid.NewString()
	suite.mockExportService.On("RenderDocumentPDF", mock.Anything, docID, []byte(nil)).
		Return(nil, "", apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, fmt.Sprintf("/api/v1/invoices/%s/pdf", docID), nil))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockExportService.AssertExpectations(suite.T())
}

func (suite *DocumentHandlerTestSuite) TestDownloadDocumentPDF_InvalidLogo() {
	docID := uuid.NewString()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, fmt.Sprintf("/api/v1/invoices/%s/pdf?logo=%%21not-base64", docID), nil))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockExportService.AssertNotCalled(suite.T(), "RenderDocumentPDF")
}

func (suite *DocumentHandlerTestSuite) TestSendDocument_InvalidRecipient() {
	docID := uuid.NewString()
	body := strings.NewReader(`{"recipient":"not-an-email"}`)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, fmt.Sprintf("/api/v1/invoices/%s/send", docID), body))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDocService.AssertNotCalled(suite.T(), "SendDocument")
}

func (suite *DocumentHandlerTestSuite) TestSendDocument_Success() {
	docID := uuid.NewString()
	body := strings.NewReader(`{"recipient":"billing@example.com","subject":"Invoice INV-1001"}`)

	suite.mockDocService.On("SendDocument", mock.Anything, docID,
		mock.MatchedBy(func(req dto.SendDocumentRequest) bool {
			return req.Recipient == "billing@example.com"
		}), mock.AnythingOfType("string")).Return(nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, fmt.Sprintf("/api/v1/invoices/%s/send", docID), body))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockDocService.AssertExpectations(suite.T())
}

func (suite *DocumentHandlerTestSuite) TestListDocuments_PassesTypeAndLimit() {
	next := "token-123"
	docs := []domain.Document{
		{DocumentID: uuid.NewString(), DocumentType: domain.DocumentTypeInvoice, DocumentNumber: "INV-1"},
	}
	suite.mockDocService.On("ListDocuments", mock.Anything, domain.DocumentTypeInvoice, 5, (*string)(nil)).
		Return(docs, &next, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/invoices?limit=5", nil))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListDocumentsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Documents, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
	suite.mockDocService.AssertExpectations(suite.T())
}

func TestDocumentHandler(t *testing.T) {
	suite.Run(t, new(DocumentHandlerTestSuite))
}
