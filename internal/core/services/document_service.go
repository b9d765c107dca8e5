package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/petrobook/petrobook/internal/apperrors"
	"github.com/petrobook/petrobook/internal/core/billing"
	"github.com/petrobook/petrobook/internal/core/domain"
	portsrepo "github.com/petrobook/petrobook/internal/core/ports/repositories"
	portssvc "github.com/petrobook/petrobook/internal/core/ports/services"
	"github.com/petrobook/petrobook/internal/dto"
)

// documentService implements the DocumentSvcFacade interface
type documentService struct {
	BaseService
	documentRepo     portsrepo.DocumentRepositoryWithTx
	counterpartyRepo portsrepo.CounterpartyReader
	exporter         portssvc.ExportSvcFacade
	email            portssvc.EmailSvc
}

// DocumentServiceOption is a functional option for configuring the document service
type DocumentServiceOption func(*documentService)

// WithCounterpartyReader adds the counterparty lookup used to snapshot
// name and address onto new documents.
func WithCounterpartyReader(repo portsrepo.CounterpartyReader) DocumentServiceOption {
	return func(s *documentService) {
		s.counterpartyRepo = repo
	}
}

// WithExporter adds the PDF exporter used when sending documents.
func WithExporter(exporter portssvc.ExportSvcFacade) DocumentServiceOption {
	return func(s *documentService) {
		s.exporter = exporter
	}
}

// WithEmailSender adds the email delivery dependency.
func WithEmailSender(email portssvc.EmailSvc) DocumentServiceOption {
	return func(s *documentService) {
		s.email = email
	}
}

// NewDocumentService creates a new document service with the provided options
func NewDocumentService(repo portsrepo.DocumentRepositoryWithTx, options ...DocumentServiceOption) portssvc.DocumentSvcFacade {
	svc := &documentService{
		documentRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure documentService implements the DocumentSvcFacade interface
var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func (s *documentService) CreateDocument(ctx context.Context, docType domain.DocumentType, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, error) {
	now := time.Now()
	documentID := uuid.NewString()

	status := req.Status
	if status == "" {
		status = domain.DocumentStatusDraft
	}

	doc := domain.Document{
		DocumentID:     documentID,
		DocumentType:   docType,
		DocumentNumber: req.DocumentNumber,
		CounterpartyID: req.CounterpartyID,
		IssueDate:      req.IssueDate,
		DueDate:        req.DueDate,
		Status:         status,
		CurrencyCode:   req.CurrencyCode,
		Notes:          req.Notes,
		PaymentTerms:   req.PaymentTerms,
		Items:          buildLineItems(documentID, req.Items),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// Snapshot the counterparty name and address so the document stays
	// readable even after the counterparty is edited or deactivated.
	if s.counterpartyRepo != nil {
		cp, err := s.counterpartyRepo.FindCounterpartyByID(ctx, req.CounterpartyID)
		if err != nil {
			s.LogError(ctx, err, "Failed to find counterparty for document",
				slog.String("counterparty_id", req.CounterpartyID))
			return nil, fmt.Errorf("invalid counterparty: %w", err)
		}
		doc.CounterpartyName = cp.Name
		doc.CounterpartyAddress = cp.Address
	}

	applyTotals(&doc)

	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		s.LogError(ctx, err, "Failed to save document in repository",
			slog.String("document_id", doc.DocumentID))
		return nil, err
	}

	s.LogInfo(ctx, "Document created successfully",
		slog.String("document_id", doc.DocumentID),
		slog.String("document_type", string(docType)))
	return &doc, nil
}

func (s *documentService) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find document by ID",
				slog.String("document_id", documentID))
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, docType domain.DocumentType, limit int, nextToken *string) ([]domain.Document, *string, error) {
	docs, next, err := s.documentRepo.ListDocuments(ctx, docType, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list documents",
			slog.String("document_type", string(docType)), slog.Int("limit", limit))
		return nil, nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return docs, next, nil
}

func (s *documentService) ListDocumentsByCounterparty(ctx context.Context, counterpartyID string, limit int, offset int) ([]domain.Document, error) {
	docs, err := s.documentRepo.ListDocumentsByCounterparty(ctx, counterpartyID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list documents by counterparty",
			slog.String("counterparty_id", counterpartyID))
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return docs, nil
}

func (s *documentService) UpdateDocument(ctx context.Context, documentID string, req dto.UpdateDocumentRequest, updaterUserID string) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find document for update",
				slog.String("document_id", documentID))
		}
		return nil, err
	}

	if req.DocumentNumber != nil {
		doc.DocumentNumber = *req.DocumentNumber
	}
	if req.CounterpartyID != nil && *req.CounterpartyID != doc.CounterpartyID {
		doc.CounterpartyID = *req.CounterpartyID
		if s.counterpartyRepo != nil {
			cp, err := s.counterpartyRepo.FindCounterpartyByID(ctx, doc.CounterpartyID)
			if err != nil {
				s.LogError(ctx, err, "Failed to find counterparty for document update",
					slog.String("counterparty_id", doc.CounterpartyID))
				return nil, fmt.Errorf("invalid counterparty: %w", err)
			}
			doc.CounterpartyName = cp.Name
			doc.CounterpartyAddress = cp.Address
		}
	}
	if req.IssueDate != nil {
		doc.IssueDate = *req.IssueDate
	}
	if req.DueDate != nil {
		doc.DueDate = *req.DueDate
	}
	if req.Status != nil {
		doc.Status = *req.Status
	}
	if req.Notes != nil {
		doc.Notes = *req.Notes
	}
	if req.PaymentTerms != nil {
		doc.PaymentTerms = *req.PaymentTerms
	}
	if req.Items != nil {
		doc.Items = buildLineItems(doc.DocumentID, *req.Items)
	}

	applyTotals(doc)

	doc.LastUpdatedAt = time.Now()
	doc.LastUpdatedBy = updaterUserID

	if err := s.documentRepo.UpdateDocument(ctx, *doc); err != nil {
		s.LogError(ctx, err, "Failed to update document in repository",
			slog.String("document_id", documentID))
		return nil, err
	}

	s.LogInfo(ctx, "Document updated successfully", slog.String("document_id", documentID))
	return doc, nil
}

func (s *documentService) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, updaterUserID string) (*domain.Document, error) {
	now := time.Now()
	if err := s.documentRepo.UpdateDocumentStatus(ctx, documentID, status, updaterUserID, now); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update document status",
				slog.String("document_id", documentID), slog.String("status", string(status)))
		}
		return nil, err
	}
	return s.documentRepo.FindDocumentByID(ctx, documentID)
}

func (s *documentService) DeleteDocument(ctx context.Context, documentID string, deleterUserID string) error {
	if err := s.documentRepo.DeleteDocument(ctx, documentID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete document",
				slog.String("document_id", documentID))
		}
		return err
	}
	s.LogInfo(ctx, "Document deleted", slog.String("document_id", documentID),
		slog.String("deleted_by", deleterUserID))
	return nil
}

func (s *documentService) SendDocument(ctx context.Context, documentID string, req dto.SendDocumentRequest, senderUserID string) error {
	if s.exporter == nil || s.email == nil {
		return fmt.Errorf("document delivery is not configured: %w", apperrors.ErrValidation)
	}

	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find document for sending",
				slog.String("document_id", documentID))
		}
		return err
	}

	var logoPNG []byte
	if req.LogoPNG != "" {
		logoPNG, err = base64.StdEncoding.DecodeString(req.LogoPNG)
		if err != nil {
			return fmt.Errorf("invalid logo encoding: %w", apperrors.ErrValidation)
		}
	}

	pdfBytes, _, err := s.exporter.RenderDocumentPDF(ctx, documentID, logoPNG)
	if err != nil {
		s.LogError(ctx, err, "Failed to render document PDF for sending",
			slog.String("document_id", documentID))
		return err
	}

	if err := s.email.SendDocumentEmail(ctx, doc, req, pdfBytes); err != nil {
		s.LogError(ctx, err, "Failed to email document",
			slog.String("document_id", documentID),
			slog.String("recipient", req.Recipient))
		return err
	}

	// Drafts move to sent after a successful delivery; paid or void
	// documents keep their status.
	if doc.Status == domain.DocumentStatusDraft {
		now := time.Now()
		if err := s.documentRepo.UpdateDocumentStatus(ctx, documentID, domain.DocumentStatusSent, senderUserID, now); err != nil {
			s.LogError(ctx, err, "Failed to mark document as sent",
				slog.String("document_id", documentID))
			return err
		}
	}

	s.LogInfo(ctx, "Document sent successfully",
		slog.String("document_id", documentID),
		slog.String("recipient", req.Recipient))
	return nil
}

// buildLineItems converts submitted line inputs into domain line items
// with fresh IDs and sequential positions.
func buildLineItems(documentID string, inputs []dto.LineItemInput) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(inputs))
	for i, in := range inputs {
		items = append(items, domain.LineItem{
			LineItemID:     uuid.NewString(),
			DocumentID:     documentID,
			Position:       i,
			Description:    in.Description,
			Quantity:       in.Quantity,
			UnitAmount:     in.UnitAmount,
			TaxRatePercent: in.TaxRatePercent,
		})
	}
	return items
}

// applyTotals recomputes the stored totals from the line items at full
// float precision. Rounding happens only at display boundaries.
func applyTotals(doc *domain.Document) {
	totals := billing.Aggregate(doc.Items)
	doc.Subtotal = totals.Subtotal
	doc.TaxTotal = totals.TaxTotal
	doc.Total = totals.Total
}
