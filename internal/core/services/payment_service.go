package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/petrobook/petrobook/internal/apperrors"
	"github.com/petrobook/petrobook/internal/core/domain"
	portsrepo "github.com/petrobook/petrobook/internal/core/ports/repositories"
	portssvc "github.com/petrobook/petrobook/internal/core/ports/services"
	"github.com/petrobook/petrobook/internal/dto"
	"github.com/shopspring/decimal"
)

// paymentService implements the PaymentSvcFacade interface
type paymentService struct {
	BaseService
	paymentRepo  portsrepo.PaymentRepositoryFacade
	documentRepo portsrepo.DocumentRepositoryFacade
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, documentRepo portsrepo.DocumentRepositoryFacade) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo:  paymentRepo,
		documentRepo: documentRepo,
	}
}

// Ensure paymentService implements the PaymentSvcFacade interface
var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) RecordPayment(ctx context.Context, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("payment amount must be positive: %w", apperrors.ErrValidation)
	}

	doc, err := s.documentRepo.FindDocumentByID(ctx, req.DocumentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find document for payment",
				slog.String("document_id", req.DocumentID))
		}
		return nil, err
	}
	if doc.Status == domain.DocumentStatusVoid {
		return nil, fmt.Errorf("cannot record payment against a void document: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	payment := domain.Payment{
		PaymentID:      uuid.NewString(),
		DocumentID:     doc.DocumentID,
		CounterpartyID: doc.CounterpartyID,
		Amount:         req.Amount,
		PaymentDate:    req.PaymentDate,
		Method:         req.Method,
		Reference:      req.Reference,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save payment in repository",
			slog.String("payment_id", payment.PaymentID))
		return nil, err
	}

	s.settleDocumentStatus(ctx, doc, creatorUserID, now)

	s.LogInfo(ctx, "Payment recorded successfully",
		slog.String("payment_id", payment.PaymentID),
		slog.String("document_id", doc.DocumentID))
	return &payment, nil
}

func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find payment by ID",
				slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context, limit int, offset int) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.ListPayments(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments",
			slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}

func (s *paymentService) ListPaymentsByDocument(ctx context.Context, documentID string) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.ListPaymentsByDocument(ctx, documentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments by document",
			slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, paymentID string, deleterUserID string) error {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find payment for deletion",
				slog.String("payment_id", paymentID))
		}
		return err
	}

	if err := s.paymentRepo.DeletePayment(ctx, paymentID); err != nil {
		s.LogError(ctx, err, "Failed to delete payment",
			slog.String("payment_id", paymentID))
		return err
	}

	// The document may drop back below fully paid once the payment is gone.
	if doc, err := s.documentRepo.FindDocumentByID(ctx, payment.DocumentID); err == nil {
		s.settleDocumentStatus(ctx, doc, deleterUserID, time.Now())
	}

	s.LogInfo(ctx, "Payment deleted", slog.String("payment_id", paymentID))
	return nil
}

// settleDocumentStatus re-derives the paid flag from the recorded
// payments. Paid is set when the payment sum covers the rounded total;
// a previously paid document reverts to sent when it no longer does.
func (s *paymentService) settleDocumentStatus(ctx context.Context, doc *domain.Document, userID string, now time.Time) {
	if doc.Status == domain.DocumentStatusVoid {
		return
	}

	payments, err := s.paymentRepo.ListPaymentsByDocument(ctx, doc.DocumentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load payments for status settlement",
			slog.String("document_id", doc.DocumentID))
		return
	}

	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	total := decimal.NewFromFloat(doc.Total).Round(2)

	var target domain.DocumentStatus
	if paid.GreaterThanOrEqual(total) && total.GreaterThan(decimal.Zero) {
		target = domain.DocumentStatusPaid
	} else if doc.Status == domain.DocumentStatusPaid {
		target = domain.DocumentStatusSent
	} else {
		return
	}

	if target == doc.Status {
		return
	}
	if err := s.documentRepo.UpdateDocumentStatus(ctx, doc.DocumentID, target, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update document status after payment change",
			slog.String("document_id", doc.DocumentID),
			slog.String("status", string(target)))
	}
}
