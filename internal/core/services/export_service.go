package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/petrobook/petrobook/internal/apperrors"
	portsrepo "github.com/petrobook/petrobook/internal/core/ports/repositories"
	portssvc "github.com/petrobook/petrobook/internal/core/ports/services"
	"github.com/petrobook/petrobook/internal/pdf"
	"github.com/petrobook/petrobook/internal/platform/config"
)

// exportService implements the ExportSvcFacade, rendering documents to
// A4 PDFs via the pdf package.
type exportService struct {
	BaseService
	documentRepo portsrepo.DocumentReader
	company      pdf.CompanyInfo
}

// NewExportService creates a new export service.
func NewExportService(repo portsrepo.DocumentReader, cfg *config.Config) portssvc.ExportSvcFacade {
	return &exportService{
		documentRepo: repo,
		company: pdf.CompanyInfo{
			Name:    cfg.CompanyName,
			Address: cfg.CompanyAddress,
			Phone:   cfg.CompanyPhone,
			Email:   cfg.CompanyEmail,
		},
	}
}

// Ensure exportService implements the ExportSvcFacade interface
var _ portssvc.ExportSvcFacade = (*exportService)(nil)

// RenderDocumentPDF fetches the document and renders it. The returned
// filename follows the invoice-<documentNumber>.pdf convention.
func (s *exportService) RenderDocumentPDF(ctx context.Context, documentID string, logoPNG []byte) ([]byte, string, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find document for PDF export",
				slog.String("document_id", documentID))
		}
		return nil, "", err
	}

	out, err := pdf.BuildDocumentPDF(doc, s.company, logoPNG)
	if err != nil {
		s.LogError(ctx, err, "Failed to render document PDF",
			slog.String("document_id", documentID))
		return nil, "", fmt.Errorf("failed to render pdf: %w", err)
	}

	filename := fmt.Sprintf("invoice-%s.pdf", doc.DocumentNumber)
	s.LogDebug(ctx, "Document PDF rendered",
		slog.String("document_id", documentID),
		slog.Int("bytes", len(out)))
	return out, filename, nil
}
