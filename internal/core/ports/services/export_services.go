package services

import (
	"context"

	"github.com/petrobook/petrobook/internal/core/domain"
	"github.com/petrobook/petrobook/internal/dto"
)

// ExportSvcFacade defines operations for rendering documents to printable formats.
type ExportSvcFacade interface {
	// RenderDocumentPDF fetches a document and renders it as an A4 PDF.
	// A non-empty logoPNG is drawn in the first-page header. It returns
	// the PDF bytes and the suggested download filename.
	RenderDocumentPDF(ctx context.Context, documentID string, logoPNG []byte) ([]byte, string, error)
}

// EmailSvc defines operations for delivering documents over email.
type EmailSvc interface {
	// SendDocumentEmail sends the rendered document PDF to the recipient as
	// an attachment.
	SendDocumentEmail(ctx context.Context, doc *domain.Document, req dto.SendDocumentRequest, pdf []byte) error
}
