package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/petrobook/petrobook/internal/apperrors"
	"github.com/petrobook/petrobook/internal/core/domain"
	portssvc "github.com/petrobook/petrobook/internal/core/ports/services"
	"github.com/petrobook/petrobook/internal/dto"
	"github.com/petrobook/petrobook/internal/platform/config"
)

// emailService implements EmailSvc over plain SMTP. The message is a
// multipart/mixed MIME envelope with an HTML body and the rendered PDF
// as a base64 attachment.
type emailService struct {
	BaseService
	cfg *config.Config
}

// NewEmailService creates a new email service.
func NewEmailService(cfg *config.Config) portssvc.EmailSvc {
	return &emailService{cfg: cfg}
}

// Ensure emailService implements the EmailSvc interface
var _ portssvc.EmailSvc = (*emailService)(nil)

const mimeBoundary = "PETROBOOK-MIME-BOUNDARY"

func (s *emailService) SendDocumentEmail(ctx context.Context, doc *domain.Document, req dto.SendDocumentRequest, pdf []byte) error {
	if s.cfg.SMTPHost == "" {
		return fmt.Errorf("smtp is not configured: %w", apperrors.ErrValidation)
	}

	subject := req.Subject
	if subject == "" {
		subject = fmt.Sprintf("%s %s from %s", documentLabel(doc.DocumentType), doc.DocumentNumber, s.cfg.CompanyName)
	}
	body := req.Message
	if body == "" {
		body = fmt.Sprintf("<p>Please find attached %s %s.</p>", documentLabel(doc.DocumentType), doc.DocumentNumber)
	}
	filename := fmt.Sprintf("invoice-%s.pdf", doc.DocumentNumber)

	msg := buildMIMEMessage(s.cfg.FromName, s.cfg.FromEmail, req.Recipient, subject, body, filename, pdf)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{req.Recipient}, msg); err != nil {
		s.LogError(ctx, err, "Failed to send document email",
			slog.String("document_id", doc.DocumentID),
			slog.String("smtp_host", s.cfg.SMTPHost))
		return fmt.Errorf("failed to send email: %v: %w", err, apperrors.ErrDelivery)
	}

	s.LogInfo(ctx, "Document email sent",
		slog.String("document_id", doc.DocumentID),
		slog.String("recipient", req.Recipient))
	return nil
}

func documentLabel(t domain.DocumentType) string {
	if t == domain.DocumentTypeBill {
		return "Bill"
	}
	return "Invoice"
}

// buildMIMEMessage assembles a multipart/mixed message with an HTML
// part and one PDF attachment.
func buildMIMEMessage(fromName, fromEmail, to, subject, body, filename string, pdf []byte) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s <%s>\r\n", fromName, fromEmail)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%s\r\n", mimeBoundary)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", mimeBoundary)
	buf.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", mimeBoundary)
	buf.WriteString("Content-Type: application/pdf\r\n")
	buf.WriteString("Content-Transfer-Encoding: base64\r\n")
	fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n", filename)
	buf.WriteString("\r\n")

	encoded := base64.StdEncoding.EncodeToString(pdf)
	// RFC 2045 caps encoded lines at 76 characters.
	for len(encoded) > 76 {
		buf.WriteString(encoded[:76])
		buf.WriteString("\r\n")
		encoded = encoded[76:]
	}
	buf.WriteString(encoded)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s--\r\n", mimeBoundary)
	return buf.Bytes()
}
