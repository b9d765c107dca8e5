package services

import (
	"context"

	"github.com/petrobook/petrobook/internal/core/domain"
	"github.com/petrobook/petrobook/internal/dto"
)

// DocumentReaderSvc defines read operations for invoices and bills
type DocumentReaderSvc interface {
	// GetDocumentByID retrieves a specific document by its unique identifier.
	GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocuments retrieves a paginated list of documents of the given type.
	// It returns the documents and a token for fetching the next page, if any.
	ListDocuments(ctx context.Context, docType domain.DocumentType, limit int, nextToken *string) ([]domain.Document, *string, error)

	// ListDocumentsByCounterparty retrieves documents issued to or received from a counterparty.
	ListDocumentsByCounterparty(ctx context.Context, counterpartyID string, limit int, offset int) ([]domain.Document, error)
}

// DocumentWriterSvc defines write operations for invoices and bills
type DocumentWriterSvc interface {
	// CreateDocument persists a new document with its line items.
	// Totals are computed from the line items, never taken from the request.
	CreateDocument(ctx context.Context, docType domain.DocumentType, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, error)

	// UpdateDocument updates an existing document's details and recomputes totals.
	UpdateDocument(ctx context.Context, documentID string, req dto.UpdateDocumentRequest, updaterUserID string) (*domain.Document, error)

	// UpdateDocumentStatus transitions a document to a new status.
	UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, updaterUserID string) (*domain.Document, error)

	// DeleteDocument removes a document and its line items.
	DeleteDocument(ctx context.Context, documentID string, deleterUserID string) error
}

// DocumentDispatchSvc defines operations for delivering documents to counterparties
type DocumentDispatchSvc interface {
	// SendDocument renders the document as a PDF and emails it to the recipient,
	// then marks the document as sent.
	SendDocument(ctx context.Context, documentID string, req dto.SendDocumentRequest, senderUserID string) error
}

// DocumentSvcFacade combines all document-related service interfaces
// This is a facade for clients that need access to all operations
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
	DocumentDispatchSvc
}
