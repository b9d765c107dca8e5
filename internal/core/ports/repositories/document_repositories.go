package repositories

import (
	"context"
	"time"

	"github.com/petrobook/petrobook/internal/core/domain"
)

// DocumentReader defines read operations for documents (invoices and bills).
type DocumentReader interface {
	// FindDocumentByID retrieves a document header with its ordered line items.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocuments retrieves a keyset-paginated list of documents of one
	// type, newest issue date first. Line items are not loaded.
	ListDocuments(ctx context.Context, docType domain.DocumentType, limit int, nextToken *string) ([]domain.Document, *string, error)

	// ListDocumentsByCounterparty retrieves documents for one counterparty.
	ListDocumentsByCounterparty(ctx context.Context, counterpartyID string, limit int, offset int) ([]domain.Document, error)
}

// DocumentWriter defines write operations for documents.
type DocumentWriter interface {
	// SaveDocument persists a new document header and its line items in one
	// database transaction.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// UpdateDocument updates a document header and replaces its line items
	// in one database transaction.
	UpdateDocument(ctx context.Context, doc domain.Document) error

	// UpdateDocumentStatus updates only the display status.
	UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, userID string, now time.Time) error

	// DeleteDocument removes a document and its line items.
	DeleteDocument(ctx context.Context, documentID string) error
}

// DocumentRepositoryFacade combines all document repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}

// DocumentRepositoryWithTx extends the facade with transaction capabilities.
type DocumentRepositoryWithTx interface {
	DocumentRepositoryFacade
	TransactionManager
}
