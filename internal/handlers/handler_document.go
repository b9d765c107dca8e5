package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petrobook/petrobook/internal/apperrors"
	"github.com/petrobook/petrobook/internal/core/domain"
	portssvc "github.com/petrobook/petrobook/internal/core/ports/services"
	"github.com/petrobook/petrobook/internal/dto"
	"github.com/petrobook/petrobook/internal/middleware"
)

// documentHandler handles HTTP requests for invoices and bills. The
// document type is fixed per route group so the same handler serves
// both resources.
type documentHandler struct {
	docType         domain.DocumentType
	documentService portssvc.DocumentSvcFacade
	exportService   portssvc.ExportSvcFacade
}

// newDocumentHandler creates a new documentHandler bound to one document type.
func newDocumentHandler(docType domain.DocumentType, ds portssvc.DocumentSvcFacade, es portssvc.ExportSvcFacade) *documentHandler {
	return &documentHandler{
		docType:         docType,
		documentService: ds,
		exportService:   es,
	}
}

// registerDocumentRoutes registers document routes on an already-typed group
// (e.g. /api/v1/invoices or /api/v1/bills).
func registerDocumentRoutes(rg *gin.RouterGroup, docType domain.DocumentType, ds portssvc.DocumentSvcFacade, es portssvc.ExportSvcFacade) {
	h := newDocumentHandler(docType, ds, es)

	rg.POST("", h.createDocument)
	rg.GET("", h.listDocuments)
	rg.GET("/:id", h.getDocument)
	rg.PUT("/:id", h.updateDocument)
	rg.PATCH("/:id/status", h.updateDocumentStatus)
	rg.DELETE("/:id", h.deleteDocument)
	rg.GET("/:id/pdf", h.downloadDocumentPDF)
	rg.POST("/:id/send", h.sendDocument)
}

// createDocument godoc
// @Summary Create a new invoice or bill
// @Description Creates a new document with its line items. Totals are computed server-side.
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   document body dto.CreateDocumentRequest true "Document details"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create document"
// @Security BearerAuth
// @Router /invoices [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID), slog.String("document_type", string(h.docType)))
	logger.Info("Received request to create document", slog.String("document_number", req.DocumentNumber))

	doc, err := h.documentService.CreateDocument(c.Request.Context(), h.docType, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating document", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Counterparty not found creating document", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create document in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create document"})
		}
		return
	}

	logger.Info("Document created successfully", slog.String("document_id", doc.DocumentID))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// getDocument godoc
// @Summary Get a document by ID
// @Description Retrieves an invoice or bill with its line items
// @Tags documents
// @Produce  json
// @Param   id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Document not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve document"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	logger = logger.With(slog.String("target_document_id", documentID))

	doc, err := h.documentService.GetDocumentByID(c.Request.Context(), documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Document not found")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Document not found"})
		} else {
			logger.Error("Failed to get document from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve document"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// listDocuments godoc
// @Summary List documents
// @Description Retrieves documents of the group's type, newest first, with keyset pagination
// @Tags documents
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Token for the next page"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list documents"
// @Security BearerAuth
// @Router /invoices [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	docs, nextToken, err := h.documentService.ListDocuments(c.Request.Context(), h.docType, params.Limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid pagination token listing documents", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to list documents from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list documents"})
		return
	}

	resp := dto.ListDocumentsResponse{
		Documents: make([]dto.DocumentResponse, 0, len(docs)),
		NextToken: nextToken,
	}
	for i := range docs {
		resp.Documents = append(resp.Documents, dto.ToDocumentResponse(&docs[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// updateDocument godoc
// @Summary Update a document
// @Description Updates fields of a document; when items are provided the full set is replaced and totals recomputed
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   id path string true "Document ID"
// @Param   document body dto.UpdateDocumentRequest true "Fields to update"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Document not found"
// @Failure 500 {object} ErrorResponse "Failed to update document"
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *documentHandler) updateDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_document_id", documentID), slog.String("updater_user_id", updaterUserID))

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), documentID, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Document not found for update")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Document not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating document", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to update document in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update document"})
		}
		return
	}

	logger.Info("Document updated successfully")
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// updateDocumentStatus godoc
// @Summary Update a document's status
// @Description Transitions a document to a new display status
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   id path string true "Document ID"
// @Param   status body dto.UpdateDocumentStatusRequest true "New status"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Document not found"
// @Failure 500 {object} ErrorResponse "Failed to update document status"
// @Security BearerAuth
// @Router /invoices/{id}/status [patch]
func (h *documentHandler) updateDocumentStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	var req dto.UpdateDocumentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	doc, err := h.documentService.UpdateDocumentStatus(c.Request.Context(), documentID, req.Status, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Document not found"})
		} else {
			logger.Error("Failed to update document status", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update document status"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// deleteDocument godoc
// @Summary Delete a document
// @Description Removes a document and its line items
// @Tags documents
// @Produce  json
// @Param   id path string true "Document ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Document not found"
// @Failure 500 {object} ErrorResponse "Failed to delete document"
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *documentHandler) deleteDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	deleterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), documentID, deleterUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Document not found"})
		} else {
			logger.Error("Failed to delete document", slog.String("error", err.Error()), slog.String("target_document_id", documentID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete document"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// downloadDocumentPDF godoc
// @Summary Download a document as PDF
// @Description Renders the document as an A4 PDF and returns it as a file attachment
// @Tags documents
// @Produce  application/pdf
// @Param   id path string true "Document ID"
// @Param   logo query string false "Base64-encoded PNG logo for the header"
// @Success 200 {file} binary "PDF file"
// @Failure 400 {object} ErrorResponse "Missing document ID or invalid logo encoding"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Document not found"
// @Failure 500 {object} ErrorResponse "Failed to render PDF"
// @Security BearerAuth
// @Router /invoices/{id}/pdf [get]
func (h *documentHandler) downloadDocumentPDF(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")
	if documentID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Document ID is required"})
		return
	}

	logger = logger.With(slog.String("target_document_id", documentID))

	var logoPNG []byte
	if encoded := c.Query("logo"); encoded != "" {
		var err error
		logoPNG, err = base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid logo encoding"})
			return
		}
	}

	pdfBytes, filename, err := h.exportService.RenderDocumentPDF(c.Request.Context(), documentID, logoPNG)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Document not found for PDF export")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Document not found"})
		} else {
			logger.Error("Failed to render document PDF", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to render PDF"})
		}
		return
	}

	logger.Info("Document PDF rendered", slog.String("filename", filename), slog.Int("size_bytes", len(pdfBytes)))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// sendDocument godoc
// @Summary Send a document by email
// @Description Renders the document as a PDF and emails it to the recipient. Draft documents become sent on success.
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   id path string true "Document ID"
// @Param   send body dto.SendDocumentRequest true "Recipient and message"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Document not found"
// @Failure 500 {object} ErrorResponse "Failed to send document"
// @Failure 502 {object} ErrorResponse "Email delivery failed"
// @Security BearerAuth
// @Router /invoices/{id}/send [post]
func (h *documentHandler) sendDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	var req dto.SendDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SendDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	senderUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_document_id", documentID), slog.String("sender_user_id", senderUserID))
	logger.Info("Received request to send document", slog.String("recipient", req.Recipient))

	if err := h.documentService.SendDocument(c.Request.Context(), documentID, req, senderUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Document not found for sending")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Document not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error sending document", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrDelivery) {
			logger.Error("Email delivery failed", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to deliver email"})
		} else {
			logger.Error("Failed to send document", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to send document"})
		}
		return
	}

	logger.Info("Document sent successfully")
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}
