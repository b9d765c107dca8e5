package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petrobook/petrobook/internal/apperrors"
	"github.com/petrobook/petrobook/internal/core/domain"
	portssvc "github.com/petrobook/petrobook/internal/core/ports/services"
	"github.com/petrobook/petrobook/internal/dto"
	"github.com/petrobook/petrobook/internal/middleware"
)

// counterpartyHandler handles HTTP requests for customers and suppliers.
// The kind is fixed per route group so the same handler serves both.
type counterpartyHandler struct {
	kind                domain.CounterpartyKind
	counterpartyService portssvc.CounterpartySvcFacade
	documentService     portssvc.DocumentReaderSvc
}

// newCounterpartyHandler creates a new counterpartyHandler bound to one kind.
func newCounterpartyHandler(kind domain.CounterpartyKind, cs portssvc.CounterpartySvcFacade, ds portssvc.DocumentReaderSvc) *counterpartyHandler {
	return &counterpartyHandler{
		kind:                kind,
		counterpartyService: cs,
		documentService:     ds,
	}
}

// registerCounterpartyRoutes registers counterparty routes on an already-typed
// group (e.g. /api/v1/customers or /api/v1/suppliers).
func registerCounterpartyRoutes(rg *gin.RouterGroup, kind domain.CounterpartyKind, cs portssvc.CounterpartySvcFacade, ds portssvc.DocumentReaderSvc) {
	h := newCounterpartyHandler(kind, cs, ds)

	rg.POST("", h.createCounterparty)
	rg.GET("", h.listCounterparties)
	rg.GET("/:id", h.getCounterparty)
	rg.PUT("/:id", h.updateCounterparty)
	rg.DELETE("/:id", h.deactivateCounterparty)
	rg.GET("/:id/documents", h.listCounterpartyDocuments)
}

// createCounterparty godoc
// @Summary Create a new customer or supplier
// @Description Creates a new counterparty of the group's kind
// @Tags counterparties
// @Accept  json
// @Produce  json
// @Param   counterparty body dto.CreateCounterpartyRequest true "Counterparty details"
// @Success 201 {object} dto.CounterpartyResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create counterparty"
// @Security BearerAuth
// @Router /customers [post]
func (h *counterpartyHandler) createCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCounterparty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID), slog.String("kind", string(h.kind)))
	logger.Info("Received request to create counterparty", slog.String("name", req.Name))

	cp, err := h.counterpartyService.CreateCounterparty(c.Request.Context(), h.kind, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating counterparty", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create counterparty in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create counterparty"})
		}
		return
	}

	logger.Info("Counterparty created successfully", slog.String("counterparty_id", cp.CounterpartyID))
	c.JSON(http.StatusCreated, dto.ToCounterpartyResponse(cp))
}

// getCounterparty godoc
// @Summary Get a counterparty by ID
// @Description Retrieves details for a specific customer or supplier
// @Tags counterparties
// @Produce  json
// @Param   id path string true "Counterparty ID"
// @Success 200 {object} dto.CounterpartyResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Counterparty not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve counterparty"
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *counterpartyHandler) getCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	counterpartyID := c.Param("id")

	cp, err := h.counterpartyService.GetCounterpartyByID(c.Request.Context(), counterpartyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Counterparty not found"})
		} else {
			logger.Error("Failed to get counterparty from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve counterparty"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCounterpartyResponse(cp))
}

// listCounterparties godoc
// @Summary List counterparties
// @Description Retrieves active counterparties of the group's kind, ordered by name
// @Tags counterparties
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListCounterpartiesResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list counterparties"
// @Security BearerAuth
// @Router /customers [get]
func (h *counterpartyHandler) listCounterparties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListCounterpartiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	cps, err := h.counterpartyService.ListCounterparties(c.Request.Context(), h.kind, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list counterparties from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list counterparties"})
		return
	}

	resp := dto.ListCounterpartiesResponse{
		Counterparties: make([]dto.CounterpartyResponse, 0, len(cps)),
	}
	for i := range cps {
		resp.Counterparties = append(resp.Counterparties, dto.ToCounterpartyResponse(&cps[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// updateCounterparty godoc
// @Summary Update a counterparty
// @Description Updates fields of an existing customer or supplier
// @Tags counterparties
// @Accept  json
// @Produce  json
// @Param   id path string true "Counterparty ID"
// @Param   counterparty body dto.UpdateCounterpartyRequest true "Fields to update"
// @Success 200 {object} dto.CounterpartyResponse
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Counterparty not found"
// @Failure 500 {object} ErrorResponse "Failed to update counterparty"
// @Security BearerAuth
// @Router /customers/{id} [put]
func (h *counterpartyHandler) updateCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	counterpartyID := c.Param("id")

	var req dto.UpdateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	cp, err := h.counterpartyService.UpdateCounterparty(c.Request.Context(), counterpartyID, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Counterparty not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to update counterparty in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update counterparty"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCounterpartyResponse(cp))
}

// deactivateCounterparty godoc
// @Summary Deactivate a counterparty
// @Description Marks a counterparty as inactive; existing documents keep their snapshot of its details
// @Tags counterparties
// @Produce  json
// @Param   id path string true "Counterparty ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Counterparty not found"
// @Failure 500 {object} ErrorResponse "Failed to deactivate counterparty"
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *counterpartyHandler) deactivateCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	counterpartyID := c.Param("id")

	deleterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.counterpartyService.DeactivateCounterparty(c.Request.Context(), counterpartyID, deleterUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Counterparty not found"})
		} else {
			logger.Error("Failed to deactivate counterparty", slog.String("error", err.Error()), slog.String("target_counterparty_id", counterpartyID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate counterparty"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// listCounterpartyDocuments godoc
// @Summary List a counterparty's documents
// @Description Retrieves documents issued to or received from this counterparty
// @Tags counterparties
// @Produce  json
// @Param   id path string true "Counterparty ID"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list documents"
// @Security BearerAuth
// @Router /customers/{id}/documents [get]
func (h *counterpartyHandler) listCounterpartyDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	counterpartyID := c.Param("id")

	var params dto.ListCounterpartiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	docs, err := h.documentService.ListDocumentsByCounterparty(c.Request.Context(), counterpartyID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list counterparty documents", slog.String("error", err.Error()), slog.String("target_counterparty_id", counterpartyID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list documents"})
		return
	}

	resp := dto.ListDocumentsResponse{
		Documents: make([]dto.DocumentResponse, 0, len(docs)),
	}
	for i := range docs {
		resp.Documents = append(resp.Documents, dto.ToDocumentResponse(&docs[i]))
	}
	c.JSON(http.StatusOK, resp)
}
