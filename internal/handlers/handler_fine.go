package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/library_circulation_app/internal/apperrors"
	portssvc "github.com/SscSPs/library_circulation_app/internal/core/ports/services"
	"github.com/SscSPs/library_circulation_app/internal/dto"
	"github.com/SscSPs/library_circulation_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fineHandler handles HTTP requests related to fines.
type fineHandler struct {
	fineService portssvc.FineSvcFacade
}

// newFineHandler creates a new fineHandler.
func newFineHandler(fs portssvc.FineSvcFacade) *fineHandler {
	return &fineHandler{
		fineService: fs,
	}
}

// registerFineRoutes registers routes related to fines.
func registerFineRoutes(rg *gin.RouterGroup, fineService portssvc.FineSvcFacade) {
	h := newFineHandler(fineService)

	fines := rg.Group("/fines")
	{
		fines.POST("", h.createFine)
		fines.GET("/:id", h.getFine)
		fines.GET("", h.listFines)
		fines.POST("/:id/pay", h.payFine)
		fines.POST("/:id/condone", h.condoneFine)
	}
}

func (h *fineHandler) createFine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createFine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.RequireActor(c)
	if !ok {
		return
	}

	fine, err := h.fineService.CreateManualFine(c.Request.Context(), req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating fine", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Linked record not found creating fine", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create fine in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fine"})
		}
		return
	}

	logger.Info("Fine created successfully", slog.String("fine_id", fine.FineID))
	c.JSON(http.StatusCreated, dto.ToFineResponse(fine))
}

func (h *fineHandler) getFine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fineID := c.Param("id")

	fine, err := h.fineService.GetFineByID(c.Request.Context(), fineID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fine not found"})
		} else {
			logger.Error("Failed to get fine", slog.String("error", err.Error()), slog.String("fine_id", fineID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve fine"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFineResponse(fine))
}

func (h *fineHandler) listFines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListFinesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listFines", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.fineService.ListFines(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list fines", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fines"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *fineHandler) payFine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fineID := c.Param("id")

	var req dto.PayFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for payFine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.RequireActor(c)
	if !ok {
		return
	}

	fine, err := h.fineService.PayFine(c.Request.Context(), fineID, req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fine not found"})
		} else if errors.Is(err, apperrors.ErrAlreadyPaid) {
			logger.Warn("Payment of settled fine", slog.String("fine_id", fineID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to pay fine", slog.String("error", err.Error()), slog.String("fine_id", fineID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pay fine"})
		}
		return
	}

	logger.Info("Fine paid successfully", slog.String("fine_id", fineID))
	c.JSON(http.StatusOK, dto.ToFineResponse(fine))
}

func (h *fineHandler) condoneFine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fineID := c.Param("id")

	actor, ok := middleware.RequireActor(c)
	if !ok {
		return
	}

	fine, err := h.fineService.CondoneFine(c.Request.Context(), fineID, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fine not found"})
		} else if errors.Is(err, apperrors.ErrInvalidState) {
			logger.Warn("Condonation of settled fine", slog.String("fine_id", fineID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to condone fine", slog.String("error", err.Error()), slog.String("fine_id", fineID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to condone fine"})
		}
		return
	}

	logger.Info("Fine condoned successfully", slog.String("fine_id", fineID))
	c.JSON(http.StatusOK, dto.ToFineResponse(fine))
}
