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

// policyHandler handles HTTP requests for the circulation policy singleton.
type policyHandler struct {
	policyService portssvc.PolicySvcFacade
}

// newPolicyHandler creates a new policyHandler.
func newPolicyHandler(ps portssvc.PolicySvcFacade) *policyHandler {
	return &policyHandler{
		policyService: ps,
	}
}

// registerPolicyRoutes registers routes for the policy singleton. There is no
// create or delete; the row always exists once read.
func registerPolicyRoutes(rg *gin.RouterGroup, policyService portssvc.PolicySvcFacade) {
	h := newPolicyHandler(policyService)

	policy := rg.Group("/policy")
	{
		policy.GET("", h.getPolicy)
		policy.PUT("", h.updatePolicy)
	}
}

func (h *policyHandler) getPolicy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	policy, err := h.policyService.GetPolicy(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get policy", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve policy"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPolicyResponse(policy))
}

func (h *policyHandler) updatePolicy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updatePolicy", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.RequireActor(c)
	if !ok {
		return
	}

	policy, err := h.policyService.UpdatePolicy(c.Request.Context(), req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating policy", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update policy", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update policy"})
		}
		return
	}

	logger.Info("Policy updated successfully", slog.String("actor", actor))
	c.JSON(http.StatusOK, dto.ToPolicyResponse(policy))
}
