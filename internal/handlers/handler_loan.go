package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/library_circulation_app/internal/apperrors"
	portssvc "github.com/SscSPs/library_circulation_app/internal/core/ports/services"
	"github.com/SscSPs/library_circulation_app/internal/dto"
	"github.com/SscSPs/library_circulation_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// loanHandler handles HTTP requests for the loan lifecycle.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

// newLoanHandler creates a new loanHandler.
func newLoanHandler(ls portssvc.LoanSvcFacade) *loanHandler {
	return &loanHandler{
		loanService: ls,
	}
}

// registerLoanRoutes registers routes related to loans.
func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade) {
	h := newLoanHandler(loanService)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.checkout)
		loans.GET("/:id", h.getLoan)
		loans.GET("", h.listLoans)
		loans.POST("/:id/return", h.returnLoan)
		loans.POST("/:id/renew", h.renewLoan)
	}
}

func (h *loanHandler) checkout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for checkout", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.RequireActor(c)
	if !ok {
		return
	}

	logger.Info("Received checkout request", slog.String("book_id", req.BookID), slog.String("borrower_id", req.BorrowerID))

	loan, err := h.loanService.Checkout(c.Request.Context(), req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		} else if errors.Is(err, apperrors.ErrUnavailable) {
			logger.Warn("Checkout of unavailable book", slog.String("book_id", req.BookID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrLimitExceeded) {
			logger.Warn("Borrower at concurrent loan limit", slog.String("borrower_id", req.BorrowerID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to checkout", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to checkout book"})
		}
		return
	}

	logger.Info("Checkout successful", slog.String("loan_id", loan.LoanID))
	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan, time.Now().UTC()))
}

func (h *loanHandler) getLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")

	loan, err := h.loanService.GetLoanByID(c.Request.Context(), loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		} else {
			logger.Error("Failed to get loan", slog.String("error", err.Error()), slog.String("loan_id", loanID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve loan"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan, time.Now().UTC()))
}

func (h *loanHandler) listLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListLoansParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listLoans", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.loanService.ListLoans(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list loans", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list loans"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *loanHandler) returnLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")

	var req dto.ReturnLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for returnLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.RequireActor(c)
	if !ok {
		return
	}

	loan, err := h.loanService.Return(c.Request.Context(), loanID, req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		} else if errors.Is(err, apperrors.ErrAlreadyReturned) {
			logger.Warn("Return of already returned loan", slog.String("loan_id", loanID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to return loan", slog.String("error", err.Error()), slog.String("loan_id", loanID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to return loan"})
		}
		return
	}

	logger.Info("Return successful", slog.String("loan_id", loanID), slog.Bool("has_fine", loan.HasFine))
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan, time.Now().UTC()))
}

func (h *loanHandler) renewLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")

	actor, ok := middleware.RequireActor(c)
	if !ok {
		return
	}

	loan, err := h.loanService.Renew(c.Request.Context(), loanID, actor, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		} else if errors.Is(err, apperrors.ErrAlreadyReturned) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrLimitExceeded) {
			logger.Warn("Loan at renewal ceiling", slog.String("loan_id", loanID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrOutstandingFine) {
			logger.Warn("Renewal blocked by pending fine", slog.String("loan_id", loanID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to renew loan", slog.String("error", err.Error()), slog.String("loan_id", loanID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to renew loan"})
		}
		return
	}

	logger.Info("Renewal successful", slog.String("loan_id", loanID), slog.Int("renewal_count", loan.RenewalCount))
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan, time.Now().UTC()))
}
