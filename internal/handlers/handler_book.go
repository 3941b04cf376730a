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

// bookHandler handles HTTP requests related to the catalog.
type bookHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

// newBookHandler creates a new bookHandler.
func newBookHandler(cs portssvc.CatalogSvcFacade) *bookHandler {
	return &bookHandler{
		catalogService: cs,
	}
}

// registerBookRoutes registers routes related to the catalog.
func registerBookRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newBookHandler(catalogService)

	books := rg.Group("/books")
	{
		books.POST("", h.createBook)
		books.GET("/:id", h.getBook)
		books.GET("", h.listBooks)
		books.PUT("/:id", h.updateBook)
		books.DELETE("/:id", h.deleteBook)
	}
}

func (h *bookHandler) createBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.RequireActor(c)
	if !ok {
		return
	}

	newBook, err := h.catalogService.AddBook(c.Request.Context(), req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate inventory code creating book", slog.String("inventory_code", req.InventoryCode))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating book", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create book in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create book"})
		}
		return
	}

	logger.Info("Book created successfully", slog.String("book_id", newBook.BookID))
	c.JSON(http.StatusCreated, dto.ToBookResponse(newBook))
}

func (h *bookHandler) getBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("id")

	book, err := h.catalogService.GetBookByID(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		} else {
			logger.Error("Failed to get book", slog.String("error", err.Error()), slog.String("book_id", bookID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve book"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

func (h *bookHandler) listBooks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListBooksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listBooks", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.catalogService.ListBooks(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list books", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list books"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *bookHandler) updateBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("id")

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateBook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.RequireActor(c)
	if !ok {
		return
	}

	updatedBook, err := h.catalogService.UpdateBook(c.Request.Context(), bookID, req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update book", slog.String("error", err.Error()), slog.String("book_id", bookID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update book"})
		}
		return
	}

	logger.Info("Book updated successfully", slog.String("book_id", bookID))
	c.JSON(http.StatusOK, dto.ToBookResponse(updatedBook))
}

func (h *bookHandler) deleteBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("id")

	actor, ok := middleware.RequireActor(c)
	if !ok {
		return
	}

	err := h.catalogService.RemoveBook(c.Request.Context(), bookID, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Attempt to delete book with active loan", slog.String("book_id", bookID))
			c.JSON(http.StatusConflict, gin.H{"error": "Book has an active loan and cannot be deleted"})
		} else {
			logger.Error("Failed to delete book", slog.String("error", err.Error()), slog.String("book_id", bookID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete book"})
		}
		return
	}

	logger.Info("Book deleted successfully", slog.String("book_id", bookID))
	c.Status(http.StatusNoContent)
}
