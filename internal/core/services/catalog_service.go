package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/library_circulation_app/internal/apperrors"
	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_circulation_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_circulation_app/internal/core/ports/services"
	"github.com/SscSPs/library_circulation_app/internal/dto"
	"github.com/SscSPs/library_circulation_app/internal/middleware"
)

// catalogService manages book records. Availability is not touched here; the
// loan lifecycle owns it.
type catalogService struct {
	bookRepo portsrepo.BookRepositoryFacade
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(bookRepo portsrepo.BookRepositoryFacade) portssvc.CatalogSvcFacade {
	return &catalogService{bookRepo: bookRepo}
}

// Ensure catalogService implements the portssvc.CatalogSvcFacade interface
var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

// AddBook creates a new available book and records its BOOK_ADDED audit entry.
// Implements portssvc.CatalogWriterSvc
func (s *catalogService) AddBook(ctx context.Context, req dto.CreateBookRequest, actor string) (*domain.Book, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.bookRepo.FindBookByInventoryCode(ctx, req.InventoryCode)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check inventory code uniqueness", slog.String("error", err.Error()), slog.String("inventory_code", req.InventoryCode))
		return nil, fmt.Errorf("failed to check inventory code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: inventory code %s", apperrors.ErrDuplicate, req.InventoryCode)
	}

	now := time.Now().UTC()

	language := req.Language
	if language == "" {
		language = "Spanish"
	}
	condition := req.Condition
	if condition == "" {
		condition = domain.ConditionGood
	}

	book := domain.Book{
		BookID:           uuid.NewString(),
		InventoryCode:    req.InventoryCode,
		ISBN:             req.ISBN,
		Title:            req.Title,
		Subtitle:         req.Subtitle,
		Author:           req.Author,
		Publisher:        req.Publisher,
		PublicationYear:  req.PublicationYear,
		Edition:          req.Edition,
		Category:         req.Category,
		Pages:            req.Pages,
		Language:         language,
		ShelfLocation:    req.ShelfLocation,
		Condition:        condition,
		Available:        true,
		AcquiredAt:       domain.DateOf(now),
		AcquisitionPrice: req.AcquisitionPrice,
		Description:      req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	entry := domain.AuditEntry{
		EntryID:     uuid.NewString(),
		Type:        domain.AuditBookAdded,
		BookID:      &book.BookID,
		Description: "Book added to catalog: " + book.Summary(),
		Actor:       actor,
		OccurredAt:  now,
	}

	if err := s.bookRepo.SaveBook(ctx, book, entry); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		logger.Error("Failed to save book", slog.String("error", err.Error()), slog.String("book_id", book.BookID))
		return nil, fmt.Errorf("failed to save book: %w", err)
	}

	logger.Info("Book added successfully", slog.String("book_id", book.BookID), slog.String("inventory_code", book.InventoryCode))
	return &book, nil
}

// UpdateBook updates catalog metadata. Availability is deliberately not part
// of the request surface.
// Implements portssvc.CatalogWriterSvc
func (s *catalogService) UpdateBook(ctx context.Context, bookID string, req dto.UpdateBookRequest, actor string) (*domain.Book, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find book for update", slog.String("error", err.Error()), slog.String("book_id", bookID))
		}
		return nil, fmt.Errorf("failed to find book %s: %w", bookID, err)
	}

	updated := false
	if req.ISBN != nil {
		book.ISBN = req.ISBN
		updated = true
	}
	if req.Title != nil {
		book.Title = *req.Title
		updated = true
	}
	if req.Subtitle != nil {
		book.Subtitle = req.Subtitle
		updated = true
	}
	if req.Author != nil {
		book.Author = *req.Author
		updated = true
	}
	if req.Publisher != nil {
		book.Publisher = req.Publisher
		updated = true
	}
	if req.PublicationYear != nil {
		book.PublicationYear = *req.PublicationYear
		updated = true
	}
	if req.Edition != nil {
		book.Edition = req.Edition
		updated = true
	}
	if req.Category != nil {
		book.Category = *req.Category
		updated = true
	}
	if req.Pages != nil {
		book.Pages = req.Pages
		updated = true
	}
	if req.Language != nil {
		book.Language = *req.Language
		updated = true
	}
	if req.ShelfLocation != nil {
		book.ShelfLocation = *req.ShelfLocation
		updated = true
	}
	if req.Condition != nil {
		book.Condition = *req.Condition
		updated = true
	}
	if req.Description != nil {
		book.Description = req.Description
		updated = true
	}

	if !updated {
		logger.Debug("No fields provided for book update", slog.String("book_id", bookID))
		return book, nil
	}

	now := time.Now().UTC()
	book.LastUpdatedAt = now
	book.LastUpdatedBy = actor

	if err := s.bookRepo.UpdateBook(ctx, *book); err != nil {
		logger.Error("Failed to save book update", slog.String("error", err.Error()), slog.String("book_id", bookID))
		return nil, fmt.Errorf("failed to save book update: %w", err)
	}

	logger.Info("Book updated successfully", slog.String("book_id", bookID))
	return book, nil
}

// RemoveBook deletes a book that has no active loan. The audit description is
// captured before the delete so the trail keeps a readable record after the
// book row is gone.
// Implements portssvc.CatalogWriterSvc
func (s *catalogService) RemoveBook(ctx context.Context, bookID string, actor string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find book for removal", slog.String("error", err.Error()), slog.String("book_id", bookID))
		}
		return fmt.Errorf("failed to find book %s: %w", bookID, err)
	}

	now := time.Now().UTC()
	entry := domain.AuditEntry{
		EntryID:     uuid.NewString(),
		Type:        domain.AuditBookRemoved,
		BookID:      &book.BookID,
		Description: "Book removed from catalog: " + book.Summary(),
		Actor:       actor,
		OccurredAt:  now,
	}

	if err := s.bookRepo.DeleteBook(ctx, bookID, entry); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("%w: book %s still has an active loan", apperrors.ErrConflict, bookID)
		}
		logger.Error("Failed to delete book", slog.String("error", err.Error()), slog.String("book_id", bookID))
		return fmt.Errorf("failed to delete book: %w", err)
	}

	logger.Info("Book removed successfully", slog.String("book_id", bookID))
	return nil
}

// GetBookByID retrieves a specific book.
// Implements portssvc.CatalogReaderSvc
func (s *catalogService) GetBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find book by ID", slog.String("error", err.Error()), slog.String("book_id", bookID))
		}
		return nil, fmt.Errorf("failed to find book %s: %w", bookID, err)
	}
	return book, nil
}

// ListBooks retrieves a filtered, paginated list of books.
// Implements portssvc.CatalogReaderSvc
func (s *catalogService) ListBooks(ctx context.Context, params dto.ListBooksParams) (*dto.ListBooksResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.BookListFilter{
		Available: params.Available,
		Search:    params.Search,
	}
	if params.Category != nil {
		category := domain.BookCategory(*params.Category)
		filter.Category = &category
	}

	books, nextToken, err := s.bookRepo.ListBooks(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list books from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve books: %w", err)
	}

	resp := &dto.ListBooksResponse{
		Books:     dto.ToBookResponses(books),
		NextToken: nextToken,
	}

	logger.Debug("Books listed successfully", slog.Int("count", len(books)))
	return resp, nil
}
