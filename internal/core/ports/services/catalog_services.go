package services

import (
	"context"

	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	"github.com/SscSPs/library_circulation_app/internal/dto"
)

// CatalogReaderSvc defines read operations for the catalog
type CatalogReaderSvc interface {
	// GetBookByID retrieves a specific book by its ID.
	GetBookByID(ctx context.Context, bookID string) (*domain.Book, error)

	// ListBooks retrieves a filtered, paginated list of books.
	ListBooks(ctx context.Context, params dto.ListBooksParams) (*dto.ListBooksResponse, error)
}

// CatalogWriterSvc defines write operations for the catalog
type CatalogWriterSvc interface {
	// AddBook creates a new available book and records its audit entry.
	AddBook(ctx context.Context, req dto.CreateBookRequest, actor string) (*domain.Book, error)

	// UpdateBook updates catalog metadata (never availability).
	UpdateBook(ctx context.Context, bookID string, req dto.UpdateBookRequest, actor string) (*domain.Book, error)

	// RemoveBook deletes a book that has no active loan and records its audit entry.
	RemoveBook(ctx context.Context, bookID string, actor string) error
}

// CatalogSvcFacade combines all catalog-related service interfaces
type CatalogSvcFacade interface {
	CatalogReaderSvc
	CatalogWriterSvc
}
