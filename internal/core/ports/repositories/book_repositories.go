package repositories

import (
	"context"

	"github.com/SscSPs/library_circulation_app/internal/core/domain"
)

// BookListFilter narrows catalog listings. Nil fields are ignored.
type BookListFilter struct {
	Available *bool
	Category  *domain.BookCategory
	// Search matches title, author or inventory code, case-insensitively.
	Search *string
}

// BookReader defines read operations for catalog data
type BookReader interface {
	// FindBookByID retrieves a specific book by its unique identifier.
	FindBookByID(ctx context.Context, bookID string) (*domain.Book, error)

	// FindBookByInventoryCode retrieves a book by its unique inventory code.
	FindBookByInventoryCode(ctx context.Context, inventoryCode string) (*domain.Book, error)

	// ListBooks retrieves a filtered, token-paginated list of books.
	ListBooks(ctx context.Context, filter BookListFilter, limit int, nextToken *string) ([]domain.Book, *string, error)
}

// BookWriter defines write operations for catalog data
type BookWriter interface {
	// SaveBook persists a new book and its BOOK_ADDED audit entry atomically.
	SaveBook(ctx context.Context, book domain.Book, entry domain.AuditEntry) error

	// UpdateBook updates catalog metadata. It never touches availability, which
	// is owned by the loan lifecycle.
	UpdateBook(ctx context.Context, book domain.Book) error

	// DeleteBook removes a book and writes its BOOK_REMOVED audit entry
	// atomically. Returns apperrors.ErrConflict while an active loan
	// references the book.
	DeleteBook(ctx context.Context, bookID string, entry domain.AuditEntry) error
}

// BookRepositoryFacade combines all catalog repository interfaces.
type BookRepositoryFacade interface {
	BookReader
	BookWriter
}
