package repositories

import (
	"context"

	"github.com/SscSPs/library_circulation_app/internal/core/domain"
)

// FineListFilter narrows fine listings. Nil fields are ignored.
type FineListFilter struct {
	State      *domain.FineState
	Type       *domain.FineType
	BorrowerID *string
}

// FineReader defines read operations for fine data
type FineReader interface {
	// FindFineByID retrieves a specific fine by its unique identifier.
	FindFineByID(ctx context.Context, fineID string) (*domain.Fine, error)

	// HasPendingFineForBorrower reports whether any PENDING fine exists for the
	// borrower, regardless of which loan or book it is tied to.
	HasPendingFineForBorrower(ctx context.Context, borrowerID string) (bool, error)

	// ListFines retrieves a filtered, token-paginated list of fines.
	ListFines(ctx context.Context, filter FineListFilter, limit int, nextToken *string) ([]domain.Fine, *string, error)
}

// FineWriter defines write operations for fine data
type FineWriter interface {
	// SaveFine persists a manually created fine and its FINE audit entry atomically.
	SaveFine(ctx context.Context, fine domain.Fine, entry domain.AuditEntry) error

	// PayFine applies a PENDING -> PAID transition and, when the fine is linked
	// to a loan, marks the loan's fine as paid in the same transaction. Returns
	// apperrors.ErrAlreadyPaid when the fine is no longer pending.
	PayFine(ctx context.Context, fine domain.Fine) error

	// CondoneFine applies a PENDING -> CONDONED transition. Returns
	// apperrors.ErrInvalidState when the fine is no longer pending.
	CondoneFine(ctx context.Context, fine domain.Fine) error
}

// FineRepositoryFacade combines all fine repository interfaces.
type FineRepositoryFacade interface {
	FineReader
	FineWriter
}
