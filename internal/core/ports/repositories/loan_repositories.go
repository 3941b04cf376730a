package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/library_circulation_app/internal/core/domain"
)

// LoanListFilter narrows loan listings. Nil fields are ignored.
type LoanListFilter struct {
	Active     *bool
	BorrowerID *string
	// OverdueOnly keeps only active loans whose due date lies before AsOf.
	OverdueOnly bool
	AsOf        time.Time
}

// LoanReader defines read operations for loan data
type LoanReader interface {
	// FindLoanByID retrieves a specific loan by its unique identifier.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// CountActiveLoansByBorrower returns the number of active loans held by a borrower.
	CountActiveLoansByBorrower(ctx context.Context, borrowerID string) (int, error)

	// ListLoans retrieves a filtered, token-paginated list of loans.
	ListLoans(ctx context.Context, filter LoanListFilter, limit int, nextToken *string) ([]domain.Loan, *string, error)
}

// LoanLifecycleWriter performs the multi-entity lifecycle mutations. Each method
// applies every write it names in a single database transaction: a crash or a
// concurrent conflicting request can never leave book availability inconsistent
// with the set of active loans.
type LoanLifecycleWriter interface {
	// CheckoutLoan inserts the loan, flips the book to unavailable and appends
	// the LOAN audit entry. The book row is locked and availability re-verified
	// under the lock (apperrors.ErrUnavailable), and the borrower's active-loan
	// count is re-checked against maxConcurrentLoans under a per-borrower lock
	// (apperrors.ErrLimitExceeded).
	CheckoutLoan(ctx context.Context, loan domain.Loan, maxConcurrentLoans int, entry domain.AuditEntry) error

	// ReturnLoan applies the updated loan row, frees the book, inserts the
	// overdue fine when one was assessed, and appends the RETURN audit entry.
	// The loan row is locked and re-verified active (apperrors.ErrAlreadyReturned).
	ReturnLoan(ctx context.Context, loan domain.Loan, fine *domain.Fine, entry domain.AuditEntry) error

	// RenewLoan applies the extended loan row and appends the RENEWAL audit
	// entry. A per-borrower lock serializes the outstanding-fine check with the
	// write (apperrors.ErrOutstandingFine when a pending fine exists).
	RenewLoan(ctx context.Context, loan domain.Loan, entry domain.AuditEntry) error
}

// LoanRepositoryFacade combines all loan repository interfaces.
type LoanRepositoryFacade interface {
	LoanReader
	LoanLifecycleWriter
}
