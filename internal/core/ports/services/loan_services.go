package services

import (
	"context"
	"time"

	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	"github.com/SscSPs/library_circulation_app/internal/dto"
)

// LoanReaderSvc defines read operations for loan data
type LoanReaderSvc interface {
	// GetLoanByID retrieves a specific loan by its ID.
	GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// ListLoans retrieves a filtered, paginated list of loans.
	ListLoans(ctx context.Context, params dto.ListLoansParams) (*dto.ListLoansResponse, error)
}

// LoanLifecycleSvc drives the loan state machine. Every method applies its
// writes (loan + book + fine + audit entry) as one atomic unit.
type LoanLifecycleSvc interface {
	// Checkout creates an active loan for an available book.
	Checkout(ctx context.Context, req dto.CheckoutRequest, actor string) (*domain.Loan, error)

	// Return closes an active loan, frees the book and assesses an overdue
	// fine when the return is late beyond the grace period.
	Return(ctx context.Context, loanID string, req dto.ReturnLoanRequest, actor string) (*domain.Loan, error)

	// Renew extends an active loan's due date from today, subject to the
	// renewal ceiling and the borrower having no pending fine anywhere.
	Renew(ctx context.Context, loanID string, actor string, today time.Time) (*domain.Loan, error)
}

// LoanSvcFacade combines all loan-related service interfaces
type LoanSvcFacade interface {
	LoanReaderSvc
	LoanLifecycleSvc
}
