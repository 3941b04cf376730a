package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/library_circulation_app/internal/apperrors"
	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_circulation_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_circulation_app/internal/core/ports/services"
	"github.com/SscSPs/library_circulation_app/internal/dto"
	"github.com/SscSPs/library_circulation_app/internal/middleware"
	"github.com/SscSPs/library_circulation_app/internal/utils/fines"
)

// loanService drives the loan state machine: Active -> Returned (terminal),
// with renewal as a self-loop that keeps the loan operationally active.
type loanService struct {
	loanRepo  portsrepo.LoanRepositoryFacade
	bookRepo  portsrepo.BookReader
	fineRepo  portsrepo.FineReader
	policySvc portssvc.PolicySvcFacade
}

// NewLoanService creates a new LoanService.
func NewLoanService(loanRepo portsrepo.LoanRepositoryFacade, bookRepo portsrepo.BookReader, fineRepo portsrepo.FineReader, policySvc portssvc.PolicySvcFacade) portssvc.LoanSvcFacade {
	return &loanService{
		loanRepo:  loanRepo,
		bookRepo:  bookRepo,
		fineRepo:  fineRepo,
		policySvc: policySvc,
	}
}

// Ensure loanService implements the portssvc.LoanSvcFacade interface
var _ portssvc.LoanSvcFacade = (*loanService)(nil)

// Checkout creates an active loan for an available book.
// Implements portssvc.LoanLifecycleSvc
func (s *loanService) Checkout(ctx context.Context, req dto.CheckoutRequest, actor string) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	policy, err := s.policySvc.GetPolicy(ctx)
	if err != nil {
		logger.Error("Failed to load policy for checkout", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load policy configuration: %w", err)
	}

	book, err := s.bookRepo.FindBookByID(ctx, req.BookID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find book for checkout", slog.String("error", err.Error()), slog.String("book_id", req.BookID))
		}
		return nil, fmt.Errorf("failed to find book %s: %w", req.BookID, err)
	}

	if !book.Available {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnavailable, book.Summary())
	}

	activeCount, err := s.loanRepo.CountActiveLoansByBorrower(ctx, req.BorrowerID)
	if err != nil {
		logger.Error("Failed to count active loans for borrower", slog.String("error", err.Error()), slog.String("borrower_id", req.BorrowerID))
		return nil, fmt.Errorf("failed to count active loans: %w", err)
	}
	if activeCount >= policy.MaxConcurrentLoans {
		return nil, fmt.Errorf("%w: borrower %s already has %d active loans (limit %d)",
			apperrors.ErrLimitExceeded, req.BorrowerID, activeCount, policy.MaxConcurrentLoans)
	}

	now := time.Now().UTC()
	today := domain.DateOf(now)

	dueDate := today.AddDate(0, 0, policy.LoanPeriodDays)
	if req.DueDate != nil {
		dueDate = domain.DateOf(*req.DueDate)
	}

	loan := domain.Loan{
		LoanID: uuid.NewString(),
		BookID: book.BookID,
		Borrower: domain.Borrower{
			Name:  req.BorrowerName,
			ID:    req.BorrowerID,
			Grade: req.BorrowerGrade,
			Group: req.BorrowerGroup,
			Phone: req.BorrowerPhone,
		},
		LoanDate:     today,
		DueDate:      dueDate,
		Active:       true,
		State:        domain.LoanStateActive,
		RenewalCount: 0,
		LoanNotes:    req.Notes,
		FineAmount:   decimal.Zero,
		IssuedBy:     actor,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	entry := domain.AuditEntry{
		EntryID:      uuid.NewString(),
		Type:         domain.AuditLoan,
		BookID:       &loan.BookID,
		LoanID:       &loan.LoanID,
		BorrowerName: &loan.Borrower.Name,
		BorrowerID:   &loan.Borrower.ID,
		Description:  fmt.Sprintf("Checkout of %s to %s (%s), due %s", book.Summary(), req.BorrowerName, req.BorrowerID, dueDate.Format("2006-01-02")),
		Actor:        actor,
		OccurredAt:   now,
	}

	// Loan insert, availability flip and audit entry are one atomic unit; the
	// repository re-verifies availability and the concurrent-loan ceiling
	// under row locks.
	if err := s.loanRepo.CheckoutLoan(ctx, loan, policy.MaxConcurrentLoans, entry); err != nil {
		if errors.Is(err, apperrors.ErrUnavailable) || errors.Is(err, apperrors.ErrLimitExceeded) {
			return nil, err
		}
		logger.Error("Failed to save checkout", slog.String("error", err.Error()), slog.String("loan_id", loan.LoanID))
		return nil, fmt.Errorf("failed to save checkout: %w", err)
	}

	logger.Info("Loan created successfully",
		slog.String("loan_id", loan.LoanID),
		slog.String("book_id", loan.BookID),
		slog.String("borrower_id", loan.Borrower.ID),
	)
	return &loan, nil
}

// Return closes an active loan, frees the book and assesses an overdue fine
// when the return is late beyond the grace period.
// Implements portssvc.LoanLifecycleSvc
func (s *loanService) Return(ctx context.Context, loanID string, req dto.ReturnLoanRequest, actor string) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find loan for return", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		}
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}

	if !loan.Active {
		return nil, fmt.Errorf("%w: loan %s", apperrors.ErrAlreadyReturned, loanID)
	}

	policy, err := s.policySvc.GetPolicy(ctx)
	if err != nil {
		logger.Error("Failed to load policy for return", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load policy configuration: %w", err)
	}

	now := time.Now().UTC()
	returnDate := domain.DateOf(now)
	if req.ReturnDate != nil {
		returnDate = domain.DateOf(*req.ReturnDate)
	}

	updated := *loan
	updated.Active = false
	updated.State = domain.LoanStateReturned
	updated.ReturnDate = &returnDate
	updated.ReturnNotes = req.Notes
	updated.ReceivedBy = &actor
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actor

	var fine *domain.Fine
	daysLate := fines.DaysLate(loan.DueDate, returnDate)
	if billable := fines.BillableDays(daysLate, policy.GraceDays); billable > 0 {
		amount := fines.OverdueAmount(loan.DueDate, returnDate, policy.GraceDays, policy.FinePerDay)
		fine = &domain.Fine{
			FineID:       uuid.NewString(),
			LoanID:       &updated.LoanID,
			BookID:       &updated.BookID,
			BorrowerName: loan.Borrower.Name,
			BorrowerID:   loan.Borrower.ID,
			Type:         domain.FineOverdue,
			Amount:       amount,
			State:        domain.FinePending,
			Description:  fmt.Sprintf("Overdue return: %d days late, %d billable at %s per day", daysLate, billable, policy.FinePerDay.StringFixed(2)),
			IssuedAt:     returnDate,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor,
				LastUpdatedAt: now,
				LastUpdatedBy: actor,
			},
		}
		updated.HasFine = true
		updated.FineAmount = amount
	}

	description := fmt.Sprintf("Return of book %s by %s (%s)", updated.BookID, loan.Borrower.Name, loan.Borrower.ID)
	if fine != nil {
		description = fmt.Sprintf("%s; overdue fine of %s assessed", description, fine.Amount.StringFixed(2))
	}
	entry := domain.AuditEntry{
		EntryID:      uuid.NewString(),
		Type:         domain.AuditReturn,
		BookID:       &updated.BookID,
		LoanID:       &updated.LoanID,
		BorrowerName: &loan.Borrower.Name,
		BorrowerID:   &loan.Borrower.ID,
		Description:  description,
		Actor:        actor,
		OccurredAt:   now,
	}

	if err := s.loanRepo.ReturnLoan(ctx, updated, fine, entry); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyReturned) {
			return nil, err
		}
		logger.Error("Failed to save return", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to save return: %w", err)
	}

	logger.Info("Loan returned successfully",
		slog.String("loan_id", updated.LoanID),
		slog.Int("days_late", daysLate),
		slog.Bool("fine_assessed", fine != nil),
	)
	return &updated, nil
}

// Renew extends an active loan's due date from today. The policy is re-read at
// renewal time, so the new due date is today plus the current loan period, not
// an extension of the previous due date.
// Implements portssvc.LoanLifecycleSvc
func (s *loanService) Renew(ctx context.Context, loanID string, actor string, today time.Time) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find loan for renewal", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		}
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}

	if !loan.Active {
		return nil, fmt.Errorf("%w: loan %s", apperrors.ErrAlreadyReturned, loanID)
	}

	policy, err := s.policySvc.GetPolicy(ctx)
	if err != nil {
		logger.Error("Failed to load policy for renewal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load policy configuration: %w", err)
	}

	if loan.RenewalCount >= policy.MaxRenewals {
		return nil, fmt.Errorf("%w: loan %s has used %d of %d renewals",
			apperrors.ErrLimitExceeded, loanID, loan.RenewalCount, policy.MaxRenewals)
	}

	// Any pending fine anywhere in the system blocks renewal for this
	// borrower, not just fines tied to this loan.
	pending, err := s.fineRepo.HasPendingFineForBorrower(ctx, loan.Borrower.ID)
	if err != nil {
		logger.Error("Failed to check pending fines for borrower", slog.String("error", err.Error()), slog.String("borrower_id", loan.Borrower.ID))
		return nil, fmt.Errorf("failed to check outstanding fines: %w", err)
	}
	if pending {
		return nil, fmt.Errorf("%w: borrower %s has a pending fine", apperrors.ErrOutstandingFine, loan.Borrower.ID)
	}

	now := time.Now().UTC()
	day := domain.DateOf(today)

	updated := *loan
	updated.DueDate = day.AddDate(0, 0, policy.LoanPeriodDays)
	updated.RenewalCount = loan.RenewalCount + 1
	updated.State = domain.LoanStateRenewed
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actor

	entry := domain.AuditEntry{
		EntryID:      uuid.NewString(),
		Type:         domain.AuditRenewal,
		BookID:       &updated.BookID,
		LoanID:       &updated.LoanID,
		BorrowerName: &loan.Borrower.Name,
		BorrowerID:   &loan.Borrower.ID,
		Description:  fmt.Sprintf("Renewal %d of loan %s, new due date %s", updated.RenewalCount, loanID, updated.DueDate.Format("2006-01-02")),
		Actor:        actor,
		OccurredAt:   now,
	}

	// The repository repeats the outstanding-fine check under a per-borrower
	// lock so two concurrent renewals cannot both pass it.
	if err := s.loanRepo.RenewLoan(ctx, updated, entry); err != nil {
		if errors.Is(err, apperrors.ErrOutstandingFine) || errors.Is(err, apperrors.ErrAlreadyReturned) {
			return nil, err
		}
		logger.Error("Failed to save renewal", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to save renewal: %w", err)
	}

	logger.Info("Loan renewed successfully",
		slog.String("loan_id", updated.LoanID),
		slog.Int("renewal_count", updated.RenewalCount),
	)
	return &updated, nil
}

// GetLoanByID retrieves a specific loan.
// Implements portssvc.LoanReaderSvc
func (s *loanService) GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find loan by ID", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		}
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}
	return loan, nil
}

// ListLoans retrieves a filtered, paginated list of loans.
// Implements portssvc.LoanReaderSvc
func (s *loanService) ListLoans(ctx context.Context, params dto.ListLoansParams) (*dto.ListLoansResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	// Overdue is a calendar-day notion: a loan due today is not overdue yet, so
	// the cutoff is today's midnight, matching DeriveLoanStatus and the fine math.
	filter := portsrepo.LoanListFilter{
		Active:      params.Active,
		BorrowerID:  params.BorrowerID,
		OverdueOnly: params.OverdueOnly,
		AsOf:        domain.DateOf(now),
	}

	loans, nextToken, err := s.loanRepo.ListLoans(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list loans from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve loans: %w", err)
	}

	resp := &dto.ListLoansResponse{
		Loans:     dto.ToLoanResponses(loans, now),
		NextToken: nextToken,
	}

	logger.Debug("Loans listed successfully", slog.Int("count", len(loans)))
	return resp, nil
}
