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

// fineService manages the fine ledger. Overdue fines are created by the loan
// lifecycle during returns; this service covers manual fines and settlement.
type fineService struct {
	fineRepo portsrepo.FineRepositoryFacade
	loanRepo portsrepo.LoanReader
	bookRepo portsrepo.BookReader
}

// NewFineService creates a new FineService.
func NewFineService(fineRepo portsrepo.FineRepositoryFacade, loanRepo portsrepo.LoanReader, bookRepo portsrepo.BookReader) portssvc.FineSvcFacade {
	return &fineService{
		fineRepo: fineRepo,
		loanRepo: loanRepo,
		bookRepo: bookRepo,
	}
}

// Ensure fineService implements the portssvc.FineSvcFacade interface
var _ portssvc.FineSvcFacade = (*fineService)(nil)

// CreateManualFine records a fine directly (damage, loss, other). Loan and book
// links are optional and validated when present.
// Implements portssvc.FineWriterSvc
func (s *fineService) CreateManualFine(ctx context.Context, req dto.CreateFineRequest, actor string) (*domain.Fine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: fine amount must not be negative", apperrors.ErrValidation)
	}

	if req.LoanID != nil {
		if _, err := s.loanRepo.FindLoanByID(ctx, *req.LoanID); err != nil {
			return nil, fmt.Errorf("failed to resolve linked loan %s: %w", *req.LoanID, err)
		}
	}
	if req.BookID != nil {
		if _, err := s.bookRepo.FindBookByID(ctx, *req.BookID); err != nil {
			return nil, fmt.Errorf("failed to resolve linked book %s: %w", *req.BookID, err)
		}
	}

	now := time.Now().UTC()

	fine := domain.Fine{
		FineID:       uuid.NewString(),
		LoanID:       req.LoanID,
		BookID:       req.BookID,
		BorrowerName: req.BorrowerName,
		BorrowerID:   req.BorrowerID,
		Type:         req.Type,
		Amount:       req.Amount,
		State:        domain.FinePending,
		Description:  req.Description,
		IssuedAt:     domain.DateOf(now),
		DueDate:      req.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	entry := domain.AuditEntry{
		EntryID:      uuid.NewString(),
		Type:         domain.AuditFine,
		BookID:       req.BookID,
		LoanID:       req.LoanID,
		BorrowerName: &fine.BorrowerName,
		BorrowerID:   &fine.BorrowerID,
		Description:  fmt.Sprintf("Manual %s fine of %s against %s (%s): %s", fine.Type, fine.Amount.StringFixed(2), fine.BorrowerName, fine.BorrowerID, fine.Description),
		Actor:        actor,
		OccurredAt:   now,
	}

	if err := s.fineRepo.SaveFine(ctx, fine, entry); err != nil {
		logger.Error("Failed to save manual fine", slog.String("error", err.Error()), slog.String("fine_id", fine.FineID))
		return nil, fmt.Errorf("failed to save fine: %w", err)
	}

	logger.Info("Manual fine created successfully",
		slog.String("fine_id", fine.FineID),
		slog.String("borrower_id", fine.BorrowerID),
		slog.String("amount", fine.Amount.StringFixed(2)),
	)
	return &fine, nil
}

// PayFine settles a pending fine, stamping the payment date and receipt. When
// the fine is linked to a loan, the loan's finePaid flag is set in the same
// transaction. The PENDING -> PAID transition is one-way.
// Implements portssvc.FineWriterSvc
func (s *fineService) PayFine(ctx context.Context, fineID string, req dto.PayFineRequest, actor string) (*domain.Fine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fine, err := s.fineRepo.FindFineByID(ctx, fineID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find fine for payment", slog.String("error", err.Error()), slog.String("fine_id", fineID))
		}
		return nil, fmt.Errorf("failed to find fine %s: %w", fineID, err)
	}

	if fine.State != domain.FinePending {
		return nil, fmt.Errorf("%w: fine %s is %s", apperrors.ErrAlreadyPaid, fineID, fine.State)
	}

	now := time.Now().UTC()
	paymentDate := domain.DateOf(now)

	updated := *fine
	updated.State = domain.FinePaid
	updated.PaymentDate = &paymentDate
	updated.Receipt = &req.Receipt
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actor

	if err := s.fineRepo.PayFine(ctx, updated); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyPaid) {
			return nil, err
		}
		logger.Error("Failed to save fine payment", slog.String("error", err.Error()), slog.String("fine_id", fineID))
		return nil, fmt.Errorf("failed to save fine payment: %w", err)
	}

	logger.Info("Fine paid successfully", slog.String("fine_id", fineID), slog.String("receipt", req.Receipt))
	return &updated, nil
}

// CondoneFine waives a pending fine. Terminal; no reversal operation exists.
// Implements portssvc.FineWriterSvc
func (s *fineService) CondoneFine(ctx context.Context, fineID string, actor string) (*domain.Fine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fine, err := s.fineRepo.FindFineByID(ctx, fineID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find fine for condonation", slog.String("error", err.Error()), slog.String("fine_id", fineID))
		}
		return nil, fmt.Errorf("failed to find fine %s: %w", fineID, err)
	}

	if fine.State != domain.FinePending {
		return nil, fmt.Errorf("%w: fine %s is %s", apperrors.ErrInvalidState, fineID, fine.State)
	}

	now := time.Now().UTC()

	updated := *fine
	updated.State = domain.FineCondoned
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actor

	if err := s.fineRepo.CondoneFine(ctx, updated); err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			return nil, err
		}
		logger.Error("Failed to save fine condonation", slog.String("error", err.Error()), slog.String("fine_id", fineID))
		return nil, fmt.Errorf("failed to save fine condonation: %w", err)
	}

	logger.Info("Fine condoned successfully", slog.String("fine_id", fineID))
	return &updated, nil
}

// GetFineByID retrieves a specific fine.
// Implements portssvc.FineReaderSvc
func (s *fineService) GetFineByID(ctx context.Context, fineID string) (*domain.Fine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fine, err := s.fineRepo.FindFineByID(ctx, fineID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find fine by ID", slog.String("error", err.Error()), slog.String("fine_id", fineID))
		}
		return nil, fmt.Errorf("failed to find fine %s: %w", fineID, err)
	}
	return fine, nil
}

// ListFines retrieves a filtered, paginated list of fines.
// Implements portssvc.FineReaderSvc
func (s *fineService) ListFines(ctx context.Context, params dto.ListFinesParams) (*dto.ListFinesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.FineListFilter{
		BorrowerID: params.BorrowerID,
	}
	if params.State != nil {
		state := domain.FineState(*params.State)
		filter.State = &state
	}
	if params.Type != nil {
		fineType := domain.FineType(*params.Type)
		filter.Type = &fineType
	}

	finesFound, nextToken, err := s.fineRepo.ListFines(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list fines from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve fines: %w", err)
	}

	resp := &dto.ListFinesResponse{
		Fines:     dto.ToFineResponses(finesFound),
		NextToken: nextToken,
	}

	logger.Debug("Fines listed successfully", slog.Int("count", len(finesFound)))
	return resp, nil
}
