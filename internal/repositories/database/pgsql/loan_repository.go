package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/SscSPs/library_circulation_app/internal/apperrors"
	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_circulation_app/internal/core/ports/repositories"
	"github.com/SscSPs/library_circulation_app/internal/models"
	"github.com/SscSPs/library_circulation_app/internal/utils/mapping"
	"github.com/SscSPs/library_circulation_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const loanColumns = `loan_id, book_id, borrower_name, borrower_id, borrower_grade, borrower_group, borrower_phone, loan_date, due_date, return_date, active, state, renewal_count, loan_notes, return_notes, has_fine, fine_amount, fine_paid, issued_by, received_by, created_at, created_by, last_updated_at, last_updated_by`

type PgxLoanRepository struct {
	BaseRepository
}

// newPgxLoanRepository creates a new repository for loan data.
func newPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

func scanLoan(row pgx.Row) (models.Loan, error) {
	var l models.Loan
	err := row.Scan(
		&l.LoanID,
		&l.BookID,
		&l.BorrowerName,
		&l.BorrowerID,
		&l.BorrowerGrade,
		&l.BorrowerGroup,
		&l.BorrowerPhone,
		&l.LoanDate,
		&l.DueDate,
		&l.ReturnDate,
		&l.Active,
		&l.State,
		&l.RenewalCount,
		&l.LoanNotes,
		&l.ReturnNotes,
		&l.HasFine,
		&l.FineAmount,
		&l.FinePaid,
		&l.IssuedBy,
		&l.ReceivedBy,
		&l.CreatedAt,
		&l.CreatedBy,
		&l.LastUpdatedAt,
		&l.LastUpdatedBy,
	)
	return l, err
}

// lockBorrower serializes concurrent lifecycle writes for one borrower within
// the current transaction. The lock releases automatically at commit/rollback.
func lockBorrower(ctx context.Context, tx pgx.Tx, borrowerID string) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, borrowerID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to acquire borrower lock for "+borrowerID, err)
	}
	return nil
}

// CheckoutLoan inserts the loan, flips the book to unavailable and appends the
// LOAN trail row in one transaction. Availability and the borrower's
// concurrent-loan count are re-verified under locks, so two simultaneous
// checkouts of the same copy (or a borrower racing their own limit) cannot
// both succeed.
func (r *PgxLoanRepository) CheckoutLoan(ctx context.Context, loan domain.Loan, maxConcurrentLoans int, entry domain.AuditEntry) error {
	modelLoan := mapping.ToModelLoan(loan)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockBorrower(ctx, tx, modelLoan.BorrowerID); err != nil {
		return err
	}

	var available bool
	err = tx.QueryRow(ctx, `SELECT available FROM books WHERE book_id = $1 FOR UPDATE;`, modelLoan.BookID).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock book "+modelLoan.BookID, err)
	}
	if !available {
		return apperrors.ErrUnavailable
	}

	var activeCount int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM loans WHERE borrower_id = $1 AND active = TRUE;`, modelLoan.BorrowerID).Scan(&activeCount)
	if err != nil {
		return apperrors.NewAppError(500, "failed to count active loans for borrower "+modelLoan.BorrowerID, err)
	}
	if activeCount >= maxConcurrentLoans {
		return apperrors.ErrLimitExceeded
	}

	insertQuery := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	_, err = tx.Exec(ctx, insertQuery,
		modelLoan.LoanID,
		modelLoan.BookID,
		modelLoan.BorrowerName,
		modelLoan.BorrowerID,
		modelLoan.BorrowerGrade,
		modelLoan.BorrowerGroup,
		modelLoan.BorrowerPhone,
		modelLoan.LoanDate,
		modelLoan.DueDate,
		modelLoan.ReturnDate,
		modelLoan.Active,
		modelLoan.State,
		modelLoan.RenewalCount,
		modelLoan.LoanNotes,
		modelLoan.ReturnNotes,
		modelLoan.HasFine,
		modelLoan.FineAmount,
		modelLoan.FinePaid,
		modelLoan.IssuedBy,
		modelLoan.ReceivedBy,
		modelLoan.CreatedAt,
		modelLoan.CreatedBy,
		modelLoan.LastUpdatedAt,
		modelLoan.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert loan "+modelLoan.LoanID, err)
	}

	_, err = tx.Exec(ctx, `UPDATE books SET available = FALSE, last_updated_at = $2, last_updated_by = $3 WHERE book_id = $1;`,
		modelLoan.BookID, modelLoan.LastUpdatedAt, modelLoan.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark book unavailable "+modelLoan.BookID, err)
	}

	if err := insertAuditEntryInTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ReturnLoan applies the closed loan row, frees the book, inserts the overdue
// fine when one was assessed and appends the RETURN trail row, all in one
// transaction. The loan row is locked and re-verified active first, so a
// double return fails with apperrors.ErrAlreadyReturned instead of freeing the
// book twice or duplicating the fine.
func (r *PgxLoanRepository) ReturnLoan(ctx context.Context, loan domain.Loan, fine *domain.Fine, entry domain.AuditEntry) error {
	modelLoan := mapping.ToModelLoan(loan)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var active bool
	err = tx.QueryRow(ctx, `SELECT active FROM loans WHERE loan_id = $1 FOR UPDATE;`, modelLoan.LoanID).Scan(&active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock loan "+modelLoan.LoanID, err)
	}
	if !active {
		return apperrors.ErrAlreadyReturned
	}

	updateQuery := `
		UPDATE loans SET
			return_date = $2,
			active = $3,
			state = $4,
			return_notes = $5,
			has_fine = $6,
			fine_amount = $7,
			fine_paid = $8,
			received_by = $9,
			last_updated_at = $10,
			last_updated_by = $11
		WHERE loan_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery,
		modelLoan.LoanID,
		modelLoan.ReturnDate,
		modelLoan.Active,
		modelLoan.State,
		modelLoan.ReturnNotes,
		modelLoan.HasFine,
		modelLoan.FineAmount,
		modelLoan.FinePaid,
		modelLoan.ReceivedBy,
		modelLoan.LastUpdatedAt,
		modelLoan.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update loan "+modelLoan.LoanID, err)
	}

	_, err = tx.Exec(ctx, `UPDATE books SET available = TRUE, last_updated_at = $2, last_updated_by = $3 WHERE book_id = $1;`,
		modelLoan.BookID, modelLoan.LastUpdatedAt, modelLoan.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark book available "+modelLoan.BookID, err)
	}

	if fine != nil {
		if err := insertFineInTx(ctx, tx, *fine); err != nil {
			return err
		}
	}

	if err := insertAuditEntryInTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// RenewLoan applies the extended loan row and appends the RENEWAL trail row in
// one transaction. The borrower lock serializes the pending-fine re-check with
// fine settlement, so a fine created concurrently cannot be missed.
func (r *PgxLoanRepository) RenewLoan(ctx context.Context, loan domain.Loan, entry domain.AuditEntry) error {
	modelLoan := mapping.ToModelLoan(loan)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockBorrower(ctx, tx, modelLoan.BorrowerID); err != nil {
		return err
	}

	var active bool
	err = tx.QueryRow(ctx, `SELECT active FROM loans WHERE loan_id = $1 FOR UPDATE;`, modelLoan.LoanID).Scan(&active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock loan "+modelLoan.LoanID, err)
	}
	if !active {
		return apperrors.ErrAlreadyReturned
	}

	var hasPendingFine bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM fines WHERE borrower_id = $1 AND state = 'PENDING');`,
		modelLoan.BorrowerID).Scan(&hasPendingFine)
	if err != nil {
		return apperrors.NewAppError(500, "failed to check pending fines for borrower "+modelLoan.BorrowerID, err)
	}
	if hasPendingFine {
		return apperrors.ErrOutstandingFine
	}

	updateQuery := `
		UPDATE loans SET
			due_date = $2,
			state = $3,
			renewal_count = $4,
			last_updated_at = $5,
			last_updated_by = $6
		WHERE loan_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery,
		modelLoan.LoanID,
		modelLoan.DueDate,
		modelLoan.State,
		modelLoan.RenewalCount,
		modelLoan.LastUpdatedAt,
		modelLoan.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to renew loan "+modelLoan.LoanID, err)
	}

	if err := insertAuditEntryInTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindLoanByID retrieves a loan by its unique identifier.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`
	modelLoan, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find loan by ID "+loanID, err)
	}
	domainLoan := mapping.ToDomainLoan(modelLoan)
	return &domainLoan, nil
}

// CountActiveLoansByBorrower returns the number of active loans held by a borrower.
func (r *PgxLoanRepository) CountActiveLoansByBorrower(ctx context.Context, borrowerID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM loans WHERE borrower_id = $1 AND active = TRUE;`, borrowerID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count active loans for borrower "+borrowerID, err)
	}
	return count, nil
}

// ListLoans retrieves a filtered, token-paginated page of loans ordered by
// loan date, newest first.
func (r *PgxLoanRepository) ListLoans(ctx context.Context, filter portsrepo.LoanListFilter, limit int, nextToken *string) ([]domain.Loan, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + loanColumns + ` FROM loans WHERE 1=1`
	args := []interface{}{}

	if filter.Active != nil {
		args = append(args, *filter.Active)
		baseQuery += ` AND active = $` + strconv.Itoa(len(args))
	}
	if filter.BorrowerID != nil {
		args = append(args, *filter.BorrowerID)
		baseQuery += ` AND borrower_id = $` + strconv.Itoa(len(args))
	}
	if filter.OverdueOnly {
		args = append(args, filter.AsOf)
		baseQuery += ` AND active = TRUE AND due_date < $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastLoanDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastLoanDate, lastCreatedAt)
		baseQuery += ` AND (loan_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY loan_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query loans", err)
	}
	defer rows.Close()

	modelLoans := make([]models.Loan, 0, fetchLimit)
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan loan row", err)
		}
		modelLoans = append(modelLoans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating loan rows", err)
	}

	var newNextToken *string
	if len(modelLoans) == fetchLimit {
		lastItem := modelLoans[limit-1]
		token := pagination.EncodeToken(lastItem.LoanDate, lastItem.CreatedAt)
		newNextToken = &token
		modelLoans = modelLoans[:limit]
	}

	return mapping.ToDomainLoanSlice(modelLoans), newNextToken, nil
}
