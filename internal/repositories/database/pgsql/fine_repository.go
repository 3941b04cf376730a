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

const fineColumns = `fine_id, loan_id, book_id, borrower_name, borrower_id, fine_type, amount, state, description, issued_at, due_date, payment_date, receipt, created_at, created_by, last_updated_at, last_updated_by`

type PgxFineRepository struct {
	BaseRepository
}

// newPgxFineRepository creates a new repository for fine data.
func newPgxFineRepository(pool *pgxpool.Pool) portsrepo.FineRepositoryFacade {
	return &PgxFineRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.FineRepositoryFacade = (*PgxFineRepository)(nil)

func scanFine(row pgx.Row) (models.Fine, error) {
	var f models.Fine
	err := row.Scan(
		&f.FineID,
		&f.LoanID,
		&f.BookID,
		&f.BorrowerName,
		&f.BorrowerID,
		&f.Type,
		&f.Amount,
		&f.State,
		&f.Description,
		&f.IssuedAt,
		&f.DueDate,
		&f.PaymentDate,
		&f.Receipt,
		&f.CreatedAt,
		&f.CreatedBy,
		&f.LastUpdatedAt,
		&f.LastUpdatedBy,
	)
	return f, err
}

// insertFineInTx inserts a fine row inside the caller's transaction. The loan
// return path uses it so an assessed overdue fine commits with the return.
func insertFineInTx(ctx context.Context, tx pgx.Tx, fine domain.Fine) error {
	modelFine := mapping.ToModelFine(fine)
	query := `
		INSERT INTO fines (` + fineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := tx.Exec(ctx, query,
		modelFine.FineID,
		modelFine.LoanID,
		modelFine.BookID,
		modelFine.BorrowerName,
		modelFine.BorrowerID,
		modelFine.Type,
		modelFine.Amount,
		modelFine.State,
		modelFine.Description,
		modelFine.IssuedAt,
		modelFine.DueDate,
		modelFine.PaymentDate,
		modelFine.Receipt,
		modelFine.CreatedAt,
		modelFine.CreatedBy,
		modelFine.LastUpdatedAt,
		modelFine.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert fine "+modelFine.FineID, err)
	}
	return nil
}

// SaveFine persists a manually created fine and its FINE trail row atomically.
func (r *PgxFineRepository) SaveFine(ctx context.Context, fine domain.Fine, entry domain.AuditEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertFineInTx(ctx, tx, fine); err != nil {
		return err
	}
	if err := insertAuditEntryInTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// PayFine applies the PENDING -> PAID transition. The state predicate in the
// UPDATE makes settlement first-wins: a second payment attempt matches zero
// rows and reports apperrors.ErrAlreadyPaid. When the fine is tied to a loan,
// the loan's fine_paid flag flips in the same transaction.
func (r *PgxFineRepository) PayFine(ctx context.Context, fine domain.Fine) error {
	modelFine := mapping.ToModelFine(fine)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE fines SET
			state = $2,
			payment_date = $3,
			receipt = $4,
			last_updated_at = $5,
			last_updated_by = $6
		WHERE fine_id = $1 AND state = 'PENDING';
	`
	tag, err := tx.Exec(ctx, query,
		modelFine.FineID,
		modelFine.State,
		modelFine.PaymentDate,
		modelFine.Receipt,
		modelFine.LastUpdatedAt,
		modelFine.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to pay fine "+modelFine.FineID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM fines WHERE fine_id = $1);`, modelFine.FineID).Scan(&exists); err != nil {
			return apperrors.NewAppError(500, "failed to verify fine "+modelFine.FineID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrAlreadyPaid
	}

	if modelFine.LoanID != nil {
		_, err = tx.Exec(ctx, `UPDATE loans SET fine_paid = TRUE, last_updated_at = $2, last_updated_by = $3 WHERE loan_id = $1;`,
			*modelFine.LoanID, modelFine.LastUpdatedAt, modelFine.LastUpdatedBy)
		if err != nil {
			return apperrors.NewAppError(500, "failed to mark loan fine paid "+*modelFine.LoanID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// CondoneFine applies the PENDING -> CONDONED transition, first-wins like
// payment. A settled fine reports apperrors.ErrInvalidState.
func (r *PgxFineRepository) CondoneFine(ctx context.Context, fine domain.Fine) error {
	modelFine := mapping.ToModelFine(fine)

	query := `
		UPDATE fines SET
			state = $2,
			last_updated_at = $3,
			last_updated_by = $4
		WHERE fine_id = $1 AND state = 'PENDING';
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelFine.FineID,
		modelFine.State,
		modelFine.LastUpdatedAt,
		modelFine.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to condone fine "+modelFine.FineID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM fines WHERE fine_id = $1);`, modelFine.FineID).Scan(&exists); err != nil {
			return apperrors.NewAppError(500, "failed to verify fine "+modelFine.FineID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrInvalidState
	}
	return nil
}

// FindFineByID retrieves a fine by its unique identifier.
func (r *PgxFineRepository) FindFineByID(ctx context.Context, fineID string) (*domain.Fine, error) {
	query := `SELECT ` + fineColumns + ` FROM fines WHERE fine_id = $1;`
	modelFine, err := scanFine(r.Pool.QueryRow(ctx, query, fineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fine by ID "+fineID, err)
	}
	domainFine := mapping.ToDomainFine(modelFine)
	return &domainFine, nil
}

// HasPendingFineForBorrower reports whether any PENDING fine exists for the
// borrower, across all loans and books.
func (r *PgxFineRepository) HasPendingFineForBorrower(ctx context.Context, borrowerID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM fines WHERE borrower_id = $1 AND state = 'PENDING');`, borrowerID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check pending fines for borrower "+borrowerID, err)
	}
	return exists, nil
}

// ListFines retrieves a filtered, token-paginated page of fines ordered by
// issue date, newest first.
func (r *PgxFineRepository) ListFines(ctx context.Context, filter portsrepo.FineListFilter, limit int, nextToken *string) ([]domain.Fine, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + fineColumns + ` FROM fines WHERE 1=1`
	args := []interface{}{}

	if filter.State != nil {
		args = append(args, string(*filter.State))
		baseQuery += ` AND state = $` + strconv.Itoa(len(args))
	}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		baseQuery += ` AND fine_type = $` + strconv.Itoa(len(args))
	}
	if filter.BorrowerID != nil {
		args = append(args, *filter.BorrowerID)
		baseQuery += ` AND borrower_id = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastIssuedAt, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastIssuedAt, lastCreatedAt)
		baseQuery += ` AND (issued_at, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY issued_at DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query fines", err)
	}
	defer rows.Close()

	modelFines := make([]models.Fine, 0, fetchLimit)
	for rows.Next() {
		f, err := scanFine(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan fine row", err)
		}
		modelFines = append(modelFines, f)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating fine rows", err)
	}

	var newNextToken *string
	if len(modelFines) == fetchLimit {
		lastItem := modelFines[limit-1]
		token := pagination.EncodeToken(lastItem.IssuedAt, lastItem.CreatedAt)
		newNextToken = &token
		modelFines = modelFines[:limit]
	}

	return mapping.ToDomainFineSlice(modelFines), newNextToken, nil
}
