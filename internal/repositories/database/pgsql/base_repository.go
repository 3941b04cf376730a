package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SscSPs/library_circulation_app/internal/apperrors"
	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	"github.com/SscSPs/library_circulation_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// insertAuditEntryInTx appends one trail row inside the caller's transaction.
// The trail has no standalone write path; every entry rides the transaction of
// the circulation event it records, so a committed event always has its entry
// and a rolled back one never does.
func insertAuditEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditEntry) error {
	modelEntry := mapping.ToModelAuditEntry(entry)
	query := `
		INSERT INTO audit_entries (entry_id, entry_type, book_id, loan_id, borrower_name, borrower_id, description, actor, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		modelEntry.EntryID,
		modelEntry.Type,
		modelEntry.BookID,
		modelEntry.LoanID,
		modelEntry.BorrowerName,
		modelEntry.BorrowerID,
		modelEntry.Description,
		modelEntry.Actor,
		modelEntry.OccurredAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit entry "+modelEntry.EntryID, err)
	}
	return nil
}
