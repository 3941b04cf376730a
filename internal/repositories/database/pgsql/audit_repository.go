package pgsql

import (
	"context"
	"strconv"

	"github.com/SscSPs/library_circulation_app/internal/apperrors"
	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_circulation_app/internal/core/ports/repositories"
	"github.com/SscSPs/library_circulation_app/internal/models"
	"github.com/SscSPs/library_circulation_app/internal/utils/mapping"
	"github.com/SscSPs/library_circulation_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new read-only repository for the audit
// trail. All inserts go through insertAuditEntryInTx inside the lifecycle
// transactions; no update or delete statement exists for audit_entries.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// ListRecentEntries retrieves trail entries newest first, optionally filtered
// by type, token paginated on occurred_at.
func (r *PgxAuditRepository) ListRecentEntries(ctx context.Context, entryType *domain.AuditEntryType, limit int, nextToken *string) ([]domain.AuditEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT entry_id, entry_type, book_id, loan_id, borrower_name, borrower_id, description, actor, occurred_at
		FROM audit_entries WHERE 1=1`
	args := []interface{}{}

	if entryType != nil {
		args = append(args, string(*entryType))
		baseQuery += ` AND entry_type = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastOccurredAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastOccurredAt)
		baseQuery += ` AND occurred_at < $` + strconv.Itoa(len(args))
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY occurred_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query audit entries", err)
	}
	defer rows.Close()

	modelEntries := make([]models.AuditEntry, 0, fetchLimit)
	for rows.Next() {
		var e models.AuditEntry
		err := rows.Scan(
			&e.EntryID,
			&e.Type,
			&e.BookID,
			&e.LoanID,
			&e.BorrowerName,
			&e.BorrowerID,
			&e.Description,
			&e.Actor,
			&e.OccurredAt,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan audit entry row", err)
		}
		modelEntries = append(modelEntries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating audit entry rows", err)
	}

	var newNextToken *string
	if len(modelEntries) == fetchLimit {
		lastItem := modelEntries[limit-1]
		token := pagination.EncodeDateBasedToken(lastItem.OccurredAt)
		newNextToken = &token
		modelEntries = modelEntries[:limit]
	}

	return mapping.ToDomainAuditEntrySlice(modelEntries), newNextToken, nil
}
