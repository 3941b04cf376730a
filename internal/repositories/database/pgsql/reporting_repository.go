package pgsql

import (
	"context"

	"github.com/SscSPs/library_circulation_app/internal/apperrors"
	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_circulation_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository serving report read models.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// FetchCatalogReportRows returns the full catalog projected onto the export
// columns, ordered by inventory code for a stable file layout.
func (r *PgxReportingRepository) FetchCatalogReportRows(ctx context.Context) ([]domain.CatalogReportRow, error) {
	query := `
		SELECT inventory_code, title, author, category, publication_year, available
		FROM books
		ORDER BY inventory_code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query catalog report rows", err)
	}
	defer rows.Close()

	reportRows := []domain.CatalogReportRow{}
	for rows.Next() {
		var row domain.CatalogReportRow
		var category string
		err := rows.Scan(
			&row.InventoryCode,
			&row.Title,
			&row.Author,
			&category,
			&row.PublicationYear,
			&row.Available,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan catalog report row", err)
		}
		row.Category = domain.BookCategory(category)
		reportRows = append(reportRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating catalog report rows", err)
	}

	return reportRows, nil
}
