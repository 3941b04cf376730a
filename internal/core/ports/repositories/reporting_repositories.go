package repositories

import (
	"context"

	"github.com/SscSPs/library_circulation_app/internal/core/domain"
)

// ReportingRepositoryFacade serves the read models behind tabular exports.
type ReportingRepositoryFacade interface {
	// FetchCatalogReportRows returns the full catalog in report column order.
	FetchCatalogReportRows(ctx context.Context) ([]domain.CatalogReportRow, error)
}
