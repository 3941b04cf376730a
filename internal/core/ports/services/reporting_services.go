package services

import (
	"context"

	"github.com/SscSPs/library_circulation_app/internal/dto"
)

// ReportingSvcFacade builds tabular exports of the catalog.
type ReportingSvcFacade interface {
	// BuildCatalogReport returns the full catalog in report column order.
	BuildCatalogReport(ctx context.Context) (*dto.CatalogReportResponse, error)
}
