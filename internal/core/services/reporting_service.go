package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/library_circulation_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_circulation_app/internal/core/ports/services"
	"github.com/SscSPs/library_circulation_app/internal/dto"
	"github.com/SscSPs/library_circulation_app/internal/middleware"
)

// reportingService builds tabular catalog exports for the presentation layer.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// BuildCatalogReport returns every catalog row in report column order.
// Implements portssvc.ReportingSvcFacade
func (s *reportingService) BuildCatalogReport(ctx context.Context) (*dto.CatalogReportResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rows, err := s.reportingRepo.FetchCatalogReportRows(ctx)
	if err != nil {
		logger.Error("Failed to fetch catalog report rows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to build catalog report: %w", err)
	}

	resp := &dto.CatalogReportResponse{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Rows:        rows,
	}

	logger.Info("Catalog report built", slog.Int("row_count", len(rows)))
	return resp, nil
}
