package dto

import "github.com/SscSPs/library_circulation_app/internal/core/domain"

// CatalogReportResponse carries the catalog export rows. Column order is fixed:
// inventory code, title, author, category, year, availability.
type CatalogReportResponse struct {
	GeneratedAt string                    `json:"generatedAt"`
	Rows        []domain.CatalogReportRow `json:"rows"`
}
