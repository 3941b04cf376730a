package handlers

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/SscSPs/library_circulation_app/internal/core/ports/services"
	"github.com/SscSPs/library_circulation_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// csvHeader is the fixed column order of the catalog export.
var csvHeader = []string{"inventory_code", "title", "author", "category", "publication_year", "available"}

// reportingHandler handles HTTP requests for catalog exports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/catalog", h.getCatalogReport)
		reports.GET("/catalog/csv", h.exportCatalogCSV)
	}
}

func (h *reportingHandler) getCatalogReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reportingService.BuildCatalogReport(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build catalog report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build catalog report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) exportCatalogCSV(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reportingService.BuildCatalogReport(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build catalog report for CSV export", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build catalog report"})
		return
	}

	filename := "catalog_" + time.Now().UTC().Format("20060102") + ".csv"
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.Write(csvHeader); err != nil {
		logger.Error("Failed to write CSV header", slog.String("error", err.Error()))
		return
	}
	for _, row := range report.Rows {
		record := []string{
			row.InventoryCode,
			row.Title,
			row.Author,
			string(row.Category),
			strconv.Itoa(row.PublicationYear),
			strconv.FormatBool(row.Available),
		}
		if err := w.Write(record); err != nil {
			logger.Error("Failed to write CSV row", slog.String("error", err.Error()))
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		logger.Error("Failed to flush CSV output", slog.String("error", err.Error()))
	}
}
