package handlers

import (
	"bytes"
	"fmt"
	"time"

	"gudang/internal/models"
	"gudang/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ReportHandler serves the dashboard metrics and sales report.
type ReportHandler struct {
	service *services.ReportService
	log     logrus.FieldLogger
	now     func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService, log logrus.FieldLogger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log,
		now:     time.Now,
	}
}

// RegisterRoutes registers the report routes with the Fiber app.
func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	reportRoutes := router.Group("/reports")
	reportRoutes.Get("/dashboard", h.HandleDashboard)
	reportRoutes.Get("/sales", h.HandleSalesReport)
	reportRoutes.Get("/sales/export", h.HandleExportSalesReport)
}

// SalesReportResponse bundles the report rows with both chart series.
type SalesReportResponse struct {
	Start     string                  `json:"start"`
	End       string                  `json:"end"`
	Rows      []models.SalesReportRow `json:"rows"`
	Trend     []models.TrendPoint     `json:"trend"`
	ByProduct []models.ProductTotal   `json:"by_product"`
}

// HandleDashboard returns the summary metrics.
func (h *ReportHandler) HandleDashboard(c *fiber.Ctx) error {
	summary, err := h.service.DashboardSummary()
	if err != nil {
		return respondError(c, h.log, "Could not build dashboard", err)
	}
	return c.JSON(summary)
}

// HandleSalesReport returns sales within ?start=&end= with trend and per-product totals.
func (h *ReportHandler) HandleSalesReport(c *fiber.Ctx) error {
	start, end, err := h.dateRange(c)
	if err != nil {
		return respondError(c, h.log, "Could not build sales report", err)
	}
	rows, err := h.service.SalesReport(start, end)
	if err != nil {
		return respondError(c, h.log, "Could not build sales report", err)
	}
	return c.JSON(SalesReportResponse{
		Start:     start,
		End:       end,
		Rows:      rows,
		Trend:     services.SalesTrend(rows),
		ByProduct: services.SalesByProduct(rows),
	})
}

// HandleExportSalesReport streams the sales report as an XLSX attachment.
func (h *ReportHandler) HandleExportSalesReport(c *fiber.Ctx) error {
	start, end, err := h.dateRange(c)
	if err != nil {
		return respondError(c, h.log, "Could not export sales report", err)
	}
	var buf bytes.Buffer
	if err := h.service.ExportSalesReport(start, end, &buf); err != nil {
		return respondError(c, h.log, "Could not export sales report", err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=sales_%s_%s.xlsx", start, end))
	return c.Send(buf.Bytes())
}

// dateRange reads ?start= and ?end=. end defaults to today and start to
// January 1st of end's year, which needs a well-formed end.
func (h *ReportHandler) dateRange(c *fiber.Ctx) (string, string, error) {
	end := c.Query("end")
	if end == "" {
		end = h.now().Format(models.DateLayout)
	}
	start := c.Query("start")
	if start == "" {
		t, err := time.Parse(models.DateLayout, end)
		if err != nil {
			return "", "", fmt.Errorf("%w: end date %q is not YYYY-MM-DD", models.ErrInvalidInput, end)
		}
		start = time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC).Format(models.DateLayout)
	}
	return start, end, nil
}
