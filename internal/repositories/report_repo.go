package repositories

import "gudang/internal/models"

// ReportRepository defines the read-only queries behind the dashboard and sales report.
type ReportRepository interface {
	CountProducts() (int64, error)
	// SaleValueLines pairs every sale's quantity with its product's current price.
	SaleValueLines() ([]models.ValueLine, error)
	// StockValueLines pairs every product's stock with its price.
	StockValueLines() ([]models.ValueLine, error)
	// SalesBetween returns sales dated within [start, end], newest first.
	SalesBetween(start, end string) ([]models.SalesReportRow, error)
}
