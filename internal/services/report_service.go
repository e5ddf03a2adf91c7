package services

import (
	"fmt"
	"sort"
	"time"

	"gudang/internal/models"
	"gudang/internal/repositories"

	"github.com/shopspring/decimal"
)

// ReportService is the reporting engine behind the dashboard.
type ReportService struct {
	repo repositories.ReportRepository
}

// NewReportService creates a new ReportService.
func NewReportService(repo repositories.ReportRepository) *ReportService {
	return &ReportService{
		repo: repo,
	}
}

// DashboardSummary returns product count, the value of all sales at current
// prices, and the value of stock on hand. All fields are zero on an empty store.
func (s *ReportService) DashboardSummary() (*models.DashboardSummary, error) {
	count, err := s.repo.CountProducts()
	if err != nil {
		return nil, err
	}
	saleLines, err := s.repo.SaleValueLines()
	if err != nil {
		return nil, err
	}
	stockLines, err := s.repo.StockValueLines()
	if err != nil {
		return nil, err
	}

	return &models.DashboardSummary{
		TotalProducts:   count,
		TotalSalesValue: sumValues(saleLines),
		TotalStockValue: sumValues(stockLines),
	}, nil
}

func sumValues(lines []models.ValueLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Value())
	}
	return total
}

// SalesReport returns sales dated within [start, end] inclusive, newest first.
// A start after end yields an empty report.
func (s *ReportService) SalesReport(start, end string) ([]models.SalesReportRow, error) {
	if _, err := time.Parse(models.DateLayout, start); err != nil {
		return nil, fmt.Errorf("%w: start date %q is not YYYY-MM-DD", models.ErrInvalidInput, start)
	}
	if _, err := time.Parse(models.DateLayout, end); err != nil {
		return nil, fmt.Errorf("%w: end date %q is not YYYY-MM-DD", models.ErrInvalidInput, end)
	}
	if start > end {
		return []models.SalesReportRow{}, nil
	}
	return s.repo.SalesBetween(start, end)
}

// SalesTrend sums quantity per date, oldest date first.
func SalesTrend(rows []models.SalesReportRow) []models.TrendPoint {
	totals := make(map[string]int)
	for _, r := range rows {
		totals[r.Date] += r.QuantitySold
	}
	points := make([]models.TrendPoint, 0, len(totals))
	for date, qty := range totals {
		points = append(points, models.TrendPoint{Date: date, TotalQuantity: qty})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// SalesByProduct sums quantity per product name, ordered by name.
func SalesByProduct(rows []models.SalesReportRow) []models.ProductTotal {
	totals := make(map[string]int)
	for _, r := range rows {
		totals[r.ProductName] += r.QuantitySold
	}
	result := make([]models.ProductTotal, 0, len(totals))
	for name, qty := range totals {
		result = append(result, models.ProductTotal{ProductName: name, TotalQuantity: qty})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ProductName < result[j].ProductName })
	return result
}
