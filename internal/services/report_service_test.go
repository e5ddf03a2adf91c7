package services_test

import (
	"bytes"
	"testing"

	"gudang/internal/models"
	"gudang/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReportService_DashboardSummaryEmpty(t *testing.T) {
	mockRepo := new(MockReportRepository)
	service := services.NewReportService(mockRepo)

	mockRepo.On("CountProducts").Return(int64(0), nil).Once()
	mockRepo.On("SaleValueLines").Return([]models.ValueLine{}, nil).Once()
	mockRepo.On("StockValueLines").Return([]models.ValueLine{}, nil).Once()

	summary, err := service.DashboardSummary()
	require.NoError(t, err)
	assert.Zero(t, summary.TotalProducts)
	assert.True(t, summary.TotalSalesValue.IsZero())
	assert.True(t, summary.TotalStockValue.IsZero())
	mockRepo.AssertExpectations(t)
}

func TestReportService_DashboardSummary(t *testing.T) {
	mockRepo := new(MockReportRepository)
	service := services.NewReportService(mockRepo)

	mockRepo.On("CountProducts").Return(int64(2), nil).Once()
	mockRepo.On("SaleValueLines").Return([]models.ValueLine{
		{Price: decimal.NewFromInt(10), Quantity: 30},
		{Price: decimal.RequireFromString("0.1"), Quantity: 3},
	}, nil).Once()
	mockRepo.On("StockValueLines").Return([]models.ValueLine{
		{Price: decimal.NewFromInt(10), Quantity: 70},
		{Price: decimal.RequireFromString("0.1"), Quantity: 0},
	}, nil).Once()

	summary, err := service.DashboardSummary()
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalProducts)
	assert.Equal(t, "300.3", summary.TotalSalesValue.String())
	assert.Equal(t, "700", summary.TotalStockValue.String())
}

func TestReportService_SalesReport(t *testing.T) {
	mockRepo := new(MockReportRepository)
	service := services.NewReportService(mockRepo)

	rows := []models.SalesReportRow{{SaleID: 2, ProductName: "Pen", QuantitySold: 1, Date: "2025-01-15"}}
	mockRepo.On("SalesBetween", "2025-01-01", "2025-01-31").Return(rows, nil).Once()

	got, err := service.SalesReport("2025-01-01", "2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	_, err = service.SalesReport("2025-13-01", "2025-01-31")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = service.SalesReport("2025-01-01", "yesterday")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	got, err = service.SalesReport("2025-02-01", "2025-01-01")
	require.NoError(t, err)
	assert.Empty(t, got)
	mockRepo.AssertExpectations(t)
}

func TestSalesTrendAndByProduct(t *testing.T) {
	rows := []models.SalesReportRow{
		{ProductName: "Pen", QuantitySold: 3, Date: "2025-02-01"},
		{ProductName: "Ink", QuantitySold: 2, Date: "2025-01-15"},
		{ProductName: "Pen", QuantitySold: 4, Date: "2025-01-15"},
		{ProductName: "Pen", QuantitySold: 1, Date: "2025-01-01"},
	}

	assert.Equal(t, []models.TrendPoint{
		{Date: "2025-01-01", TotalQuantity: 1},
		{Date: "2025-01-15", TotalQuantity: 6},
		{Date: "2025-02-01", TotalQuantity: 3},
	}, services.SalesTrend(rows))

	assert.Equal(t, []models.ProductTotal{
		{ProductName: "Ink", TotalQuantity: 2},
		{ProductName: "Pen", TotalQuantity: 8},
	}, services.SalesByProduct(rows))

	assert.Empty(t, services.SalesTrend(nil))
	assert.Empty(t, services.SalesByProduct(nil))
}

func TestEndToEnd_PenScenario(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		products := services.NewProductService(b.products, quietLogger())
		sales := services.NewSaleService(b.sales, b.products, nil, quietLogger())
		reports := services.NewReportService(b.reports)

		pen, err := products.AddProduct("Pen", "Stationery", decimal.NewFromFloat(10.0), 100)
		require.NoError(t, err)
		assert.Equal(t, int64(1), pen.ID)

		_, err = sales.RecordSale(pen.ID, 30, "2025-03-01")
		require.NoError(t, err)

		got, err := products.GetProduct(pen.ID)
		require.NoError(t, err)
		assert.Equal(t, 70, got.Stock)

		summary, err := reports.DashboardSummary()
		require.NoError(t, err)
		assert.Equal(t, int64(1), summary.TotalProducts)
		assert.True(t, decimal.NewFromInt(300).Equal(summary.TotalSalesValue), "sales value %s", summary.TotalSalesValue)
		assert.True(t, decimal.NewFromInt(700).Equal(summary.TotalStockValue), "stock value %s", summary.TotalStockValue)

		rows, err := reports.SalesReport("2025-03-01", "2025-03-01")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Pen", rows[0].ProductName)
		assert.Equal(t, 30, rows[0].QuantitySold)
	})
}

func TestReportService_ExportSalesReport(t *testing.T) {
	mockRepo := new(MockReportRepository)
	service := services.NewReportService(mockRepo)

	rows := []models.SalesReportRow{
		{SaleID: 3, ProductName: "Pen", QuantitySold: 3, Date: "2025-01-20"},
		{SaleID: 2, ProductName: "Ink", QuantitySold: 2, Date: "2025-01-15"},
	}
	mockRepo.On("SalesBetween", "2025-01-01", "2025-01-31").Return(rows, nil).Once()

	var buf bytes.Buffer
	require.NoError(t, service.ExportSalesReport("2025-01-01", "2025-01-31", &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{services.SheetSales, services.SheetTrend, services.SheetByProduct}, f.GetSheetList())

	salesRows, err := f.GetRows(services.SheetSales)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Product", "Quantity Sold", "Date"},
		{"Pen", "3", "2025-01-20"},
		{"Ink", "2", "2025-01-15"},
	}, salesRows)

	trendRows, err := f.GetRows(services.SheetTrend)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-15", "2"}, trendRows[1])

	productRows, err := f.GetRows(services.SheetByProduct)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ink", "2"}, productRows[1])
	assert.Equal(t, []string{"Pen", "3"}, productRows[2])

	err = service.ExportSalesReport("bad", "2025-01-31", &bytes.Buffer{})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
