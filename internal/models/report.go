package models

import "github.com/shopspring/decimal"

// DashboardSummary holds the headline metrics shown on the dashboard.
type DashboardSummary struct {
	TotalProducts   int64           `json:"total_products"`
	TotalSalesValue decimal.Decimal `json:"total_sales_value"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
}

// SalesReportRow is one sale joined with its product name.
type SalesReportRow struct {
	SaleID       int64  `json:"sale_id"`
	ProductName  string `json:"product_name"`
	QuantitySold int    `json:"quantity_sold"`
	Date         string `json:"date"`
}

// TrendPoint is the quantity sold on one date.
type TrendPoint struct {
	Date          string `json:"date"`
	TotalQuantity int    `json:"total_quantity"`
}

// ProductTotal is the quantity sold of one product.
type ProductTotal struct {
	ProductName   string `json:"product_name"`
	TotalQuantity int    `json:"total_quantity"`
}

// ValueLine is a price and quantity pair; its value is their product.
type ValueLine struct {
	Price    decimal.Decimal
	Quantity int
}

// Value returns price times quantity.
func (l ValueLine) Value() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
