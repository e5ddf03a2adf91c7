package repositories

import (
	"fmt"

	"gudang/internal/models"

	"gorm.io/gorm"
)

// GORMReportRepository runs the reporting queries against the store.
type GORMReportRepository struct {
	db *gorm.DB
}

// NewGORMReportRepository creates a new instance of GORMReportRepository.
func NewGORMReportRepository(db *gorm.DB) *GORMReportRepository {
	return &GORMReportRepository{
		db: db,
	}
}

// CountProducts returns the number of products in the ledger.
func (r *GORMReportRepository) CountProducts() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// SaleValueLines joins sales to products and returns current price with quantity sold.
func (r *GORMReportRepository) SaleValueLines() ([]models.ValueLine, error) {
	var lines []models.ValueLine
	err := r.db.Table("sales").
		Select("products.price AS price, sales.quantity_sold AS quantity").
		Joins("JOIN products ON products.product_id = sales.product_id").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load sale values: %w", err)
	}
	return lines, nil
}

// StockValueLines returns price and stock for every product.
func (r *GORMReportRepository) StockValueLines() ([]models.ValueLine, error) {
	var lines []models.ValueLine
	err := r.db.Table("products").
		Select("price, stock AS quantity").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load stock values: %w", err)
	}
	return lines, nil
}

// SalesBetween returns sales dated within [start, end] with product names, newest first.
func (r *GORMReportRepository) SalesBetween(start, end string) ([]models.SalesReportRow, error) {
	rows := []models.SalesReportRow{}
	err := r.db.Table("sales").
		Select("sales.sale_id AS sale_id, products.name AS product_name, sales.quantity_sold AS quantity_sold, sales.date AS date").
		Joins("JOIN products ON products.product_id = sales.product_id").
		Where("sales.date BETWEEN ? AND ?", start, end).
		Order("sales.date desc, sales.sale_id desc").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load sales report between %s and %s: %w", start, end, err)
	}
	return rows, nil
}
