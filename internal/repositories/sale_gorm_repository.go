package repositories

import (
	"fmt"

	"gudang/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMSaleRepository is a GORM implementation of SaleRepository.
type GORMSaleRepository struct {
	db *gorm.DB
}

// NewGORMSaleRepository creates a new instance of GORMSaleRepository.
func NewGORMSaleRepository(db *gorm.DB) *GORMSaleRepository {
	return &GORMSaleRepository{
		db: db,
	}
}

// GetAll retrieves every sale, newest first.
func (r *GORMSaleRepository) GetAll() ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.db.Order("sale_id desc").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to get all sales: %w", err)
	}
	return sales, nil
}

// Record checks stock, decrements it and inserts the sale in one transaction.
// The decrement is guarded by stock >= quantity so a concurrent session that
// already consumed the stock makes this one fail rather than oversell.
func (r *GORMSaleRepository) Record(sale *models.Sale) (*models.Product, error) {
	var product *models.Product
	err := r.db.Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() == "postgres" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		found, err := findProduct(query, sale.ProductID)
		if err != nil {
			return err
		}
		if sale.QuantitySold > found.Stock {
			return insufficientStock(found, sale.QuantitySold)
		}

		res := tx.Model(&models.Product{}).
			Where("product_id = ? AND stock >= ?", sale.ProductID, sale.QuantitySold).
			UpdateColumn("stock", gorm.Expr("stock - ?", sale.QuantitySold))
		if res.Error != nil {
			return fmt.Errorf("failed to decrement stock for product %d: %w", sale.ProductID, res.Error)
		}
		if res.RowsAffected == 0 {
			return insufficientStock(found, sale.QuantitySold)
		}

		if err := tx.Omit(clause.Associations).Create(sale).Error; err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}
		found.Stock -= sale.QuantitySold
		product = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func insufficientStock(product *models.Product, requested int) error {
	return fmt.Errorf("%w for product %s (requested: %d, available: %d)", models.ErrInsufficientStock, product.Name, requested, product.Stock)
}
