package repositories

import (
	"errors"
	"fmt"

	"gudang/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products in id order.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("product_id asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id int64) (*models.Product, error) {
	return findProduct(r.db, id)
}

// Create inserts product and fills in its assigned ID.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateStock overwrites the stock of product id.
func (r *GORMProductRepository) UpdateStock(id int64, stock int) (*models.Product, error) {
	var product *models.Product
	err := r.db.Transaction(func(tx *gorm.DB) error {
		found, err := findProduct(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Product{}).Where("product_id = ?", id).Update("stock", stock).Error; err != nil {
			return fmt.Errorf("failed to update stock for product %d: %w", id, err)
		}
		found.Stock = stock
		product = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func findProduct(db *gorm.DB, id int64) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, "product_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}
