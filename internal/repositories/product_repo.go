package repositories

import (
	"gudang/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id int64) (*models.Product, error)
	Create(product *models.Product) error
	UpdateStock(id int64, stock int) (*models.Product, error)
}
