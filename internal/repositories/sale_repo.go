package repositories

import (
	"gudang/internal/models"
)

// SaleRepository defines the interface for sale data access.
type SaleRepository interface {
	// GetAll returns every sale, newest first.
	GetAll() ([]models.Sale, error)
	// Record inserts sale and decrements the product's stock as one unit.
	// It returns the product as it stands after the decrement.
	Record(sale *models.Sale) (*models.Product, error)
}
