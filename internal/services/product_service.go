package services

import (
	"fmt"
	"strings"

	"gudang/internal/models"
	"gudang/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ProductService is the inventory ledger: it creates products and sets stock.
type ProductService struct {
	repo repositories.ProductRepository
	log  logrus.FieldLogger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, log logrus.FieldLogger) *ProductService {
	return &ProductService{
		repo: repo,
		log:  log,
	}
}

// ListProducts retrieves all products in id order.
func (s *ProductService) ListProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(id int64) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// AddProduct validates and stores a new product, returning it with its assigned ID.
func (s *ProductService) AddProduct(name, category string, price decimal.Decimal, stock int) (*models.Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: product name is required", models.ErrInvalidInput)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative, got %s", models.ErrInvalidInput, price)
	}
	if !models.PriceStorable(price) {
		return nil, fmt.Errorf("%w: price %s needs at most %d decimal places and must be below %s", models.ErrInvalidInput, price, models.PriceScale, models.MaxPrice)
	}
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative, got %d", models.ErrInvalidInput, stock)
	}

	product := &models.Product{
		Name:     name,
		Category: category,
		Price:    price,
		Stock:    stock,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"product_id": product.ID, "name": product.Name}).Info("product added")
	return product, nil
}

// UpdateStock overwrites the on-hand stock of a product.
func (s *ProductService) UpdateStock(id int64, stock int) (*models.Product, error) {
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative, got %d", models.ErrInvalidInput, stock)
	}
	product, err := s.repo.UpdateStock(id, stock)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"product_id": id, "stock": stock}).Info("stock updated")
	return product, nil
}
