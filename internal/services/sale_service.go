package services

import (
	"fmt"
	"time"

	"gudang/internal/logging"
	"gudang/internal/models"
	"gudang/internal/repositories"

	"github.com/sirupsen/logrus"
)

// SaleEventPublisher receives a notification after each committed sale.
type SaleEventPublisher interface {
	PublishSaleRecorded(event map[string]interface{}) error
}

// SaleService is the sales recorder.
type SaleService struct {
	saleRepo    repositories.SaleRepository
	productRepo repositories.ProductRepository
	publisher   SaleEventPublisher // may be nil
	log         logrus.FieldLogger
	now         func() time.Time
}

// NewSaleService creates a new SaleService. publisher may be nil.
func NewSaleService(saleRepo repositories.SaleRepository, productRepo repositories.ProductRepository, publisher SaleEventPublisher, log logrus.FieldLogger) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		publisher:   publisher,
		log:         log,
		now:         time.Now,
	}
}

// ListSales retrieves every sale, newest first.
func (s *SaleService) ListSales() ([]models.Sale, error) {
	return s.saleRepo.GetAll()
}

// RecordSale records quantity units of productID sold on date (YYYY-MM-DD,
// empty for today) and decrements the product's stock. Either both changes
// apply or neither does.
func (s *SaleService) RecordSale(productID int64, quantity int, date string) (*models.Sale, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1, got %d", models.ErrInvalidInput, quantity)
	}
	if date == "" {
		date = s.now().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date %q is not YYYY-MM-DD", models.ErrInvalidInput, date)
	}

	sale := &models.Sale{
		ProductID:    productID,
		QuantitySold: quantity,
		Date:         date,
	}
	product, err := s.saleRepo.Record(sale)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"sale_id":         sale.ID,
		"product_id":      productID,
		"quantity_sold":   quantity,
		"remaining_stock": product.Stock,
	}).Info("sale recorded")
	s.publish(sale, product)
	return sale, nil
}

// publish is best effort: the sale is already committed.
func (s *SaleService) publish(sale *models.Sale, product *models.Product) {
	if s.publisher == nil {
		return
	}
	event := map[string]interface{}{
		"sale_id":         sale.ID,
		"product_id":      sale.ProductID,
		"product_name":    product.Name,
		"quantity_sold":   sale.QuantitySold,
		"date":            sale.Date,
		"remaining_stock": product.Stock,
	}
	if err := s.publisher.PublishSaleRecorded(event); err != nil {
		logging.LogError(s.log, "sales", "PublishSaleRecorded", event, err)
	}
}
