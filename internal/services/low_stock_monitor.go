package services

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// SaleRecordedEvent is the payload published after each committed sale.
type SaleRecordedEvent struct {
	SaleID         int64  `json:"sale_id"`
	ProductID      int64  `json:"product_id"`
	ProductName    string `json:"product_name"`
	QuantitySold   int    `json:"quantity_sold"`
	Date           string `json:"date"`
	RemainingStock int    `json:"remaining_stock"`
}

// LowStockMonitor consumes sale events and warns when a product runs low.
type LowStockMonitor struct {
	threshold int
	log       logrus.FieldLogger
}

// NewLowStockMonitor warns when remaining stock is at or below threshold.
func NewLowStockMonitor(threshold int, log logrus.FieldLogger) *LowStockMonitor {
	return &LowStockMonitor{threshold: threshold, log: log}
}

// HandleSaleEvent decodes a sale event body and logs a warning on low stock.
func (m *LowStockMonitor) HandleSaleEvent(body []byte) error {
	var event SaleRecordedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to decode sale event: %w", err)
	}
	if event.ProductID == 0 {
		return fmt.Errorf("sale event without product_id")
	}

	entry := m.log.WithFields(logrus.Fields{
		"sale_id":         event.SaleID,
		"product_id":      event.ProductID,
		"product_name":    event.ProductName,
		"remaining_stock": event.RemainingStock,
	})
	if event.RemainingStock <= m.threshold {
		entry.Warn("product stock is low")
		return nil
	}
	entry.Debug("sale event processed")
	return nil
}
