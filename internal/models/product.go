package models

import "github.com/shopspring/decimal"

// Product represents a stocked item in the ledger.
type Product struct {
	ID       int64           `json:"id" gorm:"column:product_id;primaryKey;autoIncrement"`
	Name     string          `json:"name" gorm:"type:varchar(100);not null"`
	Category string          `json:"category" gorm:"type:varchar(100)"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(20,4);not null"`
	Stock    int             `json:"stock" gorm:"not null;check:stock >= 0"`
}

// TableName pins the table name used by every driver.
func (Product) TableName() string {
	return "products"
}

// StockValue is price times on-hand stock.
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// PriceScale is the number of fractional digits the price column keeps.
const PriceScale = 4

// MaxPrice is the exclusive upper bound on prices. Together with PriceScale it
// keeps a price within the 15 significant digits SQLite stores exactly.
var MaxPrice = decimal.New(1, 11)

// PriceStorable reports whether price survives a store round trip unchanged.
func PriceStorable(price decimal.Decimal) bool {
	return price.Equal(price.Truncate(PriceScale)) && price.Abs().LessThan(MaxPrice)
}
