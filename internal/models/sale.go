package models

// DateLayout is the calendar date format stored in sales.date.
const DateLayout = "2006-01-02"

// Sale is an immutable record of a quantity sold on a date.
type Sale struct {
	ID           int64   `json:"id" gorm:"column:sale_id;primaryKey;autoIncrement"`
	ProductID    int64   `json:"product_id" gorm:"not null;index"`
	Product      Product `json:"-" gorm:"foreignKey:ProductID;references:ID"`
	QuantitySold int     `json:"quantity_sold" gorm:"column:quantity_sold;not null"`
	Date         string  `json:"date" gorm:"column:date;type:varchar(10);not null;index"`
}

// TableName pins the table name used by every driver.
func (Sale) TableName() string {
	return "sales"
}
