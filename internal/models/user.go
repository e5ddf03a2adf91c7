package models

// User is a dashboard account. The password column holds a bcrypt hash.
type User struct {
	Username string `json:"username" gorm:"primaryKey;type:varchar(100)"`
	Password string `json:"-" gorm:"type:varchar(255);not null"`
}

// TableName pins the table name used by every driver.
func (User) TableName() string {
	return "users"
}
