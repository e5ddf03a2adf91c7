package models

import "time"

// CurrentSchemaVersion is the only schema layout this build reads and writes.
const CurrentSchemaVersion = 1

// SchemaVersion records the layout version a store was created with.
type SchemaVersion struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName pins the table name used by every driver.
func (SchemaVersion) TableName() string {
	return "schema_versions"
}
