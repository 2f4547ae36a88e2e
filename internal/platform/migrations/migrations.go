package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&orderRecord{})
}

// Order schema mirrors the orders GORM adapter. Items are kept as a JSON
// document so the table is identical on PostgreSQL and SQLite.
type orderRecord struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Name         string    `gorm:"column:name;not null"`
	Phone        string    `gorm:"column:phone;not null"`
	Address      string    `gorm:"column:address;not null"`
	ItemsJSON    string    `gorm:"column:items_json;type:text;not null"`
	Total        int64     `gorm:"column:total;not null"`
	SubmissionID *string   `gorm:"column:submission_id;size:128;uniqueIndex:idx_orders_submission_id"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;index:idx_orders_created_at"`
}

func (orderRecord) TableName() string { return "orders" }
