package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&artifactRecord{},
	)
}

// Artifact schema mirrors the relay Postgres adapter.
type artifactRecord struct {
	OrderID       int64          `gorm:"primaryKey;column:order_id;autoIncrement:false"`
	ReceiptID     string         `gorm:"column:receipt_id;type:varchar(64);index"`
	EventID       string         `gorm:"column:event_id;type:varchar(64);index"`
	SourceOrderID string         `gorm:"column:source_order_id"`
	Body          []byte         `gorm:"column:body;type:bytea"`
	Unsupported   pq.StringArray `gorm:"column:unsupported;type:text[]"`
	CreatedAt     time.Time      `gorm:"column:created_at;index"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;index"`
}

func (artifactRecord) TableName() string { return "pos_artifacts" }
