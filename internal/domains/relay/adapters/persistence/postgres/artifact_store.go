package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
	"github.com/Apurer/go-gin-order-bridge/internal/domains/relay/ports"
	"github.com/Apurer/go-gin-order-bridge/internal/shared/projection"
)

var _ ports.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore keeps POS artifacts in PostgreSQL using GORM.
type ArtifactStore struct {
	db *gorm.DB
}

// NewArtifactStore wires a PostgreSQL-backed store. Caller manages DB
// lifecycle and applies the schema with migrations.Run.
func NewArtifactStore(db *gorm.DB) *ArtifactStore {
	return &ArtifactStore{db: db}
}

// artifactRecord maps an artifact to the pos_artifacts table.
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

// Save inserts or replaces the artifact of an order.
func (s *ArtifactStore) Save(ctx context.Context, artifact types.Artifact) (*types.ArtifactProjection, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(artifact)
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"receipt_id":      record.ReceiptID,
				"event_id":        record.EventID,
				"source_order_id": record.SourceOrderID,
				"body":            record.Body,
				"unsupported":     record.Unsupported,
				"updated_at":      gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, record.OrderID)
}

// Get fetches an artifact by POS order id.
func (s *ArtifactStore) Get(ctx context.Context, orderID int64) (*types.ArtifactProjection, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record artifactRecord
	if err := s.db.WithContext(ctx).First(&record, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

func (s *ArtifactStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres artifact store not configured")
	}
	return nil
}

func toRecord(a types.Artifact) artifactRecord {
	return artifactRecord{
		OrderID:       a.OrderID,
		ReceiptID:     a.ReceiptID,
		EventID:       a.EventID,
		SourceOrderID: a.SourceOrderID,
		Body:          append([]byte(nil), a.Body...),
		Unsupported:   pq.StringArray(append([]string{}, a.Unsupported...)),
	}
}

func (r artifactRecord) toProjection() *types.ArtifactProjection {
	var unsupported []string
	if len(r.Unsupported) > 0 {
		unsupported = append([]string(nil), r.Unsupported...)
	}
	return &types.ArtifactProjection{
		Entity: types.Artifact{
			OrderID:       r.OrderID,
			ReceiptID:     r.ReceiptID,
			EventID:       r.EventID,
			SourceOrderID: r.SourceOrderID,
			Body:          r.Body,
			Unsupported:   unsupported,
		},
		Metadata: projection.Metadata{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
	}
}
