package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Snapshot is one persisted table.
type Snapshot struct {
	Name      string         `gorm:"type:text;primaryKey" json:"name"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Snapshot) TableName() string { return "store_snapshots" }

// GormBackend keeps tables as jsonb rows, for deployments without a durable
// local filesystem.
type GormBackend struct {
	db *gorm.DB
}

func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, fmt.Errorf("migrate snapshots: %w", err)
	}
	return &GormBackend{db: db}, nil
}

func (g *GormBackend) Load(ctx context.Context, table string) ([]byte, error) {
	var snap Snapshot
	if err := g.db.WithContext(ctx).First(&snap, "name = ?", table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return []byte(snap.Payload), nil
}

func (g *GormBackend) Save(ctx context.Context, table string, data []byte) error {
	snap := Snapshot{Name: table, Payload: datatypes.JSON(data)}
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&snap).Error
}

func (g *GormBackend) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
