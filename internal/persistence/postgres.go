package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/deepwater-eng/buhlmann/internal/log"
)

// snapshotRow is the GORM row shape for a persisted Snapshot. Tissue
// tensions are stored as native Postgres float8 arrays via pgtype so a
// full compartment bank round-trips without a JSON detour.
type snapshotRow struct {
	ID         uint      `gorm:"primaryKey"`
	SessionID  uuid.UUID `gorm:"type:uuid;index"`
	RecordedAt time.Time `gorm:"index"`
	DepthM     float64
	ElapsedS   float64
	CNSPercent float64
	OTU        float64
	GFLow      uint8
	GFHigh     uint8
	TissueN2   pgtype.Float8Array `gorm:"type:float8[]"`
	TissueHe   pgtype.Float8Array `gorm:"type:float8[]"`
}

func (snapshotRow) TableName() string {
	return "dive_snapshots"
}

// PostgresRepository persists snapshots to a Postgres/TimescaleDB
// database via GORM.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository connects to the database at dsn and ensures the
// snapshot table exists.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("persistence: connecting to postgres: %w", err)
	}
	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, fmt.Errorf("persistence: migrating dive_snapshots: %w", err)
	}
	return &PostgresRepository{db: db}, nil
}

// AutoMigrate ensures the dive_snapshots table exists. GORM's AutoMigrate
// is idempotent, so calling this after NewPostgresRepository (which also
// migrates) is safe.
func (r *PostgresRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&snapshotRow{})
}

// SaveSnapshot inserts a new snapshot row.
func (r *PostgresRepository) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	row := snapshotRow{
		SessionID:  snap.SessionID,
		RecordedAt: snap.RecordedAt,
		DepthM:     snap.DepthM,
		ElapsedS:   snap.ElapsedS,
		CNSPercent: snap.CNSPercent,
		OTU:        snap.OTU,
		GFLow:      snap.GFLow,
		GFHigh:     snap.GFHigh,
	}
	if err := row.TissueN2.Set(snap.TissueTensionsN2); err != nil {
		return fmt.Errorf("persistence: encoding N2 tensions: %w", err)
	}
	if err := row.TissueHe.Set(snap.TissueTensionsHe); err != nil {
		return fmt.Errorf("persistence: encoding He tensions: %w", err)
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// LatestSnapshot returns the most recently recorded snapshot for a
// session, or (nil, nil) if none exists.
func (r *PostgresRepository) LatestSnapshot(ctx context.Context, sessionID uuid.UUID) (*Snapshot, error) {
	var row snapshotRow
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("recorded_at DESC").
		First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persistence: loading latest snapshot: %w", err)
	}

	var n2, he []float64
	if err := row.TissueN2.AssignTo(&n2); err != nil {
		return nil, fmt.Errorf("persistence: decoding N2 tensions: %w", err)
	}
	if err := row.TissueHe.AssignTo(&he); err != nil {
		return nil, fmt.Errorf("persistence: decoding He tensions: %w", err)
	}

	return &Snapshot{
		SessionID:        row.SessionID,
		RecordedAt:       row.RecordedAt,
		DepthM:           row.DepthM,
		ElapsedS:         row.ElapsedS,
		CNSPercent:       row.CNSPercent,
		OTU:              row.OTU,
		GFLow:            row.GFLow,
		GFHigh:           row.GFHigh,
		TissueTensionsN2: n2,
		TissueTensionsHe: he,
	}, nil
}

// Close releases the underlying database connection pool.
func (r *PostgresRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
