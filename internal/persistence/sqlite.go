package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRepository persists snapshots to a local SQLite file, for
// single-node or development deployments that don't need Postgres.
// Compartment tension arrays are stored as JSON text columns since SQLite
// has no native array type.
type SQLiteRepository struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS dive_snapshots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	recorded_at DATETIME NOT NULL,
	depth_m REAL NOT NULL,
	elapsed_s REAL NOT NULL,
	cns_percent REAL NOT NULL,
	otu REAL NOT NULL,
	gf_low INTEGER NOT NULL,
	gf_high INTEGER NOT NULL,
	tissue_n2 TEXT NOT NULL,
	tissue_he TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_dive_snapshots_session ON dive_snapshots(session_id, recorded_at);
`

// NewSQLiteRepository opens (creating if necessary) a SQLite database at
// path and ensures its schema exists.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("persistence: opening sqlite db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("persistence: creating schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// SaveSnapshot inserts a new snapshot row.
func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	n2, err := json.Marshal(snap.TissueTensionsN2)
	if err != nil {
		return fmt.Errorf("persistence: encoding N2 tensions: %w", err)
	}
	he, err := json.Marshal(snap.TissueTensionsHe)
	if err != nil {
		return fmt.Errorf("persistence: encoding He tensions: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO dive_snapshots
			(session_id, recorded_at, depth_m, elapsed_s, cns_percent, otu, gf_low, gf_high, tissue_n2, tissue_he)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.SessionID.String(), snap.RecordedAt, snap.DepthM, snap.ElapsedS,
		snap.CNSPercent, snap.OTU, snap.GFLow, snap.GFHigh, string(n2), string(he),
	)
	if err != nil {
		return fmt.Errorf("persistence: inserting snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recently recorded snapshot for a
// session, or (nil, nil) if none exists.
func (r *SQLiteRepository) LatestSnapshot(ctx context.Context, sessionID uuid.UUID) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT session_id, recorded_at, depth_m, elapsed_s, cns_percent, otu, gf_low, gf_high, tissue_n2, tissue_he
		FROM dive_snapshots
		WHERE session_id = ?
		ORDER BY recorded_at DESC
		LIMIT 1`, sessionID.String())

	var (
		sessionIDStr     string
		recordedAt       time.Time
		depthM, elapsedS float64
		cnsPercent, otu  float64
		gfLow, gfHigh    uint8
		n2Text, heText   string
	)
	err := row.Scan(&sessionIDStr, &recordedAt, &depthM, &elapsedS, &cnsPercent, &otu, &gfLow, &gfHigh, &n2Text, &heText)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persistence: loading latest snapshot: %w", err)
	}

	parsedID, err := uuid.Parse(sessionIDStr)
	if err != nil {
		return nil, fmt.Errorf("persistence: parsing session id: %w", err)
	}

	var n2, he []float64
	if err := json.Unmarshal([]byte(n2Text), &n2); err != nil {
		return nil, fmt.Errorf("persistence: decoding N2 tensions: %w", err)
	}
	if err := json.Unmarshal([]byte(heText), &he); err != nil {
		return nil, fmt.Errorf("persistence: decoding He tensions: %w", err)
	}

	return &Snapshot{
		SessionID:        parsedID,
		RecordedAt:       recordedAt,
		DepthM:           depthM,
		ElapsedS:         elapsedS,
		CNSPercent:       cnsPercent,
		OTU:              otu,
		GFLow:            gfLow,
		GFHigh:           gfHigh,
		TissueTensionsN2: n2,
		TissueTensionsHe: he,
	}, nil
}

// Close releases the underlying database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
