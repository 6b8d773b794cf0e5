// Package persistence stores point-in-time dive session snapshots so a
// session can be resumed after a service restart or audited later.
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Snapshot is a serialized point-in-time capture of a session's model
// state: depth, elapsed time, CNS/OTU, the gradient factors and the
// per-compartment tensions. It does not record the breathing gas or the
// rest of the model configuration.
type Snapshot struct {
	SessionID  uuid.UUID
	RecordedAt time.Time
	DepthM     float64
	ElapsedS   float64
	CNSPercent float64
	OTU        float64
	GFLow      uint8
	GFHigh     uint8
	// TissueTensionsN2 and TissueTensionsHe hold one bar reading per
	// ZH-L16C compartment, in compartment order.
	TissueTensionsN2 []float64
	TissueTensionsHe []float64
}

// Repository persists and retrieves session snapshots.
type Repository interface {
	SaveSnapshot(ctx context.Context, snap Snapshot) error
	LatestSnapshot(ctx context.Context, sessionID uuid.UUID) (*Snapshot, error)
	Close() error
}
