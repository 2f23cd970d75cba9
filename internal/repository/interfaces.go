package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/autorev/laptime-engine/internal/models"
)

// LapTimeRepository defines the read-only interface for lap time data access.
// The estimation engine never mutates lap time records.
type LapTimeRepository interface {
	// GetByTrackID returns all non-null lap times for a track, sorted
	// ascending by time, with car specs joined where available.
	GetByTrackID(ctx context.Context, trackID uuid.UUID) ([]*models.LapTimeRecord, error)

	// GetByCarRange returns lap times at a track for cars whose specs fall
	// within the given horsepower and curb weight windows, sorted ascending.
	// A zero maxWeight disables the weight filter entirely. At most limit
	// rows are returned.
	GetByCarRange(ctx context.Context, trackID uuid.UUID, minHP, maxHP, minWeight, maxWeight, limit int) ([]*models.LapTimeRecord, error)
}

// TrackRepository defines the read-only interface for track data access.
type TrackRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Track, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Track, error)
}
