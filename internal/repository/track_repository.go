package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/autorev/laptime-engine/internal/database"
	"github.com/autorev/laptime-engine/internal/models"
)

// PostgresTrackRepository implements TrackRepository for PostgreSQL
type PostgresTrackRepository struct {
	db *database.DB
}

// NewPostgresTrackRepository creates a new track repository
func NewPostgresTrackRepository(db *database.DB) TrackRepository {
	return &PostgresTrackRepository{db: db}
}

// GetBySlug retrieves a track by its URL slug
func (r *PostgresTrackRepository) GetBySlug(ctx context.Context, slug string) (*models.Track, error) {
	defer observe("track_by_slug", time.Now())

	query := `
		SELECT id, slug, name, pro_reference_time, length_miles, created_at, updated_at
		FROM tracks WHERE slug = $1
	`

	track := &models.Track{}
	err := r.db.GetPool().QueryRow(ctx, query, slug).Scan(
		&track.ID, &track.Slug, &track.Name, &track.ProReferenceTime,
		&track.LengthMiles, &track.CreatedAt, &track.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get track: %w", err)
	}

	return track, nil
}

// GetByID retrieves a track by ID
func (r *PostgresTrackRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Track, error) {
	defer observe("track_by_id", time.Now())

	query := `
		SELECT id, slug, name, pro_reference_time, length_miles, created_at, updated_at
		FROM tracks WHERE id = $1
	`

	track := &models.Track{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&track.ID, &track.Slug, &track.Name, &track.ProReferenceTime,
		&track.LengthMiles, &track.CreatedAt, &track.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get track: %w", err)
	}

	return track, nil
}
