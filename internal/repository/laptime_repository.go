package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/autorev/laptime-engine/internal/database"
	"github.com/autorev/laptime-engine/internal/metrics"
	"github.com/autorev/laptime-engine/internal/models"
)

const errScanLapTime = "failed to scan lap time: %w"

// PostgresLapTimeRepository implements LapTimeRepository for PostgreSQL
type PostgresLapTimeRepository struct {
	db *database.DB
}

// NewPostgresLapTimeRepository creates a new lap time repository
func NewPostgresLapTimeRepository(db *database.DB) LapTimeRepository {
	return &PostgresLapTimeRepository{db: db}
}

// GetByTrackID retrieves all non-null lap times for a track, sorted ascending,
// with car specs left-joined for correlation and display purposes.
func (r *PostgresLapTimeRepository) GetByTrackID(ctx context.Context, trackID uuid.UUID) ([]*models.LapTimeRecord, error) {
	defer observe("lap_times_by_track", time.Now())

	query := `
		SELECT lt.id, lt.track_id, lt.car_id, lt.lap_time_ms, lt.is_stock,
		       lt.source_url, lt.conditions, lt.created_at,
		       c.name, c.hp, c.curb_weight
		FROM lap_times lt
		LEFT JOIN cars c ON c.id = lt.car_id
		WHERE lt.track_id = $1 AND lt.lap_time_ms IS NOT NULL AND lt.lap_time_ms > 0
		ORDER BY lt.lap_time_ms ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, trackID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lap times by track: %w", err)
	}
	defer rows.Close()

	var records []*models.LapTimeRecord
	for rows.Next() {
		rec := &models.LapTimeRecord{}
		err := rows.Scan(
			&rec.ID, &rec.TrackID, &rec.CarID, &rec.LapTimeMs, &rec.IsStock,
			&rec.SourceURL, &rec.Conditions, &rec.CreatedAt,
			&rec.CarName, &rec.CarHP, &rec.CarWeight,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanLapTime, err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// GetByCarRange retrieves lap times at a track for comparable cars. The car
// join is inner here: a record without a spec sheet cannot match a spec
// window. maxWeight == 0 disables the weight filter.
func (r *PostgresLapTimeRepository) GetByCarRange(ctx context.Context, trackID uuid.UUID, minHP, maxHP, minWeight, maxWeight, limit int) ([]*models.LapTimeRecord, error) {
	defer observe("lap_times_by_car_range", time.Now())

	query := `
		SELECT lt.id, lt.track_id, lt.car_id, lt.lap_time_ms, lt.is_stock,
		       lt.source_url, lt.conditions, lt.created_at,
		       c.name, c.hp, c.curb_weight
		FROM lap_times lt
		JOIN cars c ON c.id = lt.car_id
		WHERE lt.track_id = $1 AND lt.lap_time_ms IS NOT NULL AND lt.lap_time_ms > 0
		  AND c.hp BETWEEN $2 AND $3
		  AND ($5 = 0 OR c.curb_weight BETWEEN $4 AND $5)
		ORDER BY lt.lap_time_ms ASC
		LIMIT $6
	`

	rows, err := r.db.GetPool().Query(ctx, query, trackID, minHP, maxHP, minWeight, maxWeight, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query lap times by car range: %w", err)
	}
	defer rows.Close()

	var records []*models.LapTimeRecord
	for rows.Next() {
		rec := &models.LapTimeRecord{}
		err := rows.Scan(
			&rec.ID, &rec.TrackID, &rec.CarID, &rec.LapTimeMs, &rec.IsStock,
			&rec.SourceURL, &rec.Conditions, &rec.CreatedAt,
			&rec.CarName, &rec.CarHP, &rec.CarWeight,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanLapTime, err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func observe(query string, start time.Time) {
	metrics.ObserveDBQuery(query, time.Since(start).Seconds())
}
