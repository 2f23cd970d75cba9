package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// LapTimeRecord represents a single observed lap time. Records are created
// by the ingestion pipeline and are read-only to the estimation engine.
type LapTimeRecord struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	TrackID    uuid.UUID       `db:"track_id" json:"track_id" validate:"required"`
	CarID      *uuid.UUID      `db:"car_id" json:"car_id"`
	LapTimeMs  int             `db:"lap_time_ms" json:"lap_time_ms" validate:"required,gt=0"`
	IsStock    bool            `db:"is_stock" json:"is_stock"`
	SourceURL  string          `db:"source_url" json:"source_url"`
	Conditions json.RawMessage `db:"conditions" json:"conditions"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`

	// Car spec fields joined for correlation and similar-car display.
	// Nil when the record is anonymous or the car has no published spec.
	CarName   *string `db:"car_name" json:"car_name,omitempty"`
	CarHP     *int    `db:"car_hp" json:"car_hp,omitempty"`
	CarWeight *int    `db:"car_weight" json:"car_weight,omitempty"`
}

// Seconds returns the lap time in seconds.
func (r *LapTimeRecord) Seconds() float64 {
	return float64(r.LapTimeMs) / 1000.0
}

// DriverType extracts the optional driver_type field from the free-form
// conditions metadata. Returns "" when absent or unparseable.
func (r *LapTimeRecord) DriverType() string {
	if len(r.Conditions) == 0 {
		return ""
	}
	var cond struct {
		DriverType string `json:"driver_type"`
	}
	if err := json.Unmarshal(r.Conditions, &cond); err != nil {
		return ""
	}
	return cond.DriverType
}
