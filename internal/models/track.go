package models

import (
	"time"

	"github.com/google/uuid"
)

// Track represents a race track known to the platform.
type Track struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Slug string    `db:"slug" json:"slug" validate:"required"`
	Name string    `db:"name" json:"name" validate:"required"`

	// ProReferenceTime is an authoritative professional lap time in seconds,
	// curated by editors. When set it outranks any crowd-sourced record.
	ProReferenceTime *float64 `db:"pro_reference_time" json:"pro_reference_time"`

	LengthMiles *float64  `db:"length_miles" json:"length_miles"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Car represents the spec sheet of a vehicle in the car database.
type Car struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name" validate:"required"`
	HP         int       `db:"hp" json:"hp" validate:"gt=0"`
	CurbWeight *int      `db:"curb_weight" json:"curb_weight"`
}
