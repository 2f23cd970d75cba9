package repository

import (
	"fmt"

	"github.com/autorev/laptime-engine/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	LapTime LapTimeRepository
	Track   TrackRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		LapTime: NewPostgresLapTimeRepository(db),
		Track:   NewPostgresTrackRepository(db),
	}, nil
}
