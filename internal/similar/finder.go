// Package similar finds comparable vehicles with recorded lap times at a
// track when the exact car has no data of its own.
package similar

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/autorev/laptime-engine/internal/metrics"
	"github.com/autorev/laptime-engine/internal/repository"
	"github.com/autorev/laptime-engine/internal/trackstats"
)

// Comparable-car windows: ±20% horsepower, ±15% curb weight. The weight
// window is dropped entirely when the target car's weight is unknown.
const (
	hpWindow     = 0.20
	weightWindow = 0.15
)

// DefaultRawLimit caps the rows fetched before classification. This is a
// reasonable-effort search, not an exhaustive one.
const DefaultRawLimit = 200

// CarTime is one comparable-car lap time annotated with provenance.
type CarTime struct {
	CarID          *uuid.UUID `json:"car_id"`
	CarName        string     `json:"car_name"`
	Seconds        float64    `json:"seconds"`
	IsStock        bool       `json:"is_stock"`
	IsProfessional bool       `json:"is_professional"`
	HP             *int       `json:"hp"`
	Weight         *int       `json:"weight"`
}

// Finder performs the similar-car interpolation lookup.
type Finder struct {
	laps       repository.LapTimeRepository
	classifier trackstats.SourceClassifier
	limit      int
	logger     *logrus.Logger
}

// NewFinder creates a similar-car finder. limit <= 0 uses DefaultRawLimit.
func NewFinder(laps repository.LapTimeRepository, classifier trackstats.SourceClassifier, limit int, logger *logrus.Logger) *Finder {
	if classifier == nil {
		classifier = trackstats.NewDefaultClassifier()
	}
	if limit <= 0 {
		limit = DefaultRawLimit
	}
	return &Finder{
		laps:       laps,
		classifier: classifier,
		limit:      limit,
		logger:     logger,
	}
}

// FindSimilarTimes returns lap times of cars within the comparison windows,
// sorted ascending. Returns nil on query failure: similar-car data is a
// fallback, its absence degrades the tier rather than failing the request.
func (f *Finder) FindSimilarTimes(ctx context.Context, trackID uuid.UUID, hp, weight int) []CarTime {
	metrics.RecordSimilarCarLookup()

	minHP := int(math.Round(float64(hp) * (1 - hpWindow)))
	maxHP := int(math.Round(float64(hp) * (1 + hpWindow)))

	minWeight, maxWeight := 0, 0
	if weight > 0 {
		minWeight = int(math.Round(float64(weight) * (1 - weightWindow)))
		maxWeight = int(math.Round(float64(weight) * (1 + weightWindow)))
	}

	records, err := f.laps.GetByCarRange(ctx, trackID, minHP, maxHP, minWeight, maxWeight, f.limit)
	if err != nil {
		f.logger.WithError(err).WithField("track_id", trackID).Warn("Similar car query failed")
		return nil
	}

	times := make([]CarTime, 0, len(records))
	for _, rec := range records {
		ct := CarTime{
			CarID:          rec.CarID,
			Seconds:        rec.Seconds(),
			IsStock:        rec.IsStock,
			IsProfessional: f.classifier.IsProfessional(rec),
			HP:             rec.CarHP,
			Weight:         rec.CarWeight,
		}
		if rec.CarName != nil {
			ct.CarName = *rec.CarName
		}
		times = append(times, ct)
	}
	return times
}

// CountProfessional returns how many of the given times carry professional
// provenance.
func CountProfessional(times []CarTime) int {
	count := 0
	for _, t := range times {
		if t.IsProfessional {
			count++
		}
	}
	return count
}
