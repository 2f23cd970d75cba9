package models

import (
	"github.com/google/uuid"

	"github.com/autorev/laptime-engine/internal/stats"
)

// TrackStatsSummary is the cached statistical aggregate over all lap time
// records for one track. All times are in seconds. The percentile ladder is
// computed over one sorted IQR-filtered array, so P5 <= P25 <= P50 <= P65 <= P90
// holds by construction.
type TrackStatsSummary struct {
	TrackID   uuid.UUID `json:"track_id"`
	TrackSlug string    `json:"track_slug"`

	// Sample counts.
	Total        int `json:"total"`
	Professional int `json:"professional"`
	Amateur      int `json:"amateur"`
	Filtered     int `json:"filtered"`
	Stock        int `json:"stock"`

	// Central and extremal statistics over all (unfiltered) times.
	Fastest float64 `json:"fastest"`
	Slowest float64 `json:"slowest"`
	Median  float64 `json:"median"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`

	// Percentile ladder over the IQR-filtered times.
	P5  float64 `json:"p5"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P65 float64 `json:"p65"`
	P90 float64 `json:"p90"`

	// ProReferenceTime is the authoritative reference attached to the track
	// record when present, otherwise the fastest filtered professional time.
	ProReferenceTime          *float64 `json:"pro_reference_time"`
	ProReferenceAuthoritative bool     `json:"pro_reference_authoritative"`

	// Stock-only percentiles, nil-safe via Stock count.
	StockP25 float64 `json:"stock_p25"`
	StockP50 float64 `json:"stock_p50"`
	StockP65 float64 `json:"stock_p65"`
	StockP90 float64 `json:"stock_p90"`

	HPCorrelation *stats.Correlation `json:"hp_correlation"`
}

// HasProReference reports whether a professional baseline exists, from
// either the curated track record or published professional records.
func (s *TrackStatsSummary) HasProReference() bool {
	return s != nil && s.ProReferenceTime != nil
}
