// Package trackstats builds and caches the per-track statistical summary
// that the estimation tiers are selected from.
package trackstats

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/autorev/laptime-engine/internal/metrics"
	"github.com/autorev/laptime-engine/internal/models"
	"github.com/autorev/laptime-engine/internal/repository"
	"github.com/autorev/laptime-engine/internal/stats"
)

// minFilteredForLadder is the smallest filtered sample the percentile
// ladder is computed from; below it the unfiltered array is used to avoid
// percentile collapse on tiny samples.
const minFilteredForLadder = 5

// Builder computes TrackStatsSummary objects from raw lap time records.
//
// Every failure path returns nil rather than an error: lap time estimation
// is a value-add feature and must never break a page that embeds it. A nil
// summary degrades to the insufficient-data tier downstream.
type Builder struct {
	laps       repository.LapTimeRepository
	tracks     repository.TrackRepository
	classifier SourceClassifier
	cache      *Cache
	logger     *logrus.Logger
}

// NewBuilder creates a stats builder. A nil classifier falls back to the
// default URL-based one.
func NewBuilder(
	laps repository.LapTimeRepository,
	tracks repository.TrackRepository,
	classifier SourceClassifier,
	cache *Cache,
	logger *logrus.Logger,
) *Builder {
	if classifier == nil {
		classifier = NewDefaultClassifier()
	}
	return &Builder{
		laps:       laps,
		tracks:     tracks,
		classifier: classifier,
		cache:      cache,
		logger:     logger,
	}
}

// TrackStats returns the cached or freshly computed summary for a track
// slug, or nil when the track is unknown or has no usable data.
func (b *Builder) TrackStats(ctx context.Context, slug string) *models.TrackStatsSummary {
	if b.cache != nil {
		if summary, found := b.cache.Get(slug); found {
			return summary
		}
	}
	return b.Refresh(ctx, slug)
}

// Refresh bypasses the cache, recomputes the summary and stores it. Used by
// the prewarm scheduler to keep popular tracks warm.
func (b *Builder) Refresh(ctx context.Context, slug string) *models.TrackStatsSummary {
	track, err := b.tracks.GetBySlug(ctx, slug)
	if err != nil {
		b.logger.WithError(err).WithField("track", slug).Warn("Track lookup failed, estimation degrades to insufficient data")
		return nil
	}

	summary := b.TrackStatsByID(ctx, track)
	if summary != nil && b.cache != nil {
		b.cache.Set(slug, summary)
	}
	return summary
}

// TrackStatsByID computes the summary for an already resolved track.
func (b *Builder) TrackStatsByID(ctx context.Context, track *models.Track) *models.TrackStatsSummary {
	records, err := b.laps.GetByTrackID(ctx, track.ID)
	if err != nil {
		b.logger.WithError(err).WithField("track", track.Slug).Warn("Lap time query failed, estimation degrades to insufficient data")
		return nil
	}

	if len(records) == 0 {
		// A curated reference time keeps the reference-scaled tier reachable
		// with zero raw samples.
		if track.ProReferenceTime != nil {
			return &models.TrackStatsSummary{
				TrackID:                   track.ID,
				TrackSlug:                 track.Slug,
				ProReferenceTime:          track.ProReferenceTime,
				ProReferenceAuthoritative: true,
			}
		}
		return nil
	}

	metrics.RecordTrackStatsBuild()
	return b.build(track, records)
}

// build assembles the summary from records pre-sorted ascending by time.
func (b *Builder) build(track *models.Track, records []*models.LapTimeRecord) *models.TrackStatsSummary {
	allTimes := make([]float64, 0, len(records))
	proTimes := make([]float64, 0)
	stockTimes := make([]float64, 0)
	pairs := make([]stats.HPTimePair, 0)

	proCount := 0
	for _, rec := range records {
		secs := rec.Seconds()
		allTimes = append(allTimes, secs)

		if b.classifier.IsProfessional(rec) {
			proCount++
			proTimes = append(proTimes, secs)
		}
		if rec.IsStock {
			stockTimes = append(stockTimes, secs)
		}
		if rec.CarHP != nil && *rec.CarHP > 0 {
			pairs = append(pairs, stats.HPTimePair{HP: float64(*rec.CarHP), Time: secs})
		}
	}

	filteredAll := stats.FilterOutliers(allTimes, stats.DefaultIQRMultiplier)
	filteredPro := stats.FilterOutliers(proTimes, stats.DefaultIQRMultiplier)

	// The ladder needs a minimally sized filtered sample; otherwise fall
	// back to the unfiltered array.
	ladder := filteredAll
	if len(ladder) < minFilteredForLadder {
		ladder = allTimes
	}

	summary := &models.TrackStatsSummary{
		TrackID:   track.ID,
		TrackSlug: track.Slug,

		Total:        len(allTimes),
		Professional: proCount,
		Amateur:      len(allTimes) - proCount,
		Filtered:     len(filteredAll),
		Stock:        len(stockTimes),

		Fastest: allTimes[0],
		Slowest: allTimes[len(allTimes)-1],
		Median:  stats.Percentile(allTimes, 0.50),
		Mean:    stats.Mean(allTimes),
		StdDev:  stats.StdDev(allTimes),

		P5:  stats.Percentile(ladder, 0.05),
		P25: stats.Percentile(ladder, 0.25),
		P50: stats.Percentile(ladder, 0.50),
		P65: stats.Percentile(ladder, 0.65),
		P90: stats.Percentile(ladder, 0.90),

		StockP25: stats.Percentile(stockTimes, 0.25),
		StockP50: stats.Percentile(stockTimes, 0.50),
		StockP65: stats.Percentile(stockTimes, 0.65),
		StockP90: stats.Percentile(stockTimes, 0.90),

		HPCorrelation: stats.HPCorrelation(pairs),
	}

	if track.ProReferenceTime != nil {
		summary.ProReferenceTime = track.ProReferenceTime
		summary.ProReferenceAuthoritative = true
	} else if len(filteredPro) > 0 {
		fastest := filteredPro[0]
		summary.ProReferenceTime = &fastest
	}

	return summary
}

// TrackBySlug resolves a track record, logging failures. Exposed for
// callers that need the track entity alongside its stats.
func (b *Builder) TrackBySlug(ctx context.Context, slug string) (*models.Track, error) {
	return b.tracks.GetBySlug(ctx, slug)
}

// TrackFor resolves a track by ID.
func (b *Builder) TrackFor(ctx context.Context, id uuid.UUID) (*models.Track, error) {
	return b.tracks.GetByID(ctx, id)
}
