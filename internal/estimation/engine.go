// Package estimation composes track statistics, similar-car interpolation,
// the modification impact model and the driver skill model into tiered lap
// time estimates.
package estimation

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/autorev/laptime-engine/internal/metrics"
	"github.com/autorev/laptime-engine/internal/models"
	"github.com/autorev/laptime-engine/internal/mods"
	"github.com/autorev/laptime-engine/internal/similar"
	"github.com/autorev/laptime-engine/internal/skill"
	"github.com/autorev/laptime-engine/internal/stats"
	"github.com/autorev/laptime-engine/internal/trackstats"
)

// insufficientDataNote is surfaced to the caller in the terminal tier.
const insufficientDataNote = "Not enough data for a reliable estimate at this track yet. Estimates unlock as lap times are recorded."

// similarCarDisplayLimit caps the UI-facing similar car list.
const similarCarDisplayLimit = 10

// Engine is the estimation orchestrator. All exported methods are read-only
// and fail soft: they produce well-formed results with explicit no-data
// markers instead of surfacing errors to the UI path.
type Engine struct {
	stats   *trackstats.Builder
	similar *similar.Finder
	logger  *logrus.Logger
}

// NewEngine creates an estimation engine.
func NewEngine(statsBuilder *trackstats.Builder, finder *similar.Finder, logger *logrus.Logger) *Engine {
	return &Engine{
		stats:   statsBuilder,
		similar: finder,
		logger:  logger,
	}
}

// EstimateLapTime produces a provenance-tagged stock and modified lap time
// estimate for a car, mod set, driver skill and track.
func (e *Engine) EstimateLapTime(ctx context.Context, req models.EstimationRequest) *models.EstimationResult {
	start := time.Now()

	hp := req.CurrentHP
	if hp == 0 {
		hp = req.StockHP
	}
	hpGain := hp - req.StockHP
	if hpGain < 0 {
		hpGain = 0
	}

	profile := skill.Resolve(req.DriverSkill)

	summary := e.stats.TrackStats(ctx, req.TrackSlug)

	// Tier 3 prep happens whenever stats exist, even if tier 1 or 2 ends up
	// selected. Wasted work in the common case, but it keeps the control
	// flow simple and guarantees the fallback data is ready.
	var similarTimes []similar.CarTime
	if summary != nil {
		similarTimes = e.similar.FindSimilarTimes(ctx, summary.TrackID, req.StockHP, req.Weight)
	}

	decision := DetermineTier(summary, similarTimes)
	defer func() {
		metrics.RecordEstimation(decision.Label, time.Since(start).Seconds())
	}()

	if decision.Tier == TierInsufficientData {
		return e.insufficientDataResult(decision, summary)
	}

	var baseTime float64
	switch decision.Tier {
	case TierStatistical:
		baseTime = skillPercentileTime(summary, profile)
	case TierReferenceScaled:
		baseTime = *summary.ProReferenceTime * (1 + profile.PenaltyFromPro)
	case TierSimilarCar:
		baseTime = similarBaseTime(similarTimes) * (1 + profile.PenaltyFromPro)
	}

	breakdown := mods.Improvement(baseTime, float64(hpGain), req.Mods)
	realized := breakdown.Total * profile.ModUtilization
	moddedTime := baseTime - realized

	result := &models.EstimationResult{
		Tier:       int(decision.Tier),
		TierLabel:  decision.Label,
		TierReason: decision.Reason,
		Confidence: decision.Confidence,
		SampleSize: sampleSize(decision.Tier, summary, similarTimes),

		StockLapTime:  &baseTime,
		ModdedLapTime: &moddedTime,

		ImprovementSec:            realized,
		TheoreticalImprovementSec: breakdown.Total,
		ModUtilization:            profile.ModUtilization,
		Breakdown:                 breakdown,

		StockLapTimeFormatted:  FormatLapTime(&baseTime),
		ModdedLapTimeFormatted: FormatLapTime(&moddedTime),
	}
	fillReferenceStats(result, summary)

	e.logger.WithFields(logrus.Fields{
		"track":       req.TrackSlug,
		"tier":        decision.Tier,
		"skill":       profile.Key,
		"stock_time":  result.StockLapTimeFormatted,
		"modded_time": result.ModdedLapTimeFormatted,
	}).Debug("Lap time estimated")

	return result
}

// insufficientDataResult is the terminal tier 4 branch: all lap time fields
// nil, confidence zero, formatted placeholders. Mod impact math is never
// attempted against a missing base time.
func (e *Engine) insufficientDataResult(decision TierDecision, summary *models.TrackStatsSummary) *models.EstimationResult {
	result := &models.EstimationResult{
		Tier:       int(decision.Tier),
		TierLabel:  decision.Label,
		TierReason: decision.Reason,
		Confidence: 0,

		StockLapTimeFormatted:  NoTimePlaceholder,
		ModdedLapTimeFormatted: NoTimePlaceholder,

		Note: insufficientDataNote,
	}
	if summary != nil {
		result.SampleSize = summary.Total
	}
	fillReferenceStats(result, summary)
	return result
}

// skillPercentileTime maps a skill bucket onto the percentile ladder:
// professional p5, advanced p25, intermediate p65, beginner p90.
func skillPercentileTime(summary *models.TrackStatsSummary, profile skill.Profile) float64 {
	switch profile.Key {
	case skill.Professional:
		return summary.P5
	case skill.Advanced:
		return summary.P25
	case skill.Beginner:
		return summary.P90
	default:
		return summary.P65
	}
}

// similarBaseTime takes the median of professional stock times from the
// comparable cars, widening to all professional times when no stock ones
// exist, or the single available time when a median is not meaningful.
func similarBaseTime(times []similar.CarTime) float64 {
	candidates := make([]float64, 0, len(times))
	for _, t := range times {
		if t.IsProfessional && t.IsStock {
			candidates = append(candidates, t.Seconds)
		}
	}
	if len(candidates) == 0 {
		for _, t := range times {
			if t.IsProfessional {
				candidates = append(candidates, t.Seconds)
			}
		}
	}
	if len(candidates) == 0 {
		return 0
	}
	if len(candidates) == 1 {
		return candidates[0]
	}
	// Input arrives sorted ascending from the repository, and filtering
	// preserves order.
	return stats.Percentile(candidates, 0.50)
}

func sampleSize(tier Tier, summary *models.TrackStatsSummary, similarTimes []similar.CarTime) int {
	if tier == TierSimilarCar {
		return similar.CountProfessional(similarTimes)
	}
	if summary != nil {
		return summary.Total
	}
	return 0
}

func fillReferenceStats(result *models.EstimationResult, summary *models.TrackStatsSummary) {
	if summary == nil {
		return
	}
	if summary.Total > 0 {
		fastest := summary.Fastest
		median := summary.Median
		result.TrackFastest = &fastest
		result.TrackMedian = &median
	}
	result.ProReferenceTime = summary.ProReferenceTime
	result.DataQuality = models.DataQuality{
		TotalLaps:        summary.Total,
		ProfessionalLaps: summary.Professional,
		AmateurLaps:      summary.Amateur,
		FilteredLaps:     summary.Filtered,
		StockLaps:        summary.Stock,
	}
}

// Baseline holds skill-bucketed absolute lap times for a track without any
// modification overlay.
type Baseline struct {
	HasData    bool        `json:"has_data"`
	TrackSlug  string      `json:"track_slug"`
	Tier       int         `json:"tier"`
	Confidence float64     `json:"confidence"`
	SampleSize int         `json:"sample_size"`
	Times      []SkillTime `json:"times,omitempty"`
}

// SkillTime is one skill bucket's baseline time.
type SkillTime struct {
	Skill     string  `json:"skill"`
	Seconds   float64 `json:"seconds"`
	Formatted string  `json:"formatted"`
}

// TrackBaseline returns the raw track difficulty curve: one absolute time
// per skill bucket, no modification overlay. Legacy-compatible variant of
// EstimateLapTime for callers that only need the curve.
func (e *Engine) TrackBaseline(ctx context.Context, slug string) *Baseline {
	summary := e.stats.TrackStats(ctx, slug)
	decision := DetermineTier(summary, nil)

	baseline := &Baseline{
		TrackSlug:  slug,
		Tier:       int(decision.Tier),
		Confidence: decision.Confidence,
	}
	if summary != nil {
		baseline.SampleSize = summary.Total
	}

	if decision.Tier != TierStatistical && decision.Tier != TierReferenceScaled {
		return baseline
	}

	baseline.HasData = true
	for _, profile := range skill.All() {
		var secs float64
		if decision.Tier == TierStatistical {
			secs = skillPercentileTime(summary, profile)
		} else {
			secs = *summary.ProReferenceTime * (1 + profile.PenaltyFromPro)
		}
		baseline.Times = append(baseline.Times, SkillTime{
			Skill:     string(profile.Key),
			Seconds:   secs,
			Formatted: FormatLapTime(&secs),
		})
	}
	return baseline
}

// UISummary is the display-ready statistical summary for a track page.
type UISummary struct {
	HasData   bool   `json:"has_data"`
	TrackSlug string `json:"track_slug"`

	TotalLaps        int `json:"total_laps"`
	ProfessionalLaps int `json:"professional_laps"`
	AmateurLaps      int `json:"amateur_laps"`
	StockLaps        int `json:"stock_laps"`
	FilteredLaps     int `json:"filtered_laps"`

	Fastest string `json:"fastest"`
	Median  string `json:"median"`
	Slowest string `json:"slowest"`
	Mean    string `json:"mean"`

	Spread   string `json:"spread"`
	StdDev   string `json:"std_dev"`
	Variance string `json:"variance"`

	Distribution map[string]string `json:"distribution"`

	ProReferenceTime string `json:"pro_reference_time,omitempty"`
}

// TrackStatsSummary returns human-formatted statistics for display. Returns
// HasData false when no records exist for the track.
func (e *Engine) TrackStatsSummary(ctx context.Context, slug string) *UISummary {
	summary := e.stats.TrackStats(ctx, slug)
	if summary == nil || summary.Total == 0 {
		out := &UISummary{HasData: false, TrackSlug: slug}
		if summary.HasProReference() {
			out.ProReferenceTime = FormatLapTime(summary.ProReferenceTime)
		}
		return out
	}

	return &UISummary{
		HasData:   true,
		TrackSlug: slug,

		TotalLaps:        summary.Total,
		ProfessionalLaps: summary.Professional,
		AmateurLaps:      summary.Amateur,
		StockLaps:        summary.Stock,
		FilteredLaps:     summary.Filtered,

		Fastest: FormatLapTime(&summary.Fastest),
		Median:  FormatLapTime(&summary.Median),
		Slowest: FormatLapTime(&summary.Slowest),
		Mean:    FormatLapTime(&summary.Mean),

		Spread:   FormatSeconds(summary.Slowest - summary.Fastest),
		StdDev:   FormatSeconds(summary.StdDev),
		Variance: fmt.Sprintf("%.3f", summary.StdDev*summary.StdDev),

		Distribution: map[string]string{
			"p5":  FormatLapTime(&summary.P5),
			"p25": FormatLapTime(&summary.P25),
			"p50": FormatLapTime(&summary.P50),
			"p65": FormatLapTime(&summary.P65),
			"p90": FormatLapTime(&summary.P90),
		},

		ProReferenceTime: formatOptional(summary.ProReferenceTime),
	}
}

// SimilarCar is one display-ready comparable car entry.
type SimilarCar struct {
	CarName        string  `json:"car_name"`
	LapTime        string  `json:"lap_time"`
	Seconds        float64 `json:"seconds"`
	IsStock        bool    `json:"is_stock"`
	IsProfessional bool    `json:"is_professional"`
	HP             *int    `json:"hp,omitempty"`
	Weight         *int    `json:"weight,omitempty"`
}

// FindSimilarCars returns up to 10 comparable cars with formatted lap
// times, one entry per car keeping its fastest recorded time.
func (e *Engine) FindSimilarCars(ctx context.Context, slug string, hp, weight int) []SimilarCar {
	track, err := e.stats.TrackBySlug(ctx, slug)
	if err != nil {
		e.logger.WithError(err).WithField("track", slug).Warn("Track lookup failed for similar car search")
		return nil
	}

	times := e.similar.FindSimilarTimes(ctx, track.ID, hp, weight)

	seen := make(map[string]bool)
	cars := make([]SimilarCar, 0, similarCarDisplayLimit)
	for _, t := range times {
		key := t.CarName
		if t.CarID != nil {
			key = t.CarID.String()
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		secs := t.Seconds
		cars = append(cars, SimilarCar{
			CarName:        t.CarName,
			LapTime:        FormatLapTime(&secs),
			Seconds:        secs,
			IsStock:        t.IsStock,
			IsProfessional: t.IsProfessional,
			HP:             t.HP,
			Weight:         t.Weight,
		})
		if len(cars) >= similarCarDisplayLimit {
			break
		}
	}
	return cars
}

func formatOptional(seconds *float64) string {
	if seconds == nil {
		return ""
	}
	return FormatLapTime(seconds)
}
