package estimation

import (
	"fmt"

	"github.com/autorev/laptime-engine/internal/models"
	"github.com/autorev/laptime-engine/internal/similar"
)

// Tier identifies one of the four mutually exclusive estimation strategies,
// ordered by trustworthiness.
type Tier int

const (
	TierStatistical      Tier = 1
	TierReferenceScaled  Tier = 2
	TierSimilarCar       Tier = 3
	TierInsufficientData Tier = 4
)

// Gate thresholds for the statistical tier and the similar-car fallback.
const (
	minRawSamplesTier1      = 10
	minFilteredSamplesTier1 = 5
	minProSimilarTier3      = 5
)

// Tier confidences are fixed per strategy, not derived from the data.
const (
	confidenceTier1 = 0.9
	confidenceTier2 = 0.8
	confidenceTier3 = 0.65
)

// Label returns the short machine label for the tier.
func (t Tier) Label() string {
	switch t {
	case TierStatistical:
		return "statistical"
	case TierReferenceScaled:
		return "reference-scaled"
	case TierSimilarCar:
		return "similar-car"
	default:
		return "insufficient-data"
	}
}

// TierDecision is the result of the tier selection procedure.
type TierDecision struct {
	Tier       Tier
	Label      string
	Reason     string
	Confidence float64
}

// DetermineTier selects the estimation tier from the available data.
//
// The checks run in strict priority order with first match winning; tiers
// are gates, not scores. In particular a track with 8 raw times and a
// strong professional reference lands in tier 2, because the tier 1 sample
// threshold is a hard gate rather than a soft preference.
func DetermineTier(stats *models.TrackStatsSummary, similarTimes []similar.CarTime) TierDecision {
	if stats != nil && stats.Total >= minRawSamplesTier1 && stats.Filtered >= minFilteredSamplesTier1 {
		return TierDecision{
			Tier:       TierStatistical,
			Label:      TierStatistical.Label(),
			Reason:     fmt.Sprintf("%d recorded laps (%d after outlier filtering)", stats.Total, stats.Filtered),
			Confidence: confidenceTier1,
		}
	}

	if stats.HasProReference() {
		return TierDecision{
			Tier:       TierReferenceScaled,
			Label:      TierReferenceScaled.Label(),
			Reason:     "professional reference time available",
			Confidence: confidenceTier2,
		}
	}

	if proCount := similar.CountProfessional(similarTimes); proCount >= minProSimilarTier3 {
		return TierDecision{
			Tier:       TierSimilarCar,
			Label:      TierSimilarCar.Label(),
			Reason:     fmt.Sprintf("%d professionally sourced times from comparable cars", proCount),
			Confidence: confidenceTier3,
		}
	}

	return TierDecision{
		Tier:       TierInsufficientData,
		Label:      TierInsufficientData.Label(),
		Reason:     "no track data, reference time or comparable cars",
		Confidence: 0,
	}
}
