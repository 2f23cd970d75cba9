// Package skill defines the static driver skill taxonomy used to place a
// driver within a track's lap time distribution.
package skill

// Level identifies one of the four driver skill buckets.
type Level string

const (
	Beginner     Level = "beginner"
	Intermediate Level = "intermediate"
	Advanced     Level = "advanced"
	Professional Level = "professional"
)

// Profile carries the estimation parameters for one skill bucket.
//
// Percentile is where in the lap time distribution a driver of this skill
// lands (0 = fastest). ModUtilization is the fraction of a modification's
// theoretical gain the driver actually extracts. PenaltyFromPro is how much
// slower than the professional baseline the driver is, used only in the
// reference-scaled tiers.
type Profile struct {
	Key            Level   `json:"key"`
	Label          string  `json:"label"`
	Description    string  `json:"description"`
	Percentile     float64 `json:"percentile"`
	ModUtilization float64 `json:"mod_utilization"`
	PenaltyFromPro float64 `json:"penalty_from_pro"`
}

// Percentile strictly increases and ModUtilization strictly decreases from
// professional to beginner.
var profiles = map[Level]Profile{
	Professional: {
		Key:            Professional,
		Label:          "Professional",
		Description:    "Licensed racing driver or professional test driver",
		Percentile:     0.05,
		ModUtilization: 0.95,
		PenaltyFromPro: 0.0,
	},
	Advanced: {
		Key:            Advanced,
		Label:          "Advanced",
		Description:    "Experienced track day driver, consistent within a second",
		Percentile:     0.25,
		ModUtilization: 0.75,
		PenaltyFromPro: 0.03,
	},
	Intermediate: {
		Key:            Intermediate,
		Label:          "Intermediate",
		Description:    "Regular track day driver, still finding time in corners",
		Percentile:     0.65,
		ModUtilization: 0.50,
		PenaltyFromPro: 0.08,
	},
	Beginner: {
		Key:            Beginner,
		Label:          "Beginner",
		Description:    "First few track days, learning the racing line",
		Percentile:     0.90,
		ModUtilization: 0.20,
		PenaltyFromPro: 0.15,
	},
}

// Resolve returns the profile for a skill key, defaulting to intermediate
// for unrecognized input. It never fails: bad input from the UI must not
// break an estimation.
func Resolve(key string) Profile {
	if p, ok := profiles[Level(key)]; ok {
		return p
	}
	return profiles[Intermediate]
}

// All returns the profiles ordered fastest to slowest.
func All() []Profile {
	return []Profile{
		profiles[Professional],
		profiles[Advanced],
		profiles[Intermediate],
		profiles[Beginner],
	}
}
