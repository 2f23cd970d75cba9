package models

// ModsDescriptor describes the modifications installed on a car. Zero values
// mean "not installed" throughout, so an empty descriptor is a stock car.
type ModsDescriptor struct {
	TireCompound   string `json:"tire_compound"`
	SuspensionType string `json:"suspension_type"`

	BigBrakeKitFront    bool   `json:"big_brake_kit_front"`
	BrakePads           string `json:"brake_pads"` // "", "track" or "race"
	RacingBrakeFluid    bool   `json:"racing_brake_fluid"`
	StainlessBrakeLines bool   `json:"stainless_brake_lines"`

	LipSpoiler    bool   `json:"lip_spoiler"`
	RearWing      string `json:"rear_wing"` // "", "gt-wing-low" or "gt-wing-high"
	FrontSplitter bool   `json:"front_splitter"`
	RearDiffuser  bool   `json:"rear_diffuser"`

	WeightReduction float64 `json:"weight_reduction"` // lbs saved
}

// EstimationRequest is the input to the lap time estimator.
type EstimationRequest struct {
	TrackSlug   string         `json:"track_slug" validate:"required"`
	StockHP     int            `json:"stock_hp" validate:"required,gt=0"`
	CurrentHP   int            `json:"current_hp"` // 0 defaults to StockHP
	Weight      int            `json:"weight"`     // curb weight in lbs, 0 when unknown
	DriverSkill string         `json:"driver_skill"`
	Mods        ModsDescriptor `json:"mods"`
}

// ImprovementBreakdown carries the per-category theoretical lap time
// improvement in seconds. Categories are combined additively, never
// compounded.
type ImprovementBreakdown struct {
	Power      float64 `json:"power"`
	Tires      float64 `json:"tires"`
	Suspension float64 `json:"suspension"`
	Brakes     float64 `json:"brakes"`
	Aero       float64 `json:"aero"`
	Weight     float64 `json:"weight"`
	Total      float64 `json:"total"`
}

// DataQuality summarizes how much raw data backed an estimate.
type DataQuality struct {
	TotalLaps        int `json:"total_laps"`
	ProfessionalLaps int `json:"professional_laps"`
	AmateurLaps      int `json:"amateur_laps"`
	FilteredLaps     int `json:"filtered_laps"`
	StockLaps        int `json:"stock_laps"`
}

// EstimationResult is the fully annotated output of one estimation call.
// It is a value object: constructed once, never mutated.
type EstimationResult struct {
	Tier       int     `json:"tier"`
	TierLabel  string  `json:"tier_label"`
	TierReason string  `json:"tier_reason"`
	Confidence float64 `json:"confidence"`
	SampleSize int     `json:"sample_size"`

	StockLapTime  *float64 `json:"stock_lap_time"`  // seconds, nil in tier 4
	ModdedLapTime *float64 `json:"modded_lap_time"` // seconds, nil in tier 4

	ImprovementSec            float64              `json:"improvement_sec"`
	TheoreticalImprovementSec float64              `json:"theoretical_improvement_sec"`
	ModUtilization            float64              `json:"mod_utilization"`
	Breakdown                 ImprovementBreakdown `json:"breakdown"`

	TrackFastest     *float64 `json:"track_fastest"`
	TrackMedian      *float64 `json:"track_median"`
	ProReferenceTime *float64 `json:"pro_reference_time"`

	DataQuality DataQuality `json:"data_quality"`

	StockLapTimeFormatted  string `json:"stock_lap_time_formatted"`
	ModdedLapTimeFormatted string `json:"modded_lap_time_formatted"`

	Note string `json:"note,omitempty"`
}
