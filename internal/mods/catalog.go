// Package mods models the lap time impact of car modifications as
// percentage improvements of a base lap time.
//
// Category improvements are combined additively as time savings, never
// compounded: summing fractions of the same base avoids over-crediting cars
// carrying many simultaneous upgrades.
package mods

import "github.com/autorev/laptime-engine/internal/models"

// Parametric categories: power scales with horsepower gained, weight with
// pounds saved, each with a hard cap.
const (
	powerPctPer50HP = 0.015
	powerCapPct     = 0.08

	weightPctPer100Lb = 0.01
	weightCapPct      = 0.05
)

// Discrete lookup tables. Unknown keys yield no improvement.
var tireImprovement = map[string]float64{
	"all-season":      0.0,
	"summer":          0.02,
	"max-performance": 0.04,
	"r-comp":          0.07,
	"slick":           0.10,
}

var suspensionImprovement = map[string]float64{
	"stock":            0.0,
	"lowering-springs": 0.01,
	"coilovers":        0.025,
	"coilovers-race":   0.04,
}

// Brake component fractions, additive with no cap. Track and race pads are
// alternatives selected by the caller, not stacked.
const (
	brakeBBKFrontPct  = 0.005
	brakePadsTrackPct = 0.01
	brakePadsRacePct  = 0.015
	brakeFluidPct     = 0.003
	brakeLinesPct     = 0.002
)

// Aero component fractions, additive with no cap. The rear wing selector is
// mutually exclusive between the low and high downforce variants.
const (
	aeroLipSpoilerPct = 0.005
	aeroWingLowPct    = 0.015
	aeroWingHighPct   = 0.025
	aeroSplitterPct   = 0.01
	aeroDiffuserPct   = 0.01
)

// PowerFraction returns the fractional improvement for horsepower gained
// over stock, capped at 8%.
func PowerFraction(hpGain float64) float64 {
	if hpGain <= 0 {
		return 0
	}
	pct := hpGain / 50.0 * powerPctPer50HP
	if pct > powerCapPct {
		pct = powerCapPct
	}
	return pct
}

// WeightFraction returns the fractional improvement for weight saved,
// capped at 5%.
func WeightFraction(lbsSaved float64) float64 {
	if lbsSaved <= 0 {
		return 0
	}
	pct := lbsSaved / 100.0 * weightPctPer100Lb
	if pct > weightCapPct {
		pct = weightCapPct
	}
	return pct
}

// TireFraction returns the fractional improvement for a tire compound.
func TireFraction(compound string) float64 {
	return tireImprovement[compound]
}

// SuspensionFraction returns the fractional improvement for a suspension type.
func SuspensionFraction(suspensionType string) float64 {
	return suspensionImprovement[suspensionType]
}

// BrakeFraction sums the brake component fractions.
func BrakeFraction(m models.ModsDescriptor) float64 {
	pct := 0.0
	if m.BigBrakeKitFront {
		pct += brakeBBKFrontPct
	}
	switch m.BrakePads {
	case "track":
		pct += brakePadsTrackPct
	case "race":
		pct += brakePadsRacePct
	}
	if m.RacingBrakeFluid {
		pct += brakeFluidPct
	}
	if m.StainlessBrakeLines {
		pct += brakeLinesPct
	}
	return pct
}

// AeroFraction sums the aero component fractions.
func AeroFraction(m models.ModsDescriptor) float64 {
	pct := 0.0
	if m.LipSpoiler {
		pct += aeroLipSpoilerPct
	}
	switch m.RearWing {
	case "gt-wing-low":
		pct += aeroWingLowPct
	case "gt-wing-high":
		pct += aeroWingHighPct
	}
	if m.FrontSplitter {
		pct += aeroSplitterPct
	}
	if m.RearDiffuser {
		pct += aeroDiffuserPct
	}
	return pct
}

// Improvement computes the per-category theoretical improvement in seconds
// against a base lap time. The total is the plain sum of the six categories.
func Improvement(baseTimeSeconds, hpGain float64, m models.ModsDescriptor) models.ImprovementBreakdown {
	bd := models.ImprovementBreakdown{
		Power:      baseTimeSeconds * PowerFraction(hpGain),
		Tires:      baseTimeSeconds * TireFraction(m.TireCompound),
		Suspension: baseTimeSeconds * SuspensionFraction(m.SuspensionType),
		Brakes:     baseTimeSeconds * BrakeFraction(m),
		Aero:       baseTimeSeconds * AeroFraction(m),
		Weight:     baseTimeSeconds * WeightFraction(m.WeightReduction),
	}
	bd.Total = bd.Power + bd.Tires + bd.Suspension + bd.Brakes + bd.Aero + bd.Weight
	return bd
}
