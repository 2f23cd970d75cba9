// Package stats provides the numeric kernels used to summarise lap time
// distributions: percentiles, dispersion, outlier filtering and the
// horsepower correlation fit.
package stats

import "math"

// DefaultIQRMultiplier is the Tukey fence multiplier used when filtering
// outliers from a lap time distribution.
const DefaultIQRMultiplier = 1.5

// minCorrelationSamples is the smallest sample size for which a
// horsepower-to-time regression is considered meaningful.
const minCorrelationSamples = 5

// Percentile returns the value at percentile p (0..1) of a sorted slice
// using linear interpolation between closest ranks. Returns 0 for an
// empty slice.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	idx := p * float64(n-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo < 0 {
		lo = 0
	}
	if hi >= n {
		hi = n - 1
	}
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation, or 0 for an empty
// slice.
func StdDev(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n))
}

// FilterOutliers removes values outside the Tukey fences
// [Q1 - multiplier*IQR, Q3 + multiplier*IQR] from a sorted slice.
// The input is returned unchanged when it has fewer than 4 elements or
// when the IQR is under one second, where the fences would be
// meaninglessly tight.
func FilterOutliers(sorted []float64, multiplier float64) []float64 {
	if len(sorted) < 4 {
		return sorted
	}
	q1 := Percentile(sorted, 0.25)
	q3 := Percentile(sorted, 0.75)
	iqr := q3 - q1
	if iqr < 1 {
		return sorted
	}
	lower := q1 - multiplier*iqr
	upper := q3 + multiplier*iqr

	filtered := make([]float64, 0, len(sorted))
	for _, v := range sorted {
		if v >= lower && v <= upper {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// HPTimePair is one (horsepower, lap time seconds) observation.
type HPTimePair struct {
	HP   float64
	Time float64
}

// Correlation holds an ordinary least squares fit of lap time against
// horsepower together with the Pearson correlation coefficient.
type Correlation struct {
	R         float64 `json:"r"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	N         int     `json:"n"`
}

// HPCorrelation fits lap time as a linear function of horsepower.
// Returns nil when there are fewer than 5 pairs or the horsepower values
// have no variance, as a fit would be degenerate.
func HPCorrelation(pairs []HPTimePair) *Correlation {
	n := len(pairs)
	if n < minCorrelationSamples {
		return nil
	}

	var sumX, sumY float64
	for _, p := range pairs {
		sumX += p.HP
		sumY += p.Time
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var ssXX, ssYY, ssXY float64
	for _, p := range pairs {
		dx := p.HP - meanX
		dy := p.Time - meanY
		ssXX += dx * dx
		ssYY += dy * dy
		ssXY += dx * dy
	}
	if ssXX == 0 {
		return nil
	}

	slope := ssXY / ssXX
	r := 0.0
	if ssYY > 0 {
		r = ssXY / math.Sqrt(ssXX*ssYY)
	}
	return &Correlation{
		R:         r,
		Slope:     slope,
		Intercept: meanY - slope*meanX,
		N:         n,
	}
}
