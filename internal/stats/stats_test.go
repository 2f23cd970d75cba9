package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPercentileEmpty tests percentile of an empty slice
func TestPercentileEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Percentile(nil, 0.5))
	assert.Equal(t, 0.0, Percentile([]float64{}, 0.9))
}

// TestPercentileSingle tests percentile of a single element
func TestPercentileSingle(t *testing.T) {
	assert.Equal(t, 42.0, Percentile([]float64{42.0}, 0.05))
	assert.Equal(t, 42.0, Percentile([]float64{42.0}, 0.95))
}

// TestPercentileBounds tests that p=0 and p=1 hit the slice endpoints
func TestPercentileBounds(t *testing.T) {
	sorted := []float64{90.0, 92.5, 95.0, 100.0}

	assert.Equal(t, 90.0, Percentile(sorted, 0.0))
	assert.Equal(t, 100.0, Percentile(sorted, 1.0))
}

// TestPercentileInterpolation tests linear interpolation between ranks
func TestPercentileInterpolation(t *testing.T) {
	sorted := []float64{10.0, 20.0, 30.0, 40.0, 50.0}

	// index = 0.5 * 4 = 2.0, exact element
	assert.Equal(t, 30.0, Percentile(sorted, 0.5))
	// index = 0.25 * 4 = 1.0, exact element
	assert.Equal(t, 20.0, Percentile(sorted, 0.25))
	// index = 0.1 * 4 = 0.4, interpolated between 10 and 20
	assert.InDelta(t, 14.0, Percentile(sorted, 0.1), 1e-9)
}

// TestPercentileMonotonic tests that higher percentiles never decrease
func TestPercentileMonotonic(t *testing.T) {
	sorted := []float64{88.1, 89.4, 90.0, 91.2, 93.7, 95.5, 99.9, 104.2}

	prev := Percentile(sorted, 0.0)
	for p := 0.05; p <= 1.0; p += 0.05 {
		cur := Percentile(sorted, p)
		assert.GreaterOrEqual(t, cur, prev, "percentile %f", p)
		prev = cur
	}
}

// TestMean tests the arithmetic mean
func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 20.0, Mean([]float64{10, 20, 30}), 1e-9)
}

// TestStdDev tests the population standard deviation
func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{5.0}))
	// Population standard deviation of {2,4,4,4,5,5,7,9} is exactly 2.
	assert.InDelta(t, 2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
}

// TestFilterOutliersSmallSample tests that tiny samples pass through unchanged
func TestFilterOutliersSmallSample(t *testing.T) {
	in := []float64{90.0, 95.0, 500.0}
	assert.Equal(t, in, FilterOutliers(in, DefaultIQRMultiplier))
}

// TestFilterOutliersTightIQR tests that a sub-second IQR disables filtering
func TestFilterOutliersTightIQR(t *testing.T) {
	in := []float64{90.0, 90.1, 90.2, 90.3, 90.4, 120.0}
	// Q3-Q1 is well under one second, so even the 120 stays.
	assert.Equal(t, in, FilterOutliers(in, DefaultIQRMultiplier))
}

// TestFilterOutliersRemoves tests removal of values beyond the fences
func TestFilterOutliersRemoves(t *testing.T) {
	in := []float64{90, 91, 92, 93, 94, 95, 96, 97, 98, 200}
	out := FilterOutliers(in, DefaultIQRMultiplier)

	require.NotEmpty(t, out)
	assert.NotContains(t, out, 200.0)
	assert.Contains(t, out, 90.0)
	assert.Contains(t, out, 98.0)
}

// TestFilterOutliersClean tests that a clean distribution is untouched
func TestFilterOutliersClean(t *testing.T) {
	in := []float64{90, 92, 94, 96, 98, 100}
	assert.Equal(t, in, FilterOutliers(in, DefaultIQRMultiplier))
}

// TestHPCorrelationTooFewSamples tests the minimum sample gate
func TestHPCorrelationTooFewSamples(t *testing.T) {
	pairs := []HPTimePair{
		{HP: 200, Time: 100},
		{HP: 300, Time: 95},
		{HP: 400, Time: 90},
		{HP: 500, Time: 85},
	}
	assert.Nil(t, HPCorrelation(pairs))
}

// TestHPCorrelationZeroVariance tests that constant horsepower yields no fit
func TestHPCorrelationZeroVariance(t *testing.T) {
	pairs := make([]HPTimePair, 6)
	for i := range pairs {
		pairs[i] = HPTimePair{HP: 300, Time: 90 + float64(i)}
	}
	assert.Nil(t, HPCorrelation(pairs))
}

// TestHPCorrelationPerfectFit tests slope and r on a perfect line
func TestHPCorrelationPerfectFit(t *testing.T) {
	// time = 120 - 0.05 * hp
	pairs := []HPTimePair{
		{HP: 200, Time: 110},
		{HP: 300, Time: 105},
		{HP: 400, Time: 100},
		{HP: 500, Time: 95},
		{HP: 600, Time: 90},
	}

	corr := HPCorrelation(pairs)
	require.NotNil(t, corr)
	assert.Equal(t, 5, corr.N)
	assert.InDelta(t, -0.05, corr.Slope, 1e-9)
	assert.InDelta(t, 120.0, corr.Intercept, 1e-9)
	assert.InDelta(t, -1.0, corr.R, 1e-9)
}
