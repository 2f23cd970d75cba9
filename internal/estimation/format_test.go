package estimation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func seconds(v float64) *float64 { return &v }

// TestFormatLapTime tests the M:SS.mmm rendering
func TestFormatLapTime(t *testing.T) {
	assert.Equal(t, "1:35.432", FormatLapTime(seconds(95.432)))
	assert.Equal(t, "0:59.999", FormatLapTime(seconds(59.999)))
	assert.Equal(t, "1:00.000", FormatLapTime(seconds(60.0)))
	assert.Equal(t, "2:05.050", FormatLapTime(seconds(125.05)))
	assert.Equal(t, "10:00.001", FormatLapTime(seconds(600.001)))
}

// TestFormatLapTimeRounding tests millisecond rounding of float artifacts
func TestFormatLapTimeRounding(t *testing.T) {
	assert.Equal(t, "1:35.432", FormatLapTime(seconds(95.4319999)))
	assert.Equal(t, "1:30.000", FormatLapTime(seconds(89.9999)))
}

// TestFormatLapTimePlaceholder tests placeholder rendering for unusable values
func TestFormatLapTimePlaceholder(t *testing.T) {
	assert.Equal(t, NoTimePlaceholder, FormatLapTime(nil))
	assert.Equal(t, NoTimePlaceholder, FormatLapTime(seconds(0)))
	assert.Equal(t, NoTimePlaceholder, FormatLapTime(seconds(-12.5)))
	assert.Equal(t, NoTimePlaceholder, FormatLapTime(seconds(math.NaN())))
	assert.Equal(t, NoTimePlaceholder, FormatLapTime(seconds(math.Inf(1))))
}

// TestFormatSeconds tests the plain seconds rendering
func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "4.200s", FormatSeconds(4.2))
	assert.Equal(t, "0.000s", FormatSeconds(0))
}
