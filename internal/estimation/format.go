package estimation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// NoTimePlaceholder is rendered wherever a lap time could not be estimated.
const NoTimePlaceholder = "--:--.---"

// FormatLapTime renders seconds as M:SS.mmm, e.g. 95.432 -> "1:35.432".
// Nil, NaN, infinite and non-positive values render as the placeholder so a
// missing estimate never leaks a NaN into the UI.
func FormatLapTime(seconds *float64) string {
	if seconds == nil || math.IsNaN(*seconds) || math.IsInf(*seconds, 0) || *seconds <= 0 {
		return NoTimePlaceholder
	}

	// Round to whole milliseconds via decimal to dodge float artifacts like
	// 95.4319999 formatting as 1:35.431.
	totalMs := decimal.NewFromFloat(*seconds).Mul(decimal.NewFromInt(1000)).Round(0).IntPart()

	minutes := totalMs / 60000
	secs := (totalMs % 60000) / 1000
	millis := totalMs % 1000

	return fmt.Sprintf("%d:%02d.%03d", minutes, secs, millis)
}

// FormatSeconds renders a float seconds value, used for spreads and
// standard deviations where the M:SS form would be noise.
func FormatSeconds(seconds float64) string {
	return fmt.Sprintf("%.3fs", seconds)
}
