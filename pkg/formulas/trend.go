package formulas

import (
	"github.com/markcheno/go-talib"
)

// TrendSlope calculates the least-squares trend slope over the full window
// using the TA-Lib linear regression slope.
//
// Returns nil when there are fewer than 3 observations - a two-point "trend"
// is noise for per-gameweek scoring data.
func TrendSlope(values []float64) *float64 {
	if len(values) < 3 {
		return nil
	}

	slopes := talib.LinearRegSlope(values, len(values))

	if len(slopes) > 0 && !isNaN(slopes[len(slopes)-1]) {
		result := slopes[len(slopes)-1]
		return &result
	}

	return nil
}

// isNaN checks if a float64 is NaN
func isNaN(f float64) bool {
	return f != f
}
