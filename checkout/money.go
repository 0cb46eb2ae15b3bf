package checkout

import "math"

// round2 rounds to the currency's minor unit using round-half-up, the
// rounding used for all fee amounts (0.005 rounds to 0.01).
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
