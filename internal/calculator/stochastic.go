package calculator

import (
	"errors"
	"fmt"
)

// CalculateStochastic returns the raw %K over kPeriod bars and %D, the SMA
// of the last dPeriod %K values. A flat high/low range yields %K = 50.
// Requires kPeriod+dPeriod-1 bars.
func CalculateStochastic(highs, lows, closes []float64, kPeriod, dPeriod int) (k, d float64, err error) {
	if kPeriod <= 0 || dPeriod <= 0 {
		return 0, 0, ErrInvalidPeriod
	}
	if len(highs) != len(closes) || len(lows) != len(closes) {
		return 0, 0, errors.New("highs, lows and closes must have equal length")
	}
	need := kPeriod + dPeriod - 1
	if len(closes) < need {
		return 0, 0, insufficient(fmt.Sprintf("stochastic(%d,%d)", kPeriod, dPeriod), need, len(closes))
	}

	ks := make([]float64, 0, dPeriod)
	n := len(closes)
	for end := n - dPeriod + 1; end <= n; end++ {
		hh, ll, err := CalculateRange(highs[:end], lows[:end], kPeriod)
		if err != nil {
			return 0, 0, err
		}
		pos, err := CalculateRangePosition(closes[end-1], hh, ll)
		if err != nil {
			return 0, 0, err
		}
		ks = append(ks, pos*100)
	}

	d, err = CalculateSMA(ks, dPeriod)
	if err != nil {
		return 0, 0, err
	}
	return ks[len(ks)-1], d, nil
}
