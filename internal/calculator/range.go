package calculator

import (
	"errors"
	"fmt"
	"math"
)

// CalculateRange scans the most recent lookback bars and returns the highest high and lowest low.
func CalculateRange(highs, lows []float64, lookback int) (high, low float64, err error) {
	if lookback <= 0 {
		return 0, 0, ErrInvalidPeriod
	}
	if len(highs) != len(lows) {
		return 0, 0, errors.New("highs and lows must have equal length")
	}
	n := len(highs)
	if n < lookback {
		return 0, 0, insufficient(fmt.Sprintf("range(%d)", lookback), lookback, n)
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := n - lookback; i < n; i++ {
		if highs[i] > high {
			high = highs[i]
		}
		if lows[i] < low {
			low = lows[i]
		}
	}
	return high, low, nil
}

// CalculateRangePosition returns where the current price sits within [low, high] (0.0~1.0).
// A flat range reports the midpoint.
func CalculateRangePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
