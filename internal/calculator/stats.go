package calculator

import (
	"fmt"
	"math"
)

// CalculateStdDev returns the sample standard deviation (n-1 denominator)
// of the last period prices around mean.
func CalculateStdDev(prices []float64, period int, mean float64) (float64, error) {
	if period <= 1 {
		return 0, fmt.Errorf("sample standard deviation needs period > 1: %w", ErrInvalidPeriod)
	}
	if len(prices) < period {
		return 0, insufficient(fmt.Sprintf("stddev(%d)", period), period, len(prices))
	}
	sq := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		d := prices[i] - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(period-1)), nil
}
