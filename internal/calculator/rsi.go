package calculator

import "fmt"

// CalculateRSI computes the Wilder-smoothed RSI over the given period.
// Requires at least period+1 closes. A series with gains and no losses
// yields 100; a series with no movement at all yields 50.
func CalculateRSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidPeriod
	}
	if len(closes) < period+1 {
		return 0, insufficient(fmt.Sprintf("RSI(%d)", period), period+1, len(closes))
	}

	p := float64(period)
	var sumGain, sumLoss float64
	for i := 1; i <= period; i++ {
		g, l := splitChange(closes[i] - closes[i-1])
		sumGain += g
		sumLoss += l
	}
	avgGain, avgLoss := sumGain/p, sumLoss/p

	for i := period + 1; i < len(closes); i++ {
		g, l := splitChange(closes[i] - closes[i-1])
		avgGain = (avgGain*(p-1) + g) / p
		avgLoss = (avgLoss*(p-1) + l) / p
	}
	return rsiFromAverages(avgGain, avgLoss), nil
}

// splitChange returns a close-to-close change as a (gain, loss) pair,
// both non-negative.
func splitChange(change float64) (gain, loss float64) {
	if change > 0 {
		return change, 0
	}
	return 0, -change
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	switch {
	case avgLoss == 0 && avgGain == 0:
		return 50
	case avgLoss == 0:
		return 100
	}
	return 100 - 100/(1+avgGain/avgLoss)
}
