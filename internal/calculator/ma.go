package calculator

import "fmt"

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidPeriod
	}
	if len(prices) < period {
		return 0, insufficient(fmt.Sprintf("SMA(%d)", period), period, len(prices))
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// EMASeries computes the exponential moving average for every bar from
// period-1 onward. The first value is the SMA of the first period prices,
// then EMA = price*k + prev*(1-k) with k = 2/(period+1).
// out[i] corresponds to prices[i+period-1].
func EMASeries(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if len(prices) < period {
		return nil, insufficient(fmt.Sprintf("EMA(%d)", period), period, len(prices))
	}
	k := 2.0 / float64(period+1)
	out := make([]float64, 0, len(prices)-period+1)

	seed := 0.0
	for i := 0; i < period; i++ {
		seed += prices[i]
	}
	current := seed / float64(period)
	out = append(out, current)

	for i := period; i < len(prices); i++ {
		current = prices[i]*k + current*(1-k)
		out = append(out, current)
	}
	return out, nil
}

// CalculateEMA returns the latest exponential moving average value.
func CalculateEMA(prices []float64, period int) (float64, error) {
	series, err := EMASeries(prices, period)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}
