package calculator

import "fmt"

// MACDSeries holds aligned MACD line, signal line and histogram values.
// Index i of each slice corresponds to bar Start+i of the input.
type MACDSeries struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
	Start     int
}

// MinMACDBars is the number of closes needed for the first histogram value.
func MinMACDBars(slow, signal int) int {
	return slow + signal - 1
}

// CalculateMACD computes MACD = EMA(fast) - EMA(slow), its EMA(signal)
// signal line and the histogram between them.
func CalculateMACD(closes []float64, fast, slow, signal int) (*MACDSeries, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, ErrInvalidPeriod
	}
	if fast >= slow {
		return nil, fmt.Errorf("macd fast period %d must be shorter than slow period %d: %w", fast, slow, ErrInvalidPeriod)
	}
	need := MinMACDBars(slow, signal)
	if len(closes) < need {
		return nil, insufficient(fmt.Sprintf("MACD(%d,%d,%d)", fast, slow, signal), need, len(closes))
	}

	fastEMA, err := EMASeries(closes, fast)
	if err != nil {
		return nil, err
	}
	slowEMA, err := EMASeries(closes, slow)
	if err != nil {
		return nil, err
	}

	// Line starts at bar slow-1; fastEMA[0] is bar fast-1.
	line := make([]float64, len(slowEMA))
	offset := slow - fast
	for i := range slowEMA {
		line[i] = fastEMA[i+offset] - slowEMA[i]
	}

	sig, err := EMASeries(line, signal)
	if err != nil {
		return nil, err
	}

	aligned := line[signal-1:]
	hist := make([]float64, len(sig))
	for i := range sig {
		hist[i] = aligned[i] - sig[i]
	}

	return &MACDSeries{
		Line:      aligned,
		Signal:    sig,
		Histogram: hist,
		Start:     slow - 1 + signal - 1,
	}, nil
}
