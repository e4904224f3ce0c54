package indicator

import (
	"fmt"
	"math"

	"TrendSentinel/internal/calculator"
	"TrendSentinel/internal/model"
)

// ComputeMACD computes the MACD line, signal line and histogram at the latest
// bar and classifies the crossover from the previous histogram. It needs
// Slow+Signal bars so that two histogram values exist.
func ComputeMACD(closes []float64, p MACDParams) model.MACDResult {
	need := p.Slow + p.Signal
	if len(closes) < need {
		ide := &calculator.InsufficientDataError{
			Indicator: fmt.Sprintf("MACD(%d,%d,%d)", p.Fast, p.Slow, p.Signal),
			Need:      need,
			Have:      len(closes),
		}
		return model.MACDResult{Availability: model.Unavailable(ide.Error())}
	}

	series, err := calculator.CalculateMACD(closes, p.Fast, p.Slow, p.Signal)
	if err != nil {
		return model.MACDResult{Availability: model.Unavailable(reasonOf(err))}
	}

	last := len(series.Histogram) - 1
	scale := math.Max(1, math.Abs(closes[len(closes)-1]))
	cur := snapZero(series.Histogram[last], scale)
	prev := snapZero(series.Histogram[last-1], scale)
	return model.MACDResult{
		Availability:  model.Ready(),
		Value:         model.Float(series.Line[last]),
		Signal:        model.Float(series.Signal[last]),
		Histogram:     model.Float(cur),
		PrevHistogram: model.Float(prev),
		Crossover:     ClassifyCrossover(prev, cur),
	}
}

// histogramEpsilon is the price-relative magnitude below which a histogram
// value is rounding noise from the EMA recurrences (a linear series gives a
// constant MACD line and a histogram of about 1e-15).
const histogramEpsilon = 1e-9

func snapZero(v, scale float64) float64 {
	if math.Abs(v) <= histogramEpsilon*scale {
		return 0
	}
	return v
}

// ClassifyCrossover labels the histogram sign change between two bars.
func ClassifyCrossover(prev, cur float64) model.Crossover {
	switch {
	case prev <= 0 && cur > 0:
		return model.CrossoverBullish
	case prev >= 0 && cur < 0:
		return model.CrossoverBearish
	default:
		return model.CrossoverNone
	}
}
