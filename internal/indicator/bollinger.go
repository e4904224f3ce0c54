package indicator

import (
	"math"

	"TrendSentinel/internal/calculator"
	"TrendSentinel/internal/model"
)

// ComputeBollinger computes the bands around the middle SMA using the sample
// standard deviation of the same window. When middle is non-nil it is used
// as the SMA of the last Period closes instead of recomputing it.
// Zero volatility collapses the bands onto the middle and reads NEUTRAL.
func ComputeBollinger(closes []float64, p BollingerParams, middle *float64) model.BollingerResult {
	var mid float64
	if middle != nil {
		mid = *middle
	} else {
		v, err := calculator.CalculateSMA(closes, p.Period)
		if err != nil {
			return model.BollingerResult{Availability: model.Unavailable(reasonOf(err))}
		}
		mid = v
	}

	sd, err := calculator.CalculateStdDev(closes, p.Period, mid)
	if err != nil {
		return model.BollingerResult{Availability: model.Unavailable(reasonOf(err))}
	}

	if sd <= flatEpsilon*math.Abs(mid) {
		sd = 0
	}

	upper := mid + p.K*sd
	lower := mid - p.K*sd
	last := closes[len(closes)-1]

	res := model.BollingerResult{
		Availability: model.Ready(),
		UpperBand:    model.Float(upper),
		MiddleBand:   model.Float(mid),
		LowerBand:    model.Float(lower),
	}
	if mid != 0 {
		res.Bandwidth = model.Float((upper - lower) / mid * 100)
	}

	if sd == 0 {
		res.PercentB = model.Float(0.5)
		res.Position = model.PositionAtMiddle
		res.Signal = model.ZoneNeutral
		res.Degenerate = true
		return res
	}

	res.PercentB = model.Float((last - lower) / (upper - lower))
	res.Position = classifyBandPosition(last, upper, mid, lower)
	switch res.Position {
	case model.PositionAboveUpper:
		res.Signal = model.ZoneOverbought
	case model.PositionBelowLower:
		res.Signal = model.ZoneOversold
	default:
		res.Signal = model.ZoneNeutral
	}
	return res
}

// flatEpsilon treats a deviation this small relative to the mean as a flat window.
const flatEpsilon = 1e-12

func classifyBandPosition(price, upper, middle, lower float64) model.BandPosition {
	switch {
	case price >= upper:
		return model.PositionAboveUpper
	case price <= lower:
		return model.PositionBelowLower
	case price >= middle:
		return model.PositionUpperHalf
	default:
		return model.PositionLowerHalf
	}
}
