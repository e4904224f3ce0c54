package indicator

import (
	"fmt"

	"TrendSentinel/internal/calculator"
	"TrendSentinel/internal/model"
)

// ComputeMomentum computes Wilder RSI and the stochastic oscillator.
// The family is available whenever RSI is; the stochastic reading is optional.
func ComputeMomentum(highs, lows, closes []float64, p MomentumParams) model.MomentumResult {
	res := model.MomentumResult{
		RSI:        computeRSI(closes, p),
		Stochastic: computeStochastic(highs, lows, closes, p),
	}
	if res.RSI.Available {
		res.Availability = model.Ready()
	} else {
		res.Availability = model.Unavailable(res.RSI.Reason)
	}
	return res
}

func computeRSI(closes []float64, p MomentumParams) model.RSIResult {
	rsi, err := calculator.CalculateRSI(closes, p.RSIPeriod)
	if err != nil {
		return model.RSIResult{Availability: model.Unavailable(reasonOf(err))}
	}
	zone := classifyZone(rsi, p.RSIOverbought, p.RSIOversold)
	return model.RSIResult{
		Availability:   model.Ready(),
		Value:          model.Float(rsi),
		Signal:         zone,
		Interpretation: interpretRSI(rsi, zone, p),
	}
}

func interpretRSI(rsi float64, zone model.ZoneSignal, p MomentumParams) string {
	switch zone {
	case model.ZoneOverbought:
		return fmt.Sprintf("RSI %.1f is above %.0f: overbought, upside momentum is stretched", rsi, p.RSIOverbought)
	case model.ZoneOversold:
		return fmt.Sprintf("RSI %.1f is below %.0f: oversold, downside momentum is stretched", rsi, p.RSIOversold)
	}
	switch {
	case rsi > 50:
		return fmt.Sprintf("RSI %.1f is neutral with a bullish tilt", rsi)
	case rsi < 50:
		return fmt.Sprintf("RSI %.1f is neutral with a bearish tilt", rsi)
	default:
		return fmt.Sprintf("RSI %.1f is neutral", rsi)
	}
}

func computeStochastic(highs, lows, closes []float64, p MomentumParams) model.StochasticResult {
	k, d, err := calculator.CalculateStochastic(highs, lows, closes, p.StochK, p.StochD)
	if err != nil {
		return model.StochasticResult{Availability: model.Unavailable(reasonOf(err))}
	}
	return model.StochasticResult{
		Availability: model.Ready(),
		K:            model.Float(k),
		D:            model.Float(d),
		Signal:       classifyZone(k, p.StochOverbought, p.StochOversold),
	}
}
