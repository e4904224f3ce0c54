package strategy

import (
	"fmt"
	"math"

	"TrendSentinel/internal/model"
)

// Readings bundles the indicator results the composite is built from.
type Readings struct {
	Trend     model.TrendResult
	Momentum  model.MomentumResult
	MACD      model.MACDResult
	Bollinger model.BollingerResult
}

// Trend strength multipliers.
var strengthFactor = map[model.TrendStrength]float64{
	model.StrengthWeak:     0.5,
	model.StrengthModerate: 0.75,
	model.StrengthStrong:   1.0,
}

func scoreTrend(t model.TrendResult) (float64, string) {
	f := strengthFactor[t.Strength]
	switch t.Trend {
	case model.TrendUp:
		return f, fmt.Sprintf("%s uptrend, gap %.2f%%", t.Strength, model.Deref(t.GapPct))
	case model.TrendDown:
		return -f, fmt.Sprintf("%s downtrend, gap %.2f%%", t.Strength, model.Deref(t.GapPct))
	default:
		return 0, "moving averages disagree"
	}
}

// oscillatorTerm maps a 0..100 oscillator onto [-1, 1], damped inside an
// extreme zone.
func oscillatorTerm(v float64, zone model.ZoneSignal, damping float64) float64 {
	t := clamp((v - 50) / 50)
	if zone.Extreme() {
		t *= damping
	}
	return t
}

func scoreMomentum(m model.MomentumResult, s Scoring) (float64, string) {
	rsi := model.Deref(m.RSI.Value)
	raw := oscillatorTerm(rsi, m.RSI.Signal, s.ExtremeDamping)
	commentary := fmt.Sprintf("RSI %.1f %s", rsi, m.RSI.Signal)
	if m.Stochastic.Available {
		k := model.Deref(m.Stochastic.K)
		st := oscillatorTerm(k, m.Stochastic.Signal, s.ExtremeDamping)
		raw = (1-s.StochasticBlend)*raw + s.StochasticBlend*st
		commentary += fmt.Sprintf(", %%K %.1f %s", k, m.Stochastic.Signal)
	}
	return clamp(raw), commentary
}

func scoreMACD(m model.MACDResult) (float64, string) {
	switch m.Crossover {
	case model.CrossoverBullish:
		return 1, "bullish crossover"
	case model.CrossoverBearish:
		return -1, "bearish crossover"
	}
	h := model.Deref(m.Histogram)
	switch {
	case h > 0:
		return 0.5, fmt.Sprintf("histogram positive (%.4f)", h)
	case h < 0:
		return -0.5, fmt.Sprintf("histogram negative (%.4f)", h)
	default:
		return 0, "histogram flat"
	}
}

func scoreVolatility(b model.BollingerResult) (float64, string) {
	switch b.Position {
	case model.PositionAboveUpper:
		return -1, "close above upper band"
	case model.PositionBelowLower:
		return 1, "close below lower band"
	}
	if b.Degenerate {
		return 0, "bands collapsed"
	}
	return 0, fmt.Sprintf("close in %s of the bands", positionPhrase(b.Position))
}

func positionPhrase(p model.BandPosition) string {
	switch p {
	case model.PositionUpperHalf:
		return "upper half"
	case model.PositionLowerHalf:
		return "lower half"
	}
	return "the middle"
}

// direction is the sign of a contribution, 0 inside the agreement band.
func direction(v, band float64) int {
	switch {
	case v > band:
		return 1
	case v < -band:
		return -1
	default:
		return 0
	}
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
