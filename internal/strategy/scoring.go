package strategy

import (
	"errors"
	"fmt"

	"TrendSentinel/internal/model"
)

// Weights sets each indicator family's share of the composite score.
// They are renormalized over the families that have data.
type Weights struct {
	Trend      float64 `yaml:"trend"`
	Momentum   float64 `yaml:"momentum"`
	MACD       float64 `yaml:"macd"`
	Volatility float64 `yaml:"volatility"`
}

// For returns the weight of one family.
func (w Weights) For(f model.Family) float64 {
	switch f {
	case model.FamilyTrend:
		return w.Trend
	case model.FamilyMomentum:
		return w.Momentum
	case model.FamilyMACD:
		return w.MACD
	case model.FamilyVolatility:
		return w.Volatility
	}
	return 0
}

// Thresholds map the composite score onto a signal label.
type Thresholds struct {
	StrongBuy  float64 `yaml:"strong_buy"`
	Buy        float64 `yaml:"buy"`
	Sell       float64 `yaml:"sell"`
	StrongSell float64 `yaml:"strong_sell"`
}

// Scoring is the full composite parameter set.
type Scoring struct {
	Weights    Weights    `yaml:"weights"`
	Thresholds Thresholds `yaml:"thresholds"`
	// Share of the momentum contribution taken from stochastic %K.
	StochasticBlend float64 `yaml:"stochastic_blend"`
	// Multiplier applied to an oscillator term inside its overbought/oversold zone.
	ExtremeDamping float64 `yaml:"extreme_damping"`
	// A family whose |contribution| is below this counts as neutral for confidence.
	AgreementBand float64 `yaml:"agreement_band"`
	// RSI levels that raise take-profit / capitulation warnings.
	TakeProfitRSI   float64 `yaml:"take_profit_rsi"`
	CapitulationRSI float64 `yaml:"capitulation_rsi"`
}

// Default weights and thresholds.
const (
	DefaultTrendWeight      = 0.30
	DefaultMomentumWeight   = 0.25
	DefaultMACDWeight       = 0.25
	DefaultVolatilityWeight = 0.20

	DefaultStrongBuy  = 0.60
	DefaultBuy        = 0.20
	DefaultSell       = -0.20
	DefaultStrongSell = -0.60

	DefaultStochasticBlend = 0.30
	DefaultExtremeDamping  = 0.50
	DefaultAgreementBand   = 0.10
	DefaultTakeProfitRSI   = 85
	DefaultCapitulationRSI = 15
)

// DefaultScoring returns the documented default parameter set.
func DefaultScoring() Scoring {
	return Scoring{
		Weights: Weights{
			Trend:      DefaultTrendWeight,
			Momentum:   DefaultMomentumWeight,
			MACD:       DefaultMACDWeight,
			Volatility: DefaultVolatilityWeight,
		},
		Thresholds: Thresholds{
			StrongBuy:  DefaultStrongBuy,
			Buy:        DefaultBuy,
			Sell:       DefaultSell,
			StrongSell: DefaultStrongSell,
		},
		StochasticBlend: DefaultStochasticBlend,
		ExtremeDamping:  DefaultExtremeDamping,
		AgreementBand:   DefaultAgreementBand,
		TakeProfitRSI:   DefaultTakeProfitRSI,
		CapitulationRSI: DefaultCapitulationRSI,
	}
}

// Validate checks weights, threshold ordering and blend factors.
func (s Scoring) Validate() error {
	var errs []error
	w := s.Weights
	if w.Trend < 0 || w.Momentum < 0 || w.MACD < 0 || w.Volatility < 0 {
		errs = append(errs, errors.New("weights must be non-negative"))
	}
	if w.Trend+w.Momentum+w.MACD+w.Volatility <= 0 {
		errs = append(errs, errors.New("weights must sum to a positive value"))
	}
	th := s.Thresholds
	if !(th.StrongSell < th.Sell && th.Sell < 0 && 0 < th.Buy && th.Buy < th.StrongBuy) {
		errs = append(errs, fmt.Errorf("thresholds must satisfy strong_sell < sell < 0 < buy < strong_buy, got %.2f/%.2f/%.2f/%.2f",
			th.StrongSell, th.Sell, th.Buy, th.StrongBuy))
	}
	if s.StochasticBlend < 0 || s.StochasticBlend > 1 {
		errs = append(errs, errors.New("stochastic_blend must be within [0, 1]"))
	}
	if s.ExtremeDamping < 0 || s.ExtremeDamping > 1 {
		errs = append(errs, errors.New("extreme_damping must be within [0, 1]"))
	}
	if s.AgreementBand < 0 || s.AgreementBand >= 1 {
		errs = append(errs, errors.New("agreement_band must be within [0, 1)"))
	}
	return errors.Join(errs...)
}

// mapSignal maps a composite score to a signal label.
func mapSignal(score float64, th Thresholds) model.CompositeSignal {
	switch {
	case score >= th.StrongBuy:
		return model.SignalStrongBuy
	case score >= th.Buy:
		return model.SignalBuy
	case score <= th.StrongSell:
		return model.SignalStrongSell
	case score <= th.Sell:
		return model.SignalSell
	default:
		return model.SignalHold
	}
}
