package model

import "time"

// Availability marks whether a report section could be computed.
// Unavailable sections stay in the report so renderers can show "N/A".
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// Ready returns an Availability for a computed section.
func Ready() Availability { return Availability{Available: true} }

// Unavailable returns an Availability carrying the reason it is missing.
func Unavailable(reason string) Availability {
	return Availability{Available: false, Reason: reason}
}

// Float boxes a value for an optional report field.
func Float(v float64) *float64 { return &v }

// Deref returns the boxed value, or 0 for a nil pointer.
func Deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// MovingAverages holds the SMA/EMA readings and the trend derived from them.
// The JSON keys name the default windows; the configured windows may differ.
type MovingAverages struct {
	Availability
	SMA20         *float64      `json:"sma20"`
	SMA50         *float64      `json:"sma50"`
	EMA9          *float64      `json:"ema9"`
	EMA21         *float64      `json:"ema21"`
	Trend         Trend         `json:"trend"`
	TrendStrength TrendStrength `json:"trendStrength"`
}

// TrendResult is the trend family reading.
type TrendResult struct {
	Availability
	Trend    Trend         `json:"trend"`
	Strength TrendStrength `json:"strength"`
	GapPct   *float64      `json:"gapPct"`
}

// RSIResult is the relative strength index reading.
type RSIResult struct {
	Availability
	Value          *float64   `json:"value"`
	Signal         ZoneSignal `json:"signal"`
	Interpretation string     `json:"interpretation"`
}

// StochasticResult is the stochastic oscillator reading.
type StochasticResult struct {
	Availability
	K      *float64   `json:"k"`
	D      *float64   `json:"d"`
	Signal ZoneSignal `json:"signal"`
}

// MomentumResult groups RSI and the optional stochastic oscillator.
type MomentumResult struct {
	Availability
	RSI        RSIResult        `json:"rsi"`
	Stochastic StochasticResult `json:"stochastic"`
}

// MACDResult is the MACD reading at the latest bar.
type MACDResult struct {
	Availability
	Value         *float64  `json:"value"`
	Signal        *float64  `json:"signal"`
	Histogram     *float64  `json:"histogram"`
	PrevHistogram *float64  `json:"prevHistogram"`
	Crossover     Crossover `json:"crossover"`
}

// BollingerResult is the volatility band reading at the latest bar.
type BollingerResult struct {
	Availability
	UpperBand  *float64     `json:"upperBand"`
	MiddleBand *float64     `json:"middleBand"`
	LowerBand  *float64     `json:"lowerBand"`
	PercentB   *float64     `json:"percentB"`
	Bandwidth  *float64     `json:"bandwidth"`
	Position   BandPosition `json:"position"`
	Signal     ZoneSignal   `json:"signal"`
	Degenerate bool         `json:"degenerate"`
}

// Contribution is one family's share of the composite score.
type Contribution struct {
	Family     Family  `json:"family"`
	Raw        float64 `json:"raw"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
	Commentary string  `json:"commentary"`
}

// CompositeResult is the fused decision. Score is nil when no family
// had enough data, which is distinct from a balanced score of 0.
type CompositeResult struct {
	Availability
	Score          *float64        `json:"score"`
	Signal         CompositeSignal `json:"signal"`
	Confidence     int             `json:"confidence"`
	Interpretation string          `json:"interpretation"`
	Contributions  []Contribution  `json:"contributions"`
}

// Report is the full analysis output for one series.
type Report struct {
	Symbol         string          `json:"symbol"`
	GeneratedAt    time.Time       `json:"generatedAt"`
	Bars           int             `json:"bars"`
	Trend          TrendResult     `json:"trend"`
	Momentum       MomentumResult  `json:"momentum"`
	MACD           MACDResult      `json:"macd"`
	Bollinger      BollingerResult `json:"bollinger"`
	MovingAverages MovingAverages  `json:"movingAverages"`
	Composite      CompositeResult `json:"composite"`
	Warnings       []string        `json:"warnings"`
	Summary        string          `json:"summary"`
}

// UnavailableFamilies lists the families that could not be computed.
func (r *Report) UnavailableFamilies() []Family {
	var out []Family
	if !r.Trend.Available {
		out = append(out, FamilyTrend)
	}
	if !r.Momentum.Available {
		out = append(out, FamilyMomentum)
	}
	if !r.MACD.Available {
		out = append(out, FamilyMACD)
	}
	if !r.Bollinger.Available {
		out = append(out, FamilyVolatility)
	}
	return out
}
