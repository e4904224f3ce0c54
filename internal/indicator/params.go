// Package indicator turns the numeric primitives in calculator into
// labelled, report-ready readings. Every function is a pure function of
// its input slices; insufficient history is reported as an unavailable
// reading, never as an error.
package indicator

import (
	"errors"
	"fmt"
)

// MovingAverageParams configures the SMA/EMA windows and trend strength buckets.
type MovingAverageParams struct {
	SMAShort int `yaml:"sma_short"`
	SMALong  int `yaml:"sma_long"`
	EMAShort int `yaml:"ema_short"`
	EMALong  int `yaml:"ema_long"`
	// Percentage gaps separating WEAK/MODERATE and MODERATE/STRONG.
	StrengthModerate float64 `yaml:"strength_moderate_pct"`
	StrengthStrong   float64 `yaml:"strength_strong_pct"`
}

// MomentumParams configures RSI and the stochastic oscillator.
type MomentumParams struct {
	RSIPeriod       int     `yaml:"rsi_period"`
	RSIOverbought   float64 `yaml:"rsi_overbought"`
	RSIOversold     float64 `yaml:"rsi_oversold"`
	StochK          int     `yaml:"stoch_k"`
	StochD          int     `yaml:"stoch_d"`
	StochOverbought float64 `yaml:"stoch_overbought"`
	StochOversold   float64 `yaml:"stoch_oversold"`
}

// MACDParams configures the MACD fast/slow/signal EMAs.
type MACDParams struct {
	Fast   int `yaml:"fast"`
	Slow   int `yaml:"slow"`
	Signal int `yaml:"signal"`
}

// BollingerParams configures the band window and width.
type BollingerParams struct {
	Period int     `yaml:"period"`
	K      float64 `yaml:"k"`
}

// Params bundles every indicator setting.
type Params struct {
	MovingAverages MovingAverageParams `yaml:"moving_averages"`
	Momentum       MomentumParams      `yaml:"momentum"`
	MACD           MACDParams          `yaml:"macd"`
	Bollinger      BollingerParams     `yaml:"bollinger"`
}

// DefaultParams returns the conventional settings: SMA 20/50, EMA 9/21,
// RSI 14 at 70/30, stochastic 14/3 at 80/20, MACD 12/26/9, Bollinger 20/2.
func DefaultParams() Params {
	return Params{
		MovingAverages: MovingAverageParams{
			SMAShort:         20,
			SMALong:          50,
			EMAShort:         9,
			EMALong:          21,
			StrengthModerate: 2.0,
			StrengthStrong:   5.0,
		},
		Momentum: MomentumParams{
			RSIPeriod:       14,
			RSIOverbought:   70,
			RSIOversold:     30,
			StochK:          14,
			StochD:          3,
			StochOverbought: 80,
			StochOversold:   20,
		},
		MACD:      MACDParams{Fast: 12, Slow: 26, Signal: 9},
		Bollinger: BollingerParams{Period: 20, K: 2.0},
	}
}

// Validate checks that windows are positive and ordered.
func (p Params) Validate() error {
	var errs []error
	ma := p.MovingAverages
	if ma.SMAShort <= 0 || ma.SMALong <= 0 || ma.EMAShort <= 0 || ma.EMALong <= 0 {
		errs = append(errs, errors.New("moving average windows must be positive"))
	}
	if ma.SMAShort >= ma.SMALong {
		errs = append(errs, fmt.Errorf("sma_short (%d) must be below sma_long (%d)", ma.SMAShort, ma.SMALong))
	}
	if ma.EMAShort >= ma.EMALong {
		errs = append(errs, fmt.Errorf("ema_short (%d) must be below ema_long (%d)", ma.EMAShort, ma.EMALong))
	}
	if ma.StrengthModerate < 0 || ma.StrengthStrong <= ma.StrengthModerate {
		errs = append(errs, errors.New("trend strength thresholds must satisfy 0 <= moderate < strong"))
	}

	m := p.Momentum
	if m.RSIPeriod <= 0 || m.StochK <= 0 || m.StochD <= 0 {
		errs = append(errs, errors.New("momentum periods must be positive"))
	}
	if !(0 <= m.RSIOversold && m.RSIOversold < m.RSIOverbought && m.RSIOverbought <= 100) {
		errs = append(errs, errors.New("rsi thresholds must satisfy 0 <= oversold < overbought <= 100"))
	}
	if !(0 <= m.StochOversold && m.StochOversold < m.StochOverbought && m.StochOverbought <= 100) {
		errs = append(errs, errors.New("stochastic thresholds must satisfy 0 <= oversold < overbought <= 100"))
	}

	if p.MACD.Fast <= 0 || p.MACD.Signal <= 0 || p.MACD.Fast >= p.MACD.Slow {
		errs = append(errs, errors.New("macd periods must be positive with fast < slow"))
	}

	if p.Bollinger.Period <= 1 {
		errs = append(errs, errors.New("bollinger period must be greater than 1"))
	}
	if p.Bollinger.K <= 0 {
		errs = append(errs, errors.New("bollinger k must be positive"))
	}
	return errors.Join(errs...)
}

// MinBars returns the history needed for every family to be available.
func (p Params) MinBars() int {
	need := p.MovingAverages.SMALong
	for _, n := range []int{
		p.MovingAverages.EMALong,
		p.Momentum.RSIPeriod + 1,
		p.Momentum.StochK + p.Momentum.StochD - 1,
		p.MACD.Slow + p.MACD.Signal,
		p.Bollinger.Period,
	} {
		if n > need {
			need = n
		}
	}
	return need
}
