// Package analysis runs the indicator pipeline over a price series and
// assembles the report.
package analysis

import (
	"fmt"

	"TrendSentinel/internal/indicator"
	"TrendSentinel/internal/model"
	"TrendSentinel/internal/strategy"
)

// Analyzer holds the indicator and scoring parameters. It keeps no state
// between calls and is safe for concurrent use.
type Analyzer struct {
	params  indicator.Params
	scoring strategy.Scoring
}

// New validates the parameter sets and returns an Analyzer.
func New(params indicator.Params, scoring strategy.Scoring) (*Analyzer, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("indicator params: %w", err)
	}
	if err := scoring.Validate(); err != nil {
		return nil, fmt.Errorf("scoring: %w", err)
	}
	return &Analyzer{params: params, scoring: scoring}, nil
}

// NewDefault returns an Analyzer with the default parameters.
func NewDefault() *Analyzer {
	return &Analyzer{params: indicator.DefaultParams(), scoring: strategy.DefaultScoring()}
}

// Params returns the indicator parameters.
func (a *Analyzer) Params() indicator.Params { return a.params }

// Scoring returns the composite scoring parameters.
func (a *Analyzer) Scoring() strategy.Scoring { return a.scoring }

// Analyze computes every indicator family and the composite for series.
// The only error is an *InvalidSeriesError; short history shows up as
// unavailable sections instead.
func (a *Analyzer) Analyze(series *model.PriceSeries) (*model.Report, error) {
	if err := Validate(series); err != nil {
		return nil, err
	}

	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()

	ma, trend := indicator.ComputeMovingAverages(closes, a.params.MovingAverages)
	momentum := indicator.ComputeMomentum(highs, lows, closes, a.params.Momentum)
	macd := indicator.ComputeMACD(closes, a.params.MACD)

	var middle *float64
	if a.params.Bollinger.Period == a.params.MovingAverages.SMAShort {
		middle = ma.SMA20
	}
	bollinger := indicator.ComputeBollinger(closes, a.params.Bollinger, middle)

	composite, warnings := strategy.Evaluate(&strategy.Readings{
		Trend:     trend,
		Momentum:  momentum,
		MACD:      macd,
		Bollinger: bollinger,
	}, a.scoring)

	report := &model.Report{
		Symbol:         series.Symbol,
		GeneratedAt:    series.Last().Time,
		Bars:           series.Len(),
		Trend:          trend,
		Momentum:       momentum,
		MACD:           macd,
		Bollinger:      bollinger,
		MovingAverages: ma,
		Composite:      composite,
		Warnings:       warnings,
	}
	report.Summary = summarize(report)
	return report, nil
}
