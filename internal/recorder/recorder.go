package recorder

import (
	"encoding/json"
	"fmt"
	"time"

	"TrendSentinel/internal/model"
)

// ReportSnapshot is one analysis as kept in history: the headline numbers
// as columns plus the full report as JSON.
type ReportSnapshot struct {
	ID             int64
	RunID          string
	Symbol         string
	AsOf           time.Time // time of the last bar analyzed
	RecordedAt     time.Time
	Bars           int
	Close          float64
	Signal         model.CompositeSignal
	Score          *float64
	Confidence     int
	Trend          model.Trend
	TrendStrength  model.TrendStrength
	RSI            *float64
	MACDHistogram  *float64
	Crossover      model.Crossover
	PercentB       *float64
	BandPosition   model.BandPosition
	Interpretation string
	ReportJSON     string
}

// NewSnapshot flattens a report for storage. runID ties together the
// snapshots written by one scheduled run.
func NewSnapshot(runID string, series *model.PriceSeries, r *model.Report) (*ReportSnapshot, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	snap := &ReportSnapshot{
		RunID:          runID,
		Symbol:         r.Symbol,
		AsOf:           r.GeneratedAt,
		Bars:           r.Bars,
		Signal:         r.Composite.Signal,
		Score:          r.Composite.Score,
		Confidence:     r.Composite.Confidence,
		Trend:          r.Trend.Trend,
		TrendStrength:  r.Trend.Strength,
		RSI:            r.Momentum.RSI.Value,
		MACDHistogram:  r.MACD.Histogram,
		Crossover:      r.MACD.Crossover,
		PercentB:       r.Bollinger.PercentB,
		BandPosition:   r.Bollinger.Position,
		Interpretation: r.Composite.Interpretation,
		ReportJSON:     string(data),
	}
	if series != nil && series.Len() > 0 {
		snap.Close = series.Last().Close
	}
	return snap, nil
}

// Report decodes the stored JSON back into a report.
func (s *ReportSnapshot) Report() (*model.Report, error) {
	var r model.Report
	if err := json.Unmarshal([]byte(s.ReportJSON), &r); err != nil {
		return nil, fmt.Errorf("decode stored report %d: %w", s.ID, err)
	}
	return &r, nil
}

// Recorder persists report history.
type Recorder interface {
	RecordReport(snap *ReportSnapshot) error
	// ListReports returns the newest snapshots first. An empty symbol
	// lists every symbol; limit <= 0 means no limit.
	ListReports(symbol string, limit int) ([]ReportSnapshot, error)
	Close() error
}
