package analysis

import (
	"errors"
	"fmt"
	"math"

	"TrendSentinel/internal/model"
)

// ErrInvalidSeries is matched by every *InvalidSeriesError.
var ErrInvalidSeries = errors.New("invalid price series")

// InvalidSeriesError reports why a series was rejected. Index is -1 when the
// problem is not tied to one bar.
type InvalidSeriesError struct {
	Index  int
	Field  string
	Reason string
}

func (e *InvalidSeriesError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid price series: %s", e.Reason)
	}
	if e.Field == "" {
		return fmt.Sprintf("invalid price series: bar %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("invalid price series: bar %d %s: %s", e.Index, e.Field, e.Reason)
}

func (e *InvalidSeriesError) Is(target error) bool {
	return target == ErrInvalidSeries
}

// Validate checks the series is non-empty, every price and volume is finite
// and timestamped bars are in chronological order. Bars with a zero Time are
// not ordered against their neighbours. High/low consistency is not checked.
func Validate(series *model.PriceSeries) error {
	if series == nil {
		return &InvalidSeriesError{Index: -1, Reason: "nil series"}
	}
	if len(series.Bars) == 0 {
		return &InvalidSeriesError{Index: -1, Reason: "empty series"}
	}
	for i, b := range series.Bars {
		fields := [...]struct {
			name string
			v    float64
		}{
			{"open", b.Open},
			{"high", b.High},
			{"low", b.Low},
			{"close", b.Close},
			{"volume", b.Volume},
		}
		for _, f := range fields {
			if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
				return &InvalidSeriesError{Index: i, Field: f.name, Reason: fmt.Sprintf("not a finite number (%v)", f.v)}
			}
		}
		if i > 0 {
			prev := series.Bars[i-1].Time
			if !prev.IsZero() && !b.Time.IsZero() && b.Time.Before(prev) {
				return &InvalidSeriesError{Index: i, Field: "time", Reason: fmt.Sprintf("%s precedes previous bar %s",
					b.Time.Format("2006-01-02"), prev.Format("2006-01-02"))}
			}
		}
	}
	return nil
}
