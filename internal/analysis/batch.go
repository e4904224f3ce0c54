package analysis

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"TrendSentinel/internal/model"
)

// BatchResult is one series' outcome in AnalyzeBatch.
type BatchResult struct {
	Symbol string
	Report *model.Report
	Err    error
}

// AnalyzeBatch analyzes every series on a bounded worker pool. Results keep
// the input order and carry their own error, so one bad series does not fail
// the rest. Items not started before ctx is done get ctx's error, which is
// also returned.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, series []model.PriceSeries, workers int) ([]BatchResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]BatchResult, len(series))

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range series {
		results[i].Symbol = series[i].Symbol
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Report, results[i].Err = a.Analyze(&series[i])
			return nil
		})
	}
	_ = g.Wait()
	return results, ctx.Err()
}
