// Package cache stores finished reports keyed by the exact series and
// parameters that produced them.
package cache

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"TrendSentinel/internal/indicator"
	"TrendSentinel/internal/model"
	"TrendSentinel/internal/strategy"
)

// ReportCache looks up and stores reports. A miss is (nil, false, nil).
type ReportCache interface {
	Get(ctx context.Context, key string) (*model.Report, bool, error)
	Set(ctx context.Context, key string, report *model.Report) error
	Close() error
}

// Key identifies a report by symbol, a digest of every bar and a digest of
// the indicator and scoring parameters. Analysis is deterministic, so equal
// keys mean equal reports.
func Key(series *model.PriceSeries, params indicator.Params, scoring strategy.Scoring) string {
	return fmt.Sprintf("report:%s:%016x:%016x", series.Symbol, seriesDigest(series), paramsDigest(params, scoring))
}

func seriesDigest(series *model.PriceSeries) uint64 {
	h := xxhash.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	for _, b := range series.Bars {
		put(uint64(b.Time.UnixNano()))
		put(math.Float64bits(b.Open))
		put(math.Float64bits(b.High))
		put(math.Float64bits(b.Low))
		put(math.Float64bits(b.Close))
		put(math.Float64bits(b.Volume))
	}
	return h.Sum64()
}

func paramsDigest(params indicator.Params, scoring strategy.Scoring) uint64 {
	// Both are plain structs of numbers; Marshal cannot fail.
	data, _ := json.Marshal(struct {
		Params  indicator.Params
		Scoring strategy.Scoring
	}{params, scoring})
	return xxhash.Sum64(data)
}

// NoopCache never hits.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (*model.Report, bool, error) { return nil, false, nil }
func (NoopCache) Set(context.Context, string, *model.Report) error { return nil }
func (NoopCache) Close() error { return nil }
