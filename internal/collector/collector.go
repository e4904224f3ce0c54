package collector

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"TrendSentinel/internal/model"
)

// Collector fetches daily bars and packages them as a PriceSeries.
type Collector struct {
	Fetcher  Fetcher
	Lookback int
	now      func() time.Time
}

// NewCollector creates a new Collector fetching lookback daily bars per symbol.
func NewCollector(fetcher Fetcher, lookback int) *Collector {
	return &Collector{Fetcher: fetcher, Lookback: lookback, now: time.Now}
}

// Collect fetches the series for one symbol. Bars come back oldest first;
// bars with an all-zero price are dropped as gaps.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.PriceSeries, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("collect: empty symbol")
	}

	bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, c.Lookback)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars for %s from %s: %w", symbol, c.Fetcher.Name(), err)
	}

	clean := make([]model.OHLCV, 0, len(bars))
	for _, b := range bars {
		if b.Open == 0 && b.High == 0 && b.Low == 0 && b.Close == 0 {
			continue
		}
		clean = append(clean, b)
	}
	sort.SliceStable(clean, func(i, j int) bool { return clean[i].Time.Before(clean[j].Time) })
	if dropped := len(bars) - len(clean); dropped > 0 {
		log.Debug().Str("symbol", symbol).Int("dropped", dropped).Msg("skipped empty bars")
	}

	log.Debug().Str("symbol", symbol).Str("source", c.Fetcher.Name()).Int("bars", len(clean)).Msg("collected series")
	return &model.PriceSeries{Symbol: symbol, Bars: clean, FetchedAt: c.clock().UTC()}, nil
}

func (c *Collector) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}
