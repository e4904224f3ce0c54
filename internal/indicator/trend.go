package indicator

import (
	"fmt"
	"math"
	"strings"

	"TrendSentinel/internal/calculator"
	"TrendSentinel/internal/model"
)

type maPair struct {
	name        string
	short, long *float64
}

// ComputeMovingAverages computes the short/long SMA and EMA and derives the
// trend from their alignment. A pair only votes when both of its averages
// exist: UPTREND needs short > long on every usable pair, DOWNTREND needs
// short < long on every usable pair, anything else is SIDEWAYS.
func ComputeMovingAverages(closes []float64, p MovingAverageParams) (model.MovingAverages, model.TrendResult) {
	var missing []string
	sma := func(period int) *float64 {
		v, err := calculator.CalculateSMA(closes, period)
		if err != nil {
			missing = append(missing, reasonOf(err))
			return nil
		}
		return model.Float(v)
	}
	ema := func(period int) *float64 {
		v, err := calculator.CalculateEMA(closes, period)
		if err != nil {
			missing = append(missing, reasonOf(err))
			return nil
		}
		return model.Float(v)
	}

	ma := model.MovingAverages{
		SMA20: sma(p.SMAShort),
		SMA50: sma(p.SMALong),
		EMA9:  ema(p.EMAShort),
		EMA21: ema(p.EMALong),
	}

	pairs := []maPair{
		{name: "EMA", short: ma.EMA9, long: ma.EMA21},
		{name: "SMA", short: ma.SMA20, long: ma.SMA50},
	}
	trend := classifyTrend(pairs, p)
	if !trend.Available {
		need := min(p.EMALong, p.SMALong)
		trend.Reason = fmt.Sprintf("trend: need %d bars for a moving-average pair, have %d", need, len(closes))
	}

	switch {
	case len(missing) == 0:
		ma.Availability = model.Ready()
	case ma.SMA20 != nil || ma.SMA50 != nil || ma.EMA9 != nil || ma.EMA21 != nil:
		ma.Availability = model.Availability{Available: true, Reason: strings.Join(missing, "; ")}
	default:
		ma.Availability = model.Unavailable(strings.Join(missing, "; "))
	}
	ma.Trend = trend.Trend
	ma.TrendStrength = trend.Strength

	return ma, trend
}

func classifyTrend(pairs []maPair, p MovingAverageParams) model.TrendResult {
	usable := 0
	up, down := 0, 0
	gapSum := 0.0
	for _, pair := range pairs {
		if pair.short == nil || pair.long == nil {
			continue
		}
		usable++
		switch {
		case *pair.short > *pair.long:
			up++
		case *pair.short < *pair.long:
			down++
		}
		gapSum += math.Abs(pctGap(*pair.short, *pair.long))
	}
	if usable == 0 {
		return model.TrendResult{Availability: model.Unavailable("")}
	}

	trend := model.TrendSideways
	switch {
	case up == usable:
		trend = model.TrendUp
	case down == usable:
		trend = model.TrendDown
	}

	gap := gapSum / float64(usable)
	return model.TrendResult{
		Availability: model.Ready(),
		Trend:        trend,
		Strength:     bucketStrength(gap, p),
		GapPct:       model.Float(gap),
	}
}

func bucketStrength(gapPct float64, p MovingAverageParams) model.TrendStrength {
	switch {
	case gapPct > p.StrengthStrong:
		return model.StrengthStrong
	case gapPct >= p.StrengthModerate:
		return model.StrengthModerate
	default:
		return model.StrengthWeak
	}
}
