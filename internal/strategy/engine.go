// Package strategy fuses indicator results into one composite signal.
package strategy

import (
	"math"
	"sort"

	"TrendSentinel/internal/model"
)

const insufficientReason = "no indicator family has enough history"

// Evaluate scores every available family, fuses them with renormalized
// weights and labels the result. Warnings are threshold alerts that belong
// next to the report rather than inside the composite.
func Evaluate(r *Readings, s Scoring) (model.CompositeResult, []string) {
	var (
		contributions []model.Contribution
		weightSum     float64
	)
	for _, f := range model.Families {
		raw, commentary, ok := scoreFamily(f, r, s)
		if !ok {
			continue
		}
		w := s.Weights.For(f)
		weightSum += w
		contributions = append(contributions, model.Contribution{
			Family:     f,
			Raw:        raw,
			Weight:     w,
			Commentary: commentary,
		})
	}

	warnings := rsiWarnings(r.Momentum, s)

	if len(contributions) == 0 {
		return model.CompositeResult{
			Availability:   model.Unavailable(insufficientReason),
			Signal:         model.SignalInsufficientData,
			Interpretation: "Not enough price history to compute any indicator.",
			Contributions:  []model.Contribution{},
		}, warnings
	}

	var score float64
	for i := range contributions {
		c := &contributions[i]
		if weightSum > 0 {
			c.Weight /= weightSum
		}
		c.Weighted = c.Raw * c.Weight
		score += c.Weighted
	}
	score = clamp(score)

	signal := mapSignal(score, s.Thresholds)
	return model.CompositeResult{
		Availability:   model.Ready(),
		Score:          model.Float(score),
		Signal:         signal,
		Confidence:     confidence(contributions, signal, s.AgreementBand),
		Interpretation: interpret(contributions, signal, r, s.AgreementBand),
		Contributions:  contributions,
	}, warnings
}

func scoreFamily(f model.Family, r *Readings, s Scoring) (float64, string, bool) {
	switch f {
	case model.FamilyTrend:
		if !r.Trend.Available {
			return 0, "", false
		}
		raw, c := scoreTrend(r.Trend)
		return raw, c, true
	case model.FamilyMomentum:
		if !r.Momentum.Available {
			return 0, "", false
		}
		raw, c := scoreMomentum(r.Momentum, s)
		return raw, c, true
	case model.FamilyMACD:
		if !r.MACD.Available {
			return 0, "", false
		}
		raw, c := scoreMACD(r.MACD)
		return raw, c, true
	case model.FamilyVolatility:
		if !r.Bollinger.Available {
			return 0, "", false
		}
		raw, c := scoreVolatility(r.Bollinger)
		return raw, c, true
	}
	return 0, "", false
}

// confidence is the share of available families pointing the same way as
// the signal, with HOLD agreeing with neutral families.
func confidence(contributions []model.Contribution, signal model.CompositeSignal, band float64) int {
	d := signal.Direction()
	agree := 0
	for _, c := range contributions {
		if direction(c.Raw, band) == d {
			agree++
		}
	}
	return int(math.Round(100 * float64(agree) / float64(len(contributions))))
}

func rsiWarnings(m model.MomentumResult, s Scoring) []string {
	warnings := []string{}
	if !m.RSI.Available {
		return warnings
	}
	v := model.Deref(m.RSI.Value)
	switch {
	case s.TakeProfitRSI > 0 && v >= s.TakeProfitRSI:
		warnings = append(warnings, rsiTakeProfit(v, s.TakeProfitRSI))
	case s.CapitulationRSI > 0 && v <= s.CapitulationRSI:
		warnings = append(warnings, rsiCapitulation(v, s.CapitulationRSI))
	}
	return warnings
}

// byImpact orders contributions by |Weighted|, largest first. Family order
// breaks ties so output is deterministic.
func byImpact(cs []model.Contribution) []model.Contribution {
	out := append([]model.Contribution(nil), cs...)
	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].Weighted) > math.Abs(out[j].Weighted)
	})
	return out
}
