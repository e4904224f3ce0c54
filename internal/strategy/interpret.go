package strategy

import (
	"fmt"
	"strings"

	"TrendSentinel/internal/model"
)

const (
	balancedNote   = "Indicators are balanced; no directional edge."
	degenerateNote = "Volatility is zero; bands have collapsed onto the average."
)

var headlineNoun = map[model.Family]string{
	model.FamilyTrend:      "trend",
	model.FamilyMomentum:   "momentum",
	model.FamilyMACD:       "MACD momentum",
	model.FamilyVolatility: "band reversal setup",
}

var signalAdjective = map[model.CompositeSignal]string{
	model.SignalStrongBuy:  "Strongly bullish",
	model.SignalBuy:        "Bullish",
	model.SignalSell:       "Bearish",
	model.SignalStrongSell: "Strongly bearish",
}

// phrase describes what a family is saying in the given direction.
func phrase(f model.Family, dir int, r *Readings) string {
	switch f {
	case model.FamilyTrend:
		if dir > 0 {
			return "rising moving averages"
		}
		return "falling moving averages"
	case model.FamilyMomentum:
		if dir > 0 {
			return "positive RSI momentum"
		}
		return "negative RSI momentum"
	case model.FamilyMACD:
		switch {
		case dir > 0 && r.MACD.Crossover == model.CrossoverBullish:
			return "a bullish MACD crossover"
		case dir < 0 && r.MACD.Crossover == model.CrossoverBearish:
			return "a bearish MACD crossover"
		case dir > 0:
			return "positive MACD momentum"
		default:
			return "negative MACD momentum"
		}
	case model.FamilyVolatility:
		if dir > 0 {
			return "a close below the lower Bollinger Band"
		}
		return "a close above the upper Bollinger Band"
	}
	return string(f)
}

// interpret renders a one-sentence reading of the composite from the
// families that dominate it.
func interpret(contributions []model.Contribution, signal model.CompositeSignal, r *Readings, band float64) string {
	var (
		d      = signal.Direction()
		sorted = byImpact(contributions)
		with   []string
		lead   model.Family
		bull   []string
		bear   []string
	)
	for _, c := range sorted {
		cd := direction(c.Raw, band)
		switch {
		case cd == 0:
			continue
		case d != 0 && cd == d:
			if len(with) == 0 {
				lead = c.Family
			}
			with = append(with, phrase(c.Family, cd, r))
		case cd > 0:
			bull = append(bull, phrase(c.Family, cd, r))
		default:
			bear = append(bear, phrase(c.Family, cd, r))
		}
	}

	var text string
	switch {
	case d != 0 && len(with) >= 2:
		text = fmt.Sprintf("%s %s confirmed by %s and %s", signalAdjective[signal], headlineNoun[lead], with[0], with[1])
	case d != 0 && len(with) == 1:
		text = fmt.Sprintf("%s %s driven by %s", signalAdjective[signal], headlineNoun[lead], with[0])
	case d != 0:
		text = fmt.Sprintf("%s bias with no single indicator above the agreement band", signalAdjective[signal])
	case len(bull) > 0 && len(bear) > 0:
		text = fmt.Sprintf("Mixed signals: %s offset by %s", joinPhrases(bull), joinPhrases(bear))
	case len(bull) > 0:
		text = fmt.Sprintf("Leaning bullish on %s, not enough for a buy", joinPhrases(bull))
	case len(bear) > 0:
		text = fmt.Sprintf("Leaning bearish on %s, not enough for a sell", joinPhrases(bear))
	default:
		text = strings.TrimSuffix(balancedNote, ".")
	}

	// Opposition only matters once a side has been taken.
	if d > 0 && len(bear) > 0 {
		text += ", despite " + joinPhrases(bear)
	}
	if d < 0 && len(bull) > 0 {
		text += ", despite " + joinPhrases(bull)
	}
	text += "."

	if r.Bollinger.Available && r.Bollinger.Degenerate {
		text += " " + degenerateNote
	}
	return text
}

func joinPhrases(p []string) string {
	switch len(p) {
	case 0:
		return ""
	case 1:
		return p[0]
	}
	return strings.Join(p[:len(p)-1], ", ") + " and " + p[len(p)-1]
}

func rsiTakeProfit(v, level float64) string {
	return fmt.Sprintf("RSI %.1f is at or above %.0f: consider taking partial profits", v, level)
}

func rsiCapitulation(v, level float64) string {
	return fmt.Sprintf("RSI %.1f is at or below %.0f: capitulation zone, watch for a reversal", v, level)
}
