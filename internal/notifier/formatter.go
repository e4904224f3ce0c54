package notifier

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"TrendSentinel/internal/calculator"
	"TrendSentinel/internal/model"
)

// rangeLookback is the window of the high/low range line in a report.
const rangeLookback = 20

var signalEmoji = map[model.CompositeSignal]string{
	model.SignalStrongBuy:        "🟢🟢",
	model.SignalBuy:              "🟢",
	model.SignalHold:             "⚪",
	model.SignalSell:             "🔴",
	model.SignalStrongSell:       "🔴🔴",
	model.SignalInsufficientData: "❔",
}

// num renders an optional value with fixed decimals, or N/A.
func num(p *float64, places int32) string {
	if p == nil {
		return "N/A"
	}
	return decimal.NewFromFloat(*p).StringFixed(places)
}

// signed renders v with an explicit sign for positive values.
func signed(v float64, places int32) string {
	d := decimal.NewFromFloat(v).Round(places)
	if d.IsPositive() {
		return "+" + d.StringFixed(places)
	}
	return d.StringFixed(places)
}

func unavailable(a model.Availability) string {
	if a.Reason == "" {
		return "N/A"
	}
	return fmt.Sprintf("N/A (%s)", html.EscapeString(a.Reason))
}

func headline(r *model.Report) string {
	c := r.Composite
	if c.Score == nil {
		return fmt.Sprintf("%s <b>%s</b>", signalEmoji[c.Signal], c.Signal)
	}
	return fmt.Sprintf("%s <b>%s</b> (score %s, confidence %d%%)",
		signalEmoji[c.Signal], c.Signal, signed(*c.Score, 2), c.Confidence)
}

// FormatReport renders one report as a Telegram HTML message. series is
// optional and adds the recent high/low range.
func FormatReport(r *model.Report, series *model.PriceSeries) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s | %d bars\n", html.EscapeString(r.Symbol), r.GeneratedAt.Format("2006-01-02"), r.Bars))
	b.WriteString(fmt.Sprintf("Signal: %s\n", headline(r)))
	b.WriteString(fmt.Sprintf("<i>%s</i>\n\n", html.EscapeString(r.Composite.Interpretation)))

	if t := r.Trend; t.Available {
		b.WriteString(fmt.Sprintf("<b>Trend</b>: %s (%s, gap %s%%)\n", t.Trend, t.Strength, num(t.GapPct, 2)))
	} else {
		b.WriteString(fmt.Sprintf("<b>Trend</b>: %s\n", unavailable(t.Availability)))
	}

	ma := r.MovingAverages
	b.WriteString(fmt.Sprintf("<b>MA</b>: SMA20 %s | SMA50 %s | EMA9 %s | EMA21 %s\n",
		num(ma.SMA20, 2), num(ma.SMA50, 2), num(ma.EMA9, 2), num(ma.EMA21, 2)))

	if rsi := r.Momentum.RSI; rsi.Available {
		b.WriteString(fmt.Sprintf("<b>RSI</b>: %s %s\n", num(rsi.Value, 1), rsi.Signal))
	} else {
		b.WriteString(fmt.Sprintf("<b>RSI</b>: %s\n", unavailable(rsi.Availability)))
	}
	if st := r.Momentum.Stochastic; st.Available {
		b.WriteString(fmt.Sprintf("<b>Stochastic</b>: %%K %s / %%D %s %s\n", num(st.K, 1), num(st.D, 1), st.Signal))
	}

	if m := r.MACD; m.Available {
		b.WriteString(fmt.Sprintf("<b>MACD</b>: %s / signal %s / hist %s (%s)\n",
			num(m.Value, 3), num(m.Signal, 3), signed(model.Deref(m.Histogram), 3), m.Crossover))
	} else {
		b.WriteString(fmt.Sprintf("<b>MACD</b>: %s\n", unavailable(m.Availability)))
	}

	if bb := r.Bollinger; bb.Available {
		b.WriteString(fmt.Sprintf("<b>Bollinger</b>: %s / %s / %s, %s (%%B %s)\n",
			num(bb.UpperBand, 2), num(bb.MiddleBand, 2), num(bb.LowerBand, 2), bb.Position, num(bb.PercentB, 2)))
	} else {
		b.WriteString(fmt.Sprintf("<b>Bollinger</b>: %s\n", unavailable(bb.Availability)))
	}

	if line := rangeLine(series); line != "" {
		b.WriteString(line)
	}

	if len(r.Composite.Contributions) > 0 {
		b.WriteString("\n📈 <b>Contributions:</b>\n")
		for _, c := range r.Composite.Contributions {
			b.WriteString(fmt.Sprintf("  %s: %s ×%s = %s (%s)\n",
				c.Family, signed(c.Raw, 2), decimal.NewFromFloat(c.Weight).StringFixed(2), signed(c.Weighted, 3),
				html.EscapeString(c.Commentary)))
		}
	}

	for _, w := range r.Warnings {
		b.WriteString(fmt.Sprintf("\n⚠️ %s", html.EscapeString(w)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func rangeLine(series *model.PriceSeries) string {
	if series == nil || series.Len() == 0 {
		return ""
	}
	high, low, err := calculator.CalculateRange(series.Highs(), series.Lows(), rangeLookback)
	if err != nil {
		return ""
	}
	pos, err := calculator.CalculateRangePosition(series.Last().Close, high, low)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("<b>Range %dd</b>: %s to %s, at %s%%\n",
		rangeLookback, decimal.NewFromFloat(low).StringFixed(2), decimal.NewFromFloat(high).StringFixed(2),
		decimal.NewFromFloat(pos*100).StringFixed(0))
}

// FormatWatchlistDigest renders one line per report plus any symbols that
// failed before a report could be built.
func FormatWatchlistDigest(at time.Time, reports []*model.Report, failures map[string]error) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗂 <b>TrendSentinel watchlist</b> | %s\n\n", at.Format("2006-01-02 15:04")))

	for _, r := range reports {
		b.WriteString(fmt.Sprintf("<b>%s</b> %s\n", html.EscapeString(r.Symbol), headline(r)))
	}

	if len(failures) > 0 {
		symbols := make([]string, 0, len(failures))
		for s := range failures {
			symbols = append(symbols, s)
		}
		sort.Strings(symbols)
		b.WriteString("\n❌ <b>Failed:</b>\n")
		for _, s := range symbols {
			b.WriteString(fmt.Sprintf("  %s: %s\n", html.EscapeString(s), html.EscapeString(failures[s].Error())))
		}
	}
	if len(reports) == 0 && len(failures) == 0 {
		b.WriteString("Watchlist is empty.\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatHelp lists the bot commands.
func FormatHelp() string {
	return strings.Join([]string{
		"<b>TrendSentinel commands</b>",
		"/analyze SYMBOL: full indicator report for one symbol",
		"/watchlist: analyze every watchlist symbol now",
		"/help: this message",
	}, "\n")
}
