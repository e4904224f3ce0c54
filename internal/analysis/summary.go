package analysis

import (
	"fmt"
	"strings"

	"TrendSentinel/internal/model"
)

func summarize(r *model.Report) string {
	var b strings.Builder
	if r.Symbol != "" {
		b.WriteString(r.Symbol)
		b.WriteString(": ")
	}

	c := r.Composite
	if c.Score == nil {
		fmt.Fprintf(&b, "%s after %d bars. %s", c.Signal, r.Bars, c.Interpretation)
	} else {
		fmt.Fprintf(&b, "%s (score %+.2f, confidence %d%%). %s", c.Signal, *c.Score, c.Confidence, c.Interpretation)
	}

	if missing := r.UnavailableFamilies(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = string(f)
		}
		fmt.Fprintf(&b, " Not enough history for %s.", strings.Join(names, ", "))
	}
	return b.String()
}
