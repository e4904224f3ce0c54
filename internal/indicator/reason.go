package indicator

import (
	"errors"
	"math"

	"TrendSentinel/internal/calculator"
	"TrendSentinel/internal/model"
)

func reasonOf(err error) string {
	var ide *calculator.InsufficientDataError
	if errors.As(err, &ide) {
		return ide.Error()
	}
	return err.Error()
}

func classifyZone(v, overbought, oversold float64) model.ZoneSignal {
	switch {
	case v > overbought:
		return model.ZoneOverbought
	case v < oversold:
		return model.ZoneOversold
	default:
		return model.ZoneNeutral
	}
}

func pctGap(short, long float64) float64 {
	if long == 0 {
		return 0
	}
	return (short - long) / math.Abs(long) * 100
}
