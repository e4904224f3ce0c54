package strategy

import (
	"testing"

	"TrendSentinel/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trendReading(tr model.Trend, s model.TrendStrength) model.TrendResult {
	return model.TrendResult{Availability: model.Ready(), Trend: tr, Strength: s, GapPct: model.Float(1)}
}

func momentumReading(rsi float64, zone model.ZoneSignal) model.MomentumResult {
	return model.MomentumResult{
		Availability: model.Ready(),
		RSI:          model.RSIResult{Availability: model.Ready(), Value: model.Float(rsi), Signal: zone},
		Stochastic:   model.StochasticResult{Availability: model.Unavailable("short")},
	}
}

func withStochastic(m model.MomentumResult, k float64, zone model.ZoneSignal) model.MomentumResult {
	m.Stochastic = model.StochasticResult{Availability: model.Ready(), K: model.Float(k), D: model.Float(k), Signal: zone}
	return m
}

func macdReading(c model.Crossover, hist float64) model.MACDResult {
	return model.MACDResult{Availability: model.Ready(), Histogram: model.Float(hist), Crossover: c}
}

func bandReading(p model.BandPosition) model.BollingerResult {
	return model.BollingerResult{Availability: model.Ready(), Position: p}
}

func unavailable() *Readings {
	return &Readings{
		Trend:     model.TrendResult{Availability: model.Unavailable("short")},
		Momentum:  model.MomentumResult{Availability: model.Unavailable("short")},
		MACD:      model.MACDResult{Availability: model.Unavailable("short")},
		Bollinger: model.BollingerResult{Availability: model.Unavailable("short")},
	}
}

func TestEvaluate_AllUnavailableIsInsufficientData(t *testing.T) {
	res, warnings := Evaluate(unavailable(), DefaultScoring())

	assert.False(t, res.Available)
	assert.Nil(t, res.Score)
	assert.Equal(t, model.SignalInsufficientData, res.Signal)
	assert.Zero(t, res.Confidence)
	assert.Empty(t, res.Contributions)
	assert.NotEmpty(t, res.Reason)
	assert.Empty(t, warnings)
}

func TestEvaluate_BullishConfluence(t *testing.T) {
	r := &Readings{
		Trend:     trendReading(model.TrendUp, model.StrengthStrong),
		Momentum:  withStochastic(momentumReading(60, model.ZoneNeutral), 70, model.ZoneNeutral),
		MACD:      macdReading(model.CrossoverBullish, 0.4),
		Bollinger: bandReading(model.PositionUpperHalf),
	}
	res, _ := Evaluate(r, DefaultScoring())

	require.True(t, res.Available)
	require.NotNil(t, res.Score)
	// 0.30*1 + 0.25*(0.7*0.2+0.3*0.4) + 0.25*1 + 0.20*0
	assert.InDelta(t, 0.615, *res.Score, 1e-9)
	assert.Equal(t, model.SignalStrongBuy, res.Signal)
	assert.Equal(t, 75, res.Confidence)
	assert.Equal(t, "Strongly bullish trend confirmed by rising moving averages and a bullish MACD crossover.", res.Interpretation)
	require.Len(t, res.Contributions, 4)

	var sum float64
	for _, c := range res.Contributions {
		sum += c.Weighted
	}
	assert.InDelta(t, *res.Score, sum, 1e-12)
}

func TestEvaluate_RenormalizesOverAvailableFamilies(t *testing.T) {
	r := unavailable()
	r.Trend = trendReading(model.TrendUp, model.StrengthModerate)

	res, _ := Evaluate(r, DefaultScoring())

	require.NotNil(t, res.Score)
	assert.InDelta(t, 0.75, *res.Score, 1e-12)
	assert.Equal(t, model.SignalStrongBuy, res.Signal)
	assert.Equal(t, 100, res.Confidence)
	require.Len(t, res.Contributions, 1)
	assert.InDelta(t, 1.0, res.Contributions[0].Weight, 1e-12)
	assert.Equal(t, "Strongly bullish trend driven by rising moving averages.", res.Interpretation)
}

func TestEvaluate_BearishWithDissent(t *testing.T) {
	r := &Readings{
		Trend:     trendReading(model.TrendDown, model.StrengthWeak),
		Momentum:  momentumReading(20, model.ZoneOversold),
		MACD:      macdReading(model.CrossoverBearish, -0.2),
		Bollinger: bandReading(model.PositionBelowLower),
	}
	res, _ := Evaluate(r, DefaultScoring())

	require.NotNil(t, res.Score)
	// 0.30*-0.5 + 0.25*(-0.6*0.5) + 0.25*-1 + 0.20*1
	assert.InDelta(t, -0.275, *res.Score, 1e-9)
	assert.Equal(t, model.SignalSell, res.Signal)
	assert.Equal(t, 75, res.Confidence)
	assert.Equal(t, "Bearish MACD momentum confirmed by a bearish MACD crossover and falling moving averages, despite a close below the lower Bollinger Band.", res.Interpretation)
}

func TestEvaluate_MixedHold(t *testing.T) {
	r := unavailable()
	r.Trend = trendReading(model.TrendUp, model.StrengthStrong)
	r.MACD = macdReading(model.CrossoverBearish, -0.1)
	r.Bollinger = bandReading(model.PositionUpperHalf)

	res, _ := Evaluate(r, DefaultScoring())

	require.NotNil(t, res.Score)
	assert.InDelta(t, 0.05/0.75, *res.Score, 1e-9)
	assert.Equal(t, model.SignalHold, res.Signal)
	assert.Equal(t, 33, res.Confidence)
	assert.Equal(t, "Mixed signals: rising moving averages offset by a bearish MACD crossover.", res.Interpretation)
}

func TestEvaluate_FlatMarketIsBalanced(t *testing.T) {
	r := &Readings{
		Trend:     trendReading(model.TrendSideways, model.StrengthWeak),
		Momentum:  withStochastic(momentumReading(50, model.ZoneNeutral), 50, model.ZoneNeutral),
		MACD:      macdReading(model.CrossoverNone, 0),
		Bollinger: model.BollingerResult{Availability: model.Ready(), Position: model.PositionAtMiddle, Degenerate: true},
	}
	res, warnings := Evaluate(r, DefaultScoring())

	require.NotNil(t, res.Score)
	assert.Zero(t, *res.Score)
	assert.Equal(t, model.SignalHold, res.Signal)
	assert.Equal(t, 100, res.Confidence)
	assert.Equal(t, balancedNote+" "+degenerateNote, res.Interpretation)
	assert.Empty(t, warnings)
}

func TestEvaluate_ScoreStaysInRange(t *testing.T) {
	trends := []model.Trend{model.TrendUp, model.TrendDown, model.TrendSideways}
	zones := map[float64]model.ZoneSignal{0: model.ZoneOversold, 50: model.ZoneNeutral, 100: model.ZoneOverbought}
	crosses := []model.Crossover{model.CrossoverBullish, model.CrossoverBearish, model.CrossoverNone}
	positions := []model.BandPosition{model.PositionAboveUpper, model.PositionBelowLower, model.PositionLowerHalf}

	for _, tr := range trends {
		for v, z := range zones {
			for _, c := range crosses {
				for _, p := range positions {
					r := &Readings{
						Trend:     trendReading(tr, model.StrengthStrong),
						Momentum:  withStochastic(momentumReading(v, z), v, z),
						MACD:      macdReading(c, 1),
						Bollinger: bandReading(p),
					}
					res, _ := Evaluate(r, DefaultScoring())
					require.NotNil(t, res.Score)
					assert.GreaterOrEqual(t, *res.Score, -1.0)
					assert.LessOrEqual(t, *res.Score, 1.0)
					assert.True(t, res.Signal.Valid())
					assert.GreaterOrEqual(t, res.Confidence, 0)
					assert.LessOrEqual(t, res.Confidence, 100)
				}
			}
		}
	}
}

func TestEvaluate_RSIWarnings(t *testing.T) {
	r := unavailable()
	r.Momentum = momentumReading(90, model.ZoneOverbought)
	_, warnings := Evaluate(r, DefaultScoring())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "partial profits")

	r.Momentum = momentumReading(10, model.ZoneOversold)
	_, warnings = Evaluate(r, DefaultScoring())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "capitulation")

	r.Momentum = momentumReading(55, model.ZoneNeutral)
	_, warnings = Evaluate(r, DefaultScoring())
	assert.NotNil(t, warnings)
	assert.Empty(t, warnings)
}

func TestOscillatorTerm_DampsExtremes(t *testing.T) {
	assert.InDelta(t, 0.38, oscillatorTerm(69, model.ZoneNeutral, 0.5), 1e-12)
	assert.InDelta(t, 0.30, oscillatorTerm(80, model.ZoneOverbought, 0.5), 1e-12)
	assert.InDelta(t, -0.30, oscillatorTerm(20, model.ZoneOversold, 0.5), 1e-12)
	assert.InDelta(t, 0.60, oscillatorTerm(80, model.ZoneOverbought, 1), 1e-12)
}

func TestScoreMACD_NoCrossoverFollowsHistogram(t *testing.T) {
	raw, _ := scoreMACD(macdReading(model.CrossoverNone, 0.3))
	assert.Equal(t, 0.5, raw)
	raw, _ = scoreMACD(macdReading(model.CrossoverNone, -0.3))
	assert.Equal(t, -0.5, raw)
	raw, _ = scoreMACD(macdReading(model.CrossoverNone, 0))
	assert.Equal(t, 0.0, raw)
}

func TestMapSignal(t *testing.T) {
	th := DefaultScoring().Thresholds
	tests := []struct {
		score float64
		want  model.CompositeSignal
	}{
		{1, model.SignalStrongBuy},
		{0.60, model.SignalStrongBuy},
		{0.59, model.SignalBuy},
		{0.20, model.SignalBuy},
		{0.19, model.SignalHold},
		{0, model.SignalHold},
		{-0.19, model.SignalHold},
		{-0.20, model.SignalSell},
		{-0.59, model.SignalSell},
		{-0.60, model.SignalStrongSell},
		{-1, model.SignalStrongSell},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mapSignal(tt.score, th), "score %.2f", tt.score)
	}
}

func TestScoring_Validate(t *testing.T) {
	require.NoError(t, DefaultScoring().Validate())

	tests := []struct {
		name   string
		mutate func(*Scoring)
		want   string
	}{
		{"negative weight", func(s *Scoring) { s.Weights.MACD = -0.1 }, "non-negative"},
		{"zero weights", func(s *Scoring) { s.Weights = Weights{} }, "positive value"},
		{"threshold order", func(s *Scoring) { s.Thresholds.Buy = 0.7 }, "thresholds"},
		{"sell above zero", func(s *Scoring) { s.Thresholds.Sell = 0.1 }, "thresholds"},
		{"blend", func(s *Scoring) { s.StochasticBlend = 1.5 }, "stochastic_blend"},
		{"damping", func(s *Scoring) { s.ExtremeDamping = -1 }, "extreme_damping"},
		{"band", func(s *Scoring) { s.AgreementBand = 1 }, "agreement_band"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultScoring()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestJoinPhrases(t *testing.T) {
	assert.Equal(t, "", joinPhrases(nil))
	assert.Equal(t, "a", joinPhrases([]string{"a"}))
	assert.Equal(t, "a and b", joinPhrases([]string{"a", "b"}))
	assert.Equal(t, "a, b and c", joinPhrases([]string{"a", "b", "c"}))
}
