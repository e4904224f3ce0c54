package model

// Trend is the direction derived from moving-average alignment.
type Trend string

const (
	TrendUp       Trend = "UPTREND"
	TrendDown     Trend = "DOWNTREND"
	TrendSideways Trend = "SIDEWAYS"
)

func (t Trend) Valid() bool {
	switch t {
	case TrendUp, TrendDown, TrendSideways:
		return true
	}
	return false
}

// TrendStrength buckets the percentage gap between short and long averages.
type TrendStrength string

const (
	StrengthWeak     TrendStrength = "WEAK"
	StrengthModerate TrendStrength = "MODERATE"
	StrengthStrong   TrendStrength = "STRONG"
)

func (s TrendStrength) Valid() bool {
	switch s {
	case StrengthWeak, StrengthModerate, StrengthStrong:
		return true
	}
	return false
}

// ZoneSignal is the label shared by bounded oscillators and bands.
type ZoneSignal string

const (
	ZoneOverbought ZoneSignal = "OVERBOUGHT"
	ZoneOversold   ZoneSignal = "OVERSOLD"
	ZoneNeutral    ZoneSignal = "NEUTRAL"
)

func (z ZoneSignal) Valid() bool {
	switch z {
	case ZoneOverbought, ZoneOversold, ZoneNeutral:
		return true
	}
	return false
}

// Extreme reports whether the zone is overbought or oversold.
func (z ZoneSignal) Extreme() bool {
	return z == ZoneOverbought || z == ZoneOversold
}

// Crossover classifies a MACD histogram sign change.
type Crossover string

const (
	CrossoverBullish Crossover = "BULLISH"
	CrossoverBearish Crossover = "BEARISH"
	CrossoverNone    Crossover = "NONE"
)

func (c Crossover) Valid() bool {
	switch c {
	case CrossoverBullish, CrossoverBearish, CrossoverNone:
		return true
	}
	return false
}

// BandPosition locates the latest close relative to the Bollinger Bands.
type BandPosition string

const (
	PositionAboveUpper BandPosition = "ABOVE_UPPER"
	PositionUpperHalf  BandPosition = "UPPER_HALF"
	PositionAtMiddle   BandPosition = "AT_MIDDLE"
	PositionLowerHalf  BandPosition = "LOWER_HALF"
	PositionBelowLower BandPosition = "BELOW_LOWER"
)

func (p BandPosition) Valid() bool {
	switch p {
	case PositionAboveUpper, PositionUpperHalf, PositionAtMiddle, PositionLowerHalf, PositionBelowLower:
		return true
	}
	return false
}

// CompositeSignal is the fused trading decision.
type CompositeSignal string

const (
	SignalStrongBuy        CompositeSignal = "STRONG BUY"
	SignalBuy              CompositeSignal = "BUY"
	SignalHold             CompositeSignal = "HOLD"
	SignalSell             CompositeSignal = "SELL"
	SignalStrongSell       CompositeSignal = "STRONG SELL"
	SignalInsufficientData CompositeSignal = "INSUFFICIENT DATA"
)

func (s CompositeSignal) Valid() bool {
	switch s {
	case SignalStrongBuy, SignalBuy, SignalHold, SignalSell, SignalStrongSell, SignalInsufficientData:
		return true
	}
	return false
}

// Direction returns +1 for buy signals, -1 for sell signals and 0 otherwise.
func (s CompositeSignal) Direction() int {
	switch s {
	case SignalStrongBuy, SignalBuy:
		return 1
	case SignalStrongSell, SignalSell:
		return -1
	}
	return 0
}

// Family groups indicators that feed one composite contribution.
type Family string

const (
	FamilyTrend      Family = "trend"
	FamilyMomentum   Family = "momentum"
	FamilyMACD       Family = "macd"
	FamilyVolatility Family = "volatility"
)

// Families lists the indicator families in report order.
var Families = []Family{FamilyTrend, FamilyMomentum, FamilyMACD, FamilyVolatility}
