package model

import "time"

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries holds the daily bars for one instrument, oldest first.
type PriceSeries struct {
	Symbol    string    `json:"symbol"`
	Bars      []OHLCV   `json:"bars"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Len returns the number of bars in the series.
func (s *PriceSeries) Len() int { return len(s.Bars) }

// Closes copies the close prices out of the series.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Highs copies the high prices out of the series.
func (s *PriceSeries) Highs() []float64 {
	highs := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		highs[i] = b.High
	}
	return highs
}

// Lows copies the low prices out of the series.
func (s *PriceSeries) Lows() []float64 {
	lows := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		lows[i] = b.Low
	}
	return lows
}

// Last returns the most recent bar. The series must not be empty.
func (s *PriceSeries) Last() OHLCV {
	return s.Bars[len(s.Bars)-1]
}
