package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData is matched by every InsufficientDataError.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrInvalidPeriod is returned for non-positive or inconsistent windows.
	ErrInvalidPeriod = errors.New("period must be positive")
)

// InsufficientDataError reports that a series is shorter than an indicator's minimum window.
type InsufficientDataError struct {
	Indicator string
	Need      int
	Have      int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: need %d bars, have %d", e.Indicator, e.Need, e.Have)
}

func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

func insufficient(indicator string, need, have int) error {
	return &InsufficientDataError{Indicator: indicator, Need: need, Have: have}
}
