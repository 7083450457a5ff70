package sim

import (
	"errors"
	"fmt"
)

var (
	ErrNoTrials        = errors.New("at least one trial is required")
	ErrInvalidHandSize = errors.New("hand size must allow at least one attack")
	ErrInvalidBounds   = errors.New("base value bounds are empty")
)

// DegenerateBaselineError is returned when the mean base value is zero, so
// no relative differential exists.
type DegenerateBaselineError struct {
	Trials       int
	MeanResolved float64
}

func (e *DegenerateBaselineError) Error() string {
	return fmt.Sprintf("mean base value over %d trials is zero (mean resolved %.4f)", e.Trials, e.MeanResolved)
}
