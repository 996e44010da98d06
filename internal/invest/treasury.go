// Package invest computes one-shot treasury bill return projections using a
// fixed rate table keyed by term length.
package invest

import (
	"errors"
	"fmt"
)

// ErrInvalidTerm is returned for a duration outside the supported set.
var ErrInvalidTerm = errors.New("invalid term: use 91, 182 or 364 days")

// Supported treasury bill terms, in days.
const (
	Term91  = 91
	Term182 = 182
	Term364 = 364
)

// Annual percentage rates per term.
var rates = map[int]float64{
	Term91:  26.8293,
	Term182: 27.7876,
	Term364: 29.2178,
}

// Terms returns the supported term lengths in ascending order.
func Terms() []int {
	return []int{Term91, Term182, Term364}
}

// RateForTerm returns the annual percentage rate for a treasury bill term.
// Only the enumerated terms are permitted.
func RateForTerm(days int) (float64, error) {
	rate, ok := rates[days]
	if !ok {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidTerm, days)
	}
	return rate, nil
}

// ProjectedReturn computes the simple-interest maturity value of a principal
// held for the given number of days at an annual percentage rate.
func ProjectedReturn(principal, rate float64, days int) float64 {
	return principal * (1 + rate/100*float64(days)/365)
}
