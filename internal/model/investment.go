package model

import "time"

// Investment records a one-shot treasury bill projection made when income is
// split between savings and investment. It is written once and never updated.
type Investment struct {
	Date            time.Time
	Username        string
	Principal       float64
	Rate            float64
	ProjectedReturn float64
	TermDays        int
}
