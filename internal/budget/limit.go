// Package budget implements the dynamic daily spending limit engine. A Limit
// converts a monthly spending allocation into a per-day budget, rolls unspent
// (or overspent) amounts into the next day's effective limit, and reports
// when the monthly allocation has been exceeded.
//
// A Limit is an owned, single-writer state object: one per user session, all
// mutation through its methods. It lives in memory only; no day-by-day
// history is persisted.
package budget

import "time"

// Limit tracks a monthly spending allocation and the derived daily budget.
// The zero value is unusable; call Initialize once income allocation begins.
type Limit struct {
	currentDate time.Time
	totalLimit  float64
	dailyLimit  float64
	spent       float64
	dailySpent  float64
	carryover   float64
	totalDays   int
	currentDay  int
	monthEnded  bool
	initialized bool
}

// SpendResult reports the outcome of a single RecordSpend call.
type SpendResult struct {
	// DailyOverBy is how far today's spending exceeds the effective daily
	// limit. Zero when DailyExceeded is false.
	DailyOverBy float64
	// MonthlyOverBy is how far cumulative spending exceeds the monthly
	// allocation. Zero when MonthlyExceeded is false.
	MonthlyOverBy   float64
	DailyExceeded   bool
	MonthlyExceeded bool
	// MonthEnded is set once the day cursor has reached the last day of the
	// month. The engine does not roll into a new month on its own; it must
	// be re-initialized.
	MonthEnded bool
}

// Status is a read-only snapshot of the engine state.
type Status struct {
	TotalLimit       float64
	Spent            float64
	DailySpent       float64
	DailyLimit       float64
	Carryover        float64
	RemainingToday   float64
	RemainingMonthly float64
	TotalDays        int
	CurrentDay       int
	MonthEnded       bool
}

// NewLimit returns an empty, uninitialized limit engine.
func NewLimit() *Limit {
	return &Limit{}
}

// Initialized reports whether Initialize has been called for the current
// allocation cycle.
func (l *Limit) Initialized() bool {
	return l.initialized
}

// Initialize starts a new allocation cycle: the monthly allocation is spread
// evenly across every day of today's month, and all accumulated state
// (spent, daily spent, carryover) is discarded.
func (l *Limit) Initialize(monthlyAllocation float64, today time.Time) {
	l.totalLimit = monthlyAllocation
	l.totalDays = daysInMonth(today)
	l.dailyLimit = monthlyAllocation / float64(l.totalDays)
	l.spent = 0
	l.dailySpent = 0
	l.carryover = 0
	l.currentDay = today.Day()
	l.currentDate = dateOnly(today)
	l.monthEnded = false
	l.initialized = true
}

// Recompute replaces the monthly allocation mid-cycle and spreads it across
// only the remaining days of the month. Spent, daily spent and carryover are
// untouched, so the new daily limit takes effect without rewriting history.
// On or after the last day of the month a single remaining day is assumed.
func (l *Limit) Recompute(newTotalLimit float64, today time.Time) {
	l.totalLimit = newTotalLimit

	remaining := l.totalDays - today.Day() + 1
	if remaining < 1 {
		remaining = 1
	}
	l.dailyLimit = newTotalLimit / float64(remaining)
}

// RecordSpend adds a positive amount to today's and the month's running
// totals, rolling the day forward first if the calendar date has changed
// since the last call. Amount validation happens at the boundary; the engine
// assumes amount > 0.
//
// Only a single-day rollover is modeled per call: if the engine has not been
// touched for several days, the gap is treated as one elapsed day. Carryover
// math for multi-day gaps is a known limitation, kept as-is because
// generalizing it would change the observable carryover sequence.
func (l *Limit) RecordSpend(amount float64, today time.Time) SpendResult {
	today = dateOnly(today)
	if !l.currentDate.IsZero() && !today.Equal(l.currentDate) {
		l.advanceDay()
		l.currentDate = today
	}

	l.dailySpent += amount
	l.spent += amount

	var res SpendResult
	effective := l.dailyLimit + l.carryover
	if l.dailySpent > effective {
		res.DailyExceeded = true
		res.DailyOverBy = l.dailySpent - effective
	}
	if l.spent > l.totalLimit {
		res.MonthlyExceeded = true
		res.MonthlyOverBy = l.spent - l.totalLimit
	}
	res.MonthEnded = l.monthEnded

	return res
}

// advanceDay closes out the current day: whatever is left of the effective
// daily limit becomes tomorrow's carryover (negative when overspent), and
// the daily counter resets. The day cursor stops at the last day of the
// month; a new month requires re-initialization.
func (l *Limit) advanceDay() {
	effective := l.dailyLimit + l.carryover
	l.carryover = effective - l.dailySpent
	l.dailySpent = 0

	if l.currentDay < l.totalDays {
		l.currentDay++
	} else {
		l.monthEnded = true
	}
}

// AdjustForCoverage reduces the cumulative monthly spend after a savings
// withdrawal has covered an overspend, flooring at zero. Today's dailySpent
// and carryover are deliberately left alone: the daily view keeps the
// overspend on record even though the monthly figure is corrected.
func (l *Limit) AdjustForCoverage(amount float64) {
	l.spent -= amount
	if l.spent < 0 {
		l.spent = 0
	}
}

// ExceededMonthlyLimit reports whether cumulative spending has passed the
// monthly allocation.
func (l *Limit) ExceededMonthlyLimit() bool {
	return l.spent > l.totalLimit
}

// RemainingToday returns the budget still available today: the base daily
// limit adjusted by carryover, less what has already been spent today.
func (l *Limit) RemainingToday() float64 {
	return l.dailyLimit + l.carryover - l.dailySpent
}

// TotalLimit returns the current monthly spending allocation.
func (l *Limit) TotalLimit() float64 {
	return l.totalLimit
}

// Spent returns cumulative spending for the month.
func (l *Limit) Spent() float64 {
	return l.spent
}

// Overspent returns how far cumulative spending exceeds the allocation, or 0.
func (l *Limit) Overspent() float64 {
	if l.spent <= l.totalLimit {
		return 0
	}
	return l.spent - l.totalLimit
}

// Status returns a snapshot of the engine for display.
func (l *Limit) Status() Status {
	return Status{
		TotalLimit:       l.totalLimit,
		Spent:            l.spent,
		DailySpent:       l.dailySpent,
		DailyLimit:       l.dailyLimit,
		Carryover:        l.carryover,
		RemainingToday:   l.RemainingToday(),
		RemainingMonthly: l.totalLimit - l.spent,
		TotalDays:        l.totalDays,
		CurrentDay:       l.currentDay,
		MonthEnded:       l.monthEnded,
	}
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
