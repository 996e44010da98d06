package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 0.001

// June 2024 has 30 days.
func juneDay(day int) time.Time {
	return time.Date(2024, time.June, day, 10, 30, 0, 0, time.UTC)
}

func TestLimit_Initialize(t *testing.T) {
	l := NewLimit()
	l.Initialize(1000, juneDay(1))

	st := l.Status()
	assert.InDelta(t, 1000, st.TotalLimit, delta)
	assert.Equal(t, 30, st.TotalDays)
	assert.Equal(t, 1, st.CurrentDay)
	assert.InDelta(t, 1000.0/30.0, st.DailyLimit, delta)
	assert.InDelta(t, 0, st.Spent, delta)
	assert.InDelta(t, 0, st.Carryover, delta)
	assert.True(t, l.Initialized())
}

func TestLimit_InitializeDiscardsPriorState(t *testing.T) {
	l := NewLimit()
	l.Initialize(1000, juneDay(1))
	l.RecordSpend(400, juneDay(1))

	l.Initialize(600, juneDay(15))

	st := l.Status()
	assert.InDelta(t, 0, st.Spent, delta)
	assert.InDelta(t, 0, st.DailySpent, delta)
	assert.InDelta(t, 0, st.Carryover, delta)
	assert.Equal(t, 15, st.CurrentDay)
	assert.InDelta(t, 600.0/30.0, st.DailyLimit, delta)
}

func TestLimit_OverspendCarryoverScenario(t *testing.T) {
	l := NewLimit()
	l.Initialize(1000, juneDay(1))
	require.InDelta(t, 33.33, l.Status().DailyLimit, 0.01)

	// Day 1: spend 40 against a 33.33 limit.
	res := l.RecordSpend(40, juneDay(1))
	assert.True(t, res.DailyExceeded)
	assert.InDelta(t, 6.67, res.DailyOverBy, 0.01)
	assert.False(t, res.MonthlyExceeded)
	assert.InDelta(t, 40, l.Spent(), delta)

	// Day 2: the rollover charges yesterday's overspend against today.
	res = l.RecordSpend(10, juneDay(2))
	st := l.Status()
	assert.InDelta(t, -6.67, st.Carryover, 0.01)
	assert.InDelta(t, 10, st.DailySpent, delta)
	assert.InDelta(t, 26.67, st.DailyLimit+st.Carryover, 0.01)
	assert.InDelta(t, 16.67, l.RemainingToday(), 0.01)
	assert.False(t, res.DailyExceeded)
	assert.Equal(t, 2, st.CurrentDay)
}

func TestLimit_ExactSpendYieldsZeroCarryover(t *testing.T) {
	l := NewLimit()
	l.Initialize(300, juneDay(1)) // 10/day

	l.RecordSpend(10, juneDay(1))
	l.RecordSpend(1, juneDay(2))

	assert.InDelta(t, 0, l.Status().Carryover, delta)
}

func TestLimit_UnderspendRollsForward(t *testing.T) {
	l := NewLimit()
	l.Initialize(300, juneDay(1)) // 10/day

	l.RecordSpend(4, juneDay(1))
	l.RecordSpend(1, juneDay(2))

	st := l.Status()
	assert.InDelta(t, 6, st.Carryover, delta)
	assert.InDelta(t, 15, st.DailyLimit+st.Carryover, delta)
	assert.InDelta(t, 14, l.RemainingToday(), delta)
}

func TestLimit_RecordSpendIsAdditive(t *testing.T) {
	split := NewLimit()
	split.Initialize(1000, juneDay(5))
	split.RecordSpend(12.50, juneDay(5))
	split.RecordSpend(7.25, juneDay(5))

	once := NewLimit()
	once.Initialize(1000, juneDay(5))
	once.RecordSpend(19.75, juneDay(5))

	assert.InDelta(t, once.Spent(), split.Spent(), delta)
	assert.InDelta(t, once.Status().DailySpent, split.Status().DailySpent, delta)
}

func TestLimit_RecomputeUsesRemainingDays(t *testing.T) {
	l := NewLimit()
	l.Initialize(1000, juneDay(1))
	l.RecordSpend(40, juneDay(1))

	// Mid-month raise: 16 days left including today.
	l.Recompute(1600, juneDay(15))

	st := l.Status()
	assert.InDelta(t, 1600, st.TotalLimit, delta)
	assert.InDelta(t, 100, st.DailyLimit, delta)
	// Spend history is untouched.
	assert.InDelta(t, 40, st.Spent, delta)
}

func TestLimit_RecomputeOnLastDay(t *testing.T) {
	l := NewLimit()
	l.Initialize(900, juneDay(30))

	l.Recompute(500, juneDay(30))
	assert.InDelta(t, 500, l.Status().DailyLimit, delta)
}

func TestLimit_MonthlyOverspendReported(t *testing.T) {
	l := NewLimit()
	l.Initialize(100, juneDay(1))

	res := l.RecordSpend(130, juneDay(1))
	assert.True(t, res.MonthlyExceeded)
	assert.InDelta(t, 30, res.MonthlyOverBy, delta)
	assert.True(t, l.ExceededMonthlyLimit())
	assert.InDelta(t, 30, l.Overspent(), delta)
}

func TestLimit_AdjustForCoverage(t *testing.T) {
	l := NewLimit()
	l.Initialize(100, juneDay(1))
	l.RecordSpend(120, juneDay(1))

	l.AdjustForCoverage(20)

	st := l.Status()
	assert.InDelta(t, 100, st.Spent, delta)
	assert.False(t, l.ExceededMonthlyLimit())
	// The daily view keeps the overspend: coverage only corrects the
	// monthly cumulative figure.
	assert.InDelta(t, 120, st.DailySpent, delta)
}

func TestLimit_AdjustForCoverageFloorsAtZero(t *testing.T) {
	l := NewLimit()
	l.Initialize(100, juneDay(1))
	l.RecordSpend(10, juneDay(1))

	l.AdjustForCoverage(50)
	assert.InDelta(t, 0, l.Spent(), delta)
}

func TestLimit_MonthEndSignal(t *testing.T) {
	l := NewLimit()
	l.Initialize(300, juneDay(30))
	l.RecordSpend(5, juneDay(30))

	// Crossing past the last day of June signals month end instead of
	// advancing the cursor.
	res := l.RecordSpend(5, time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC))
	assert.True(t, res.MonthEnded)
	assert.Equal(t, 30, l.Status().CurrentDay)
}

func TestLimit_MultiDayGapRollsSingleDay(t *testing.T) {
	l := NewLimit()
	l.Initialize(300, juneDay(1)) // 10/day

	l.RecordSpend(2, juneDay(1))
	// Three calendar days pass, but the engine models one elapsed day:
	// carryover is a single day's remainder, not three days' worth.
	l.RecordSpend(1, juneDay(4))

	st := l.Status()
	assert.InDelta(t, 8, st.Carryover, delta)
	assert.Equal(t, 2, st.CurrentDay)
}
