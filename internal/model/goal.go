package model

import "time"

// Goal is a yearly savings goal. There is at most one per (username, year);
// the storage layer enforces the uniqueness, callers enforce TargetAmount > 0
// at creation.
//
// Invariant: 0 <= CurrentAmount <= TargetAmount. CurrentAmount is only ever
// mutated through goal.Tracker.UpdateProgress, which clamps.
type Goal struct {
	CreatedAt     time.Time
	Username      string
	TargetAmount  float64
	CurrentAmount float64
	Year          int
}

// Remaining returns how much is still needed to reach the target.
func (g *Goal) Remaining() float64 {
	return g.TargetAmount - g.CurrentAmount
}

// Percentage returns progress toward the target as a value in [0, 100].
func (g *Goal) Percentage() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return g.CurrentAmount / g.TargetAmount * 100
}

// Reached reports whether the goal has been fully funded.
func (g *Goal) Reached() bool {
	return g.CurrentAmount >= g.TargetAmount
}
