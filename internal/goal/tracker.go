// Package goal owns yearly savings goals: one per user per year, progress
// clamped between zero and the target, every change persisted before it is
// applied in memory.
package goal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kabutey/campuscent/internal/common"
	"github.com/kabutey/campuscent/internal/model"
	"github.com/kabutey/campuscent/internal/service"
)

// Tracker manages savings goal lifecycle and progress.
type Tracker struct {
	store service.Storage
}

// NewTracker creates a goal tracker backed by the given store.
func NewTracker(store service.Storage) *Tracker {
	return &Tracker{store: store}
}

// ProgressUpdate reports the outcome of an UpdateProgress call.
type ProgressUpdate struct {
	// NewAmount is the clamped amount now saved toward the goal.
	NewAmount float64
	// ReachedNow is true only on the call that first hits the target.
	// Deposits after the goal is reached are absorbed at the ceiling
	// without re-announcing.
	ReachedNow bool
}

// Create registers a new savings goal for the user and year. The target must
// be positive and the user may hold at most one goal per year.
func (t *Tracker) Create(ctx context.Context, username string, year int, target float64) (*model.Goal, error) {
	if target <= 0 {
		return nil, fmt.Errorf("%w: target must be positive, got %.2f", model.ErrInvalidAmount, target)
	}

	existing, err := t.store.GetGoal(ctx, username, year)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing goal: %w", err)
	}
	if existing != nil {
		return nil, common.ErrDuplicateGoal
	}

	g := &model.Goal{
		Username:     username,
		Year:         year,
		TargetAmount: target,
		CreatedAt:    time.Now(),
	}
	if err := t.store.CreateGoal(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to save goal: %w", err)
	}

	slog.Info("savings goal created", "username", username, "year", year, "target", target)
	return g, nil
}

// Current returns the user's goal for the given year, or nil when none is
// set. All goal lookups go through here so reconciliation has one source of
// truth.
func (t *Tracker) Current(ctx context.Context, username string, year int) (*model.Goal, error) {
	return t.store.GetGoal(ctx, username, year)
}

// UpdateProgress adjusts the amount saved toward the goal by delta: positive
// for deposits, negative for withdrawals. The result is clamped to
// [0, target]. The store is updated first; the in-memory goal is only
// mutated once the store has acknowledged, so a persistence failure leaves
// the goal exactly as it was.
func (t *Tracker) UpdateProgress(ctx context.Context, g *model.Goal, delta float64) (ProgressUpdate, error) {
	clamped := g.CurrentAmount + delta
	if clamped < 0 {
		clamped = 0
	} else if clamped > g.TargetAmount {
		clamped = g.TargetAmount
	}

	wasReached := g.Reached()

	if err := t.store.UpdateGoalProgress(ctx, g.Username, g.Year, clamped); err != nil {
		return ProgressUpdate{}, fmt.Errorf("failed to persist goal progress: %w", err)
	}
	g.CurrentAmount = clamped

	update := ProgressUpdate{
		NewAmount:  clamped,
		ReachedNow: !wasReached && g.Reached(),
	}

	slog.Debug("goal progress updated",
		"username", g.Username,
		"year", g.Year,
		"delta", delta,
		"current", clamped)

	return update, nil
}
