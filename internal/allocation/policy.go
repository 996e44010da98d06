// Package allocation coordinates the 70/30 income split between spending and
// savings, and reconciles monthly overspend against the savings goal. It
// holds no state of its own; it drives the limit engine and the goal tracker.
package allocation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kabutey/campuscent/internal/budget"
	"github.com/kabutey/campuscent/internal/goal"
	"github.com/kabutey/campuscent/internal/invest"
	"github.com/kabutey/campuscent/internal/model"
	"github.com/kabutey/campuscent/internal/service"
)

// Income split ratios: 70% to spending, 30% to savings/investment. The
// savings share can itself be split 70/30 between the goal and a treasury
// bill projection.
const (
	SpendShareRatio = 0.70
	SaveShareRatio  = 0.30
)

// Policy applies the allocation rules for a single user session.
type Policy struct {
	limit *budget.Limit
	goals *goal.Tracker
	store service.Storage
}

// NewPolicy creates an allocation policy over the session's limit engine and
// the goal tracker.
func NewPolicy(limit *budget.Limit, goals *goal.Tracker, store service.Storage) *Policy {
	return &Policy{limit: limit, goals: goals, store: store}
}

// IncomeSplit is the result of dividing an income amount.
type IncomeSplit struct {
	SpendShare float64
	SaveShare  float64
}

// SplitIncome divides an income amount 70/30 into spending and saving shares.
func SplitIncome(amount float64) IncomeSplit {
	return IncomeSplit{
		SpendShare: amount * SpendShareRatio,
		SaveShare:  amount * SaveShareRatio,
	}
}

// AbsorbIncome splits the income and feeds the spending share into the limit
// engine. The first income of a session initializes the engine; later income
// is added on top of the current allocation and spread over the remaining
// days of the month.
func (p *Policy) AbsorbIncome(amount float64, today time.Time) IncomeSplit {
	split := SplitIncome(amount)

	if !p.limit.Initialized() {
		p.limit.Initialize(split.SpendShare, today)
	} else {
		p.limit.Recompute(p.limit.TotalLimit()+split.SpendShare, today)
	}

	slog.Debug("income absorbed",
		"amount", amount,
		"spend_share", split.SpendShare,
		"save_share", split.SaveShare,
		"total_limit", p.limit.TotalLimit())

	return split
}

// DepositResult reports a savings deposit attempt.
type DepositResult struct {
	Goal *model.Goal
	// NoActiveGoal is set when the user has no goal for the year; nothing
	// was deposited.
	NoActiveGoal bool
	// ReachedNow is set when this deposit completed the goal.
	ReachedNow bool
	Deposited  float64
}

// DepositToGoal puts the whole amount toward the user's current-year goal.
// Without an active goal this is a no-op notice, not an error.
func (p *Policy) DepositToGoal(ctx context.Context, username string, year int, amount float64) (DepositResult, error) {
	g, err := p.goals.Current(ctx, username, year)
	if err != nil {
		return DepositResult{}, fmt.Errorf("failed to load goal: %w", err)
	}
	if g == nil {
		return DepositResult{NoActiveGoal: true}, nil
	}

	update, err := p.goals.UpdateProgress(ctx, g, amount)
	if err != nil {
		return DepositResult{}, err
	}

	return DepositResult{
		Goal:       g,
		Deposited:  amount,
		ReachedNow: update.ReachedNow,
	}, nil
}

// SplitSavingsResult reports the nested 70/30 disposition of a save share.
type SplitSavingsResult struct {
	Deposit    DepositResult
	Investment model.Investment
}

// SplitSavings divides the save share again: 70% deposited toward the goal,
// 30% projected into a treasury bill of the given term and recorded. Invalid
// terms are rejected before any state changes.
func (p *Policy) SplitSavings(ctx context.Context, username string, year int, saveShare float64, termDays int, today time.Time) (SplitSavingsResult, error) {
	rate, err := invest.RateForTerm(termDays)
	if err != nil {
		return SplitSavingsResult{}, err
	}

	goalShare := saveShare * SpendShareRatio
	investShare := saveShare * SaveShareRatio

	deposit, err := p.DepositToGoal(ctx, username, year, goalShare)
	if err != nil {
		return SplitSavingsResult{}, err
	}

	investment := model.Investment{
		Username:        username,
		Principal:       investShare,
		Date:            today,
		TermDays:        termDays,
		Rate:            rate,
		ProjectedReturn: invest.ProjectedReturn(investShare, rate, termDays),
	}
	if err := p.store.SaveInvestment(ctx, &investment); err != nil {
		return SplitSavingsResult{}, fmt.Errorf("failed to record investment: %w", err)
	}

	return SplitSavingsResult{Deposit: deposit, Investment: investment}, nil
}

// CoverageOutcome classifies an overspend reconciliation attempt.
type CoverageOutcome int

const (
	// CoverageApplied means the overspend was withdrawn from savings and
	// the monthly spend corrected.
	CoverageApplied CoverageOutcome = iota
	// CoverageNotNeeded means spending is within the monthly allocation.
	CoverageNotNeeded
	// CoverageNoActiveGoal means there is no goal to withdraw from.
	CoverageNoActiveGoal
	// CoverageInsufficientSavings means the goal's remaining savings do not
	// cover the overspend. Nothing was withdrawn; partial coverage is not
	// attempted.
	CoverageInsufficientSavings
)

// CoverageResult reports an overspend reconciliation.
type CoverageResult struct {
	Goal      *model.Goal
	Outcome   CoverageOutcome
	Overspent float64
	// Available is the goal's remaining savings at the time of the attempt.
	Available float64
}

// CoverOverspend withdraws the current monthly overspend from the user's
// savings goal, all-or-nothing. On success the limit engine's cumulative
// spend is reduced by the same amount; today's daily figures are not
// touched, so the daily and monthly views may disagree afterwards.
func (p *Policy) CoverOverspend(ctx context.Context, username string, year int) (CoverageResult, error) {
	overspent := p.limit.Overspent()
	if overspent <= 0 {
		return CoverageResult{Outcome: CoverageNotNeeded}, nil
	}

	g, err := p.goals.Current(ctx, username, year)
	if err != nil {
		return CoverageResult{}, fmt.Errorf("failed to load goal: %w", err)
	}
	if g == nil {
		return CoverageResult{Outcome: CoverageNoActiveGoal, Overspent: overspent}, nil
	}

	if g.Remaining() < overspent {
		return CoverageResult{
			Outcome:   CoverageInsufficientSavings,
			Overspent: overspent,
			Available: g.Remaining(),
			Goal:      g,
		}, nil
	}

	if _, err := p.goals.UpdateProgress(ctx, g, -overspent); err != nil {
		return CoverageResult{}, err
	}
	p.limit.AdjustForCoverage(overspent)

	slog.Info("overspend covered from savings",
		"username", username,
		"amount", overspent,
		"savings_remaining", g.Remaining())

	return CoverageResult{
		Outcome:   CoverageApplied,
		Overspent: overspent,
		Available: g.Remaining(),
		Goal:      g,
	}, nil
}
