// Package summary aggregates a user's financial entries into income and
// expense totals with per-category breakdowns.
package summary

import (
	"context"
	"fmt"

	"github.com/kabutey/campuscent/internal/model"
	"github.com/kabutey/campuscent/internal/service"
)

// Report holds aggregate figures over a set of entries. Entry order is
// irrelevant; the report only sums.
type Report struct {
	IncomeByCategory   map[string]float64
	ExpensesByCategory map[string]float64
	TotalIncome        float64
	TotalExpenses      float64
}

// Net returns income minus expenses.
func (r *Report) Net() float64 {
	return r.TotalIncome - r.TotalExpenses
}

// Build aggregates the given entries into a report.
func Build(entries []model.Entry) *Report {
	r := &Report{
		IncomeByCategory:   make(map[string]float64),
		ExpensesByCategory: make(map[string]float64),
	}

	for _, e := range entries {
		switch e.Direction {
		case model.DirectionIncome:
			r.TotalIncome += e.Amount
			r.IncomeByCategory[e.Category] += e.Amount
		case model.DirectionExpense:
			r.TotalExpenses += e.Amount
			r.ExpensesByCategory[e.Category] += e.Amount
		}
	}

	return r
}

// ForUser loads the user's entries from the store and aggregates them.
func ForUser(ctx context.Context, store service.Storage, username string) (*Report, error) {
	entries, err := store.ListEntries(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	return Build(entries), nil
}
