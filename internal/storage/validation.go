// Package storage provides the SQLite persistence layer for users, financial
// entries, savings goals and investment records.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kabutey/campuscent/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateEntry validates a financial entry before it is written.
func validateEntry(entry *model.Entry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry", ErrNilParameter)
	}
	return entry.Validate()
}

// validateGoal validates a goal before it is written.
func validateGoal(goal *model.Goal) error {
	if goal == nil {
		return fmt.Errorf("%w: goal", ErrNilParameter)
	}
	if err := validateString(goal.Username, "goal.Username"); err != nil {
		return err
	}
	if goal.TargetAmount <= 0 {
		return fmt.Errorf("%w: goal target must be positive", model.ErrInvalidAmount)
	}
	if goal.CurrentAmount < 0 || goal.CurrentAmount > goal.TargetAmount {
		return fmt.Errorf("goal current amount %.2f outside [0, %.2f]", goal.CurrentAmount, goal.TargetAmount)
	}
	return nil
}
