package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kabutey/campuscent/internal/common"
	"github.com/kabutey/campuscent/internal/model"
)

// CreateGoal inserts a new savings goal. A second goal for the same
// (username, year) pair is reported as common.ErrDuplicateGoal.
func (s *SQLiteStorage) CreateGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoal(goal); err != nil {
		return err
	}

	createdAt := goal.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (username, target_amount, current_amount, year, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		goal.Username, goal.TargetAmount, goal.CurrentAmount, goal.Year, createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s/%d", common.ErrDuplicateGoal, goal.Username, goal.Year)
		}
		return fmt.Errorf("failed to insert goal: %w", err)
	}

	slog.Debug("goal created",
		"username", goal.Username,
		"year", goal.Year,
		"target", goal.TargetAmount)
	return nil
}

// GetGoal returns the user's goal for the given year, or nil when absent.
func (s *SQLiteStorage) GetGoal(ctx context.Context, username string, year int) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(username, "username"); err != nil {
		return nil, err
	}

	var goal model.Goal
	err := s.db.QueryRowContext(ctx, `
		SELECT username, target_amount, current_amount, year, created_at
		FROM goals
		WHERE username = ? AND year = ?`,
		username, year).Scan(
		&goal.Username, &goal.TargetAmount, &goal.CurrentAmount, &goal.Year, &goal.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query goal: %w", err)
	}

	return &goal, nil
}

// UpdateGoalProgress sets the saved amount for the user's goal of the given
// year. The caller is responsible for clamping; the store only persists.
func (s *SQLiteStorage) UpdateGoalProgress(ctx context.Context, username string, year int, currentAmount float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(username, "username"); err != nil {
		return err
	}
	if currentAmount < 0 {
		return fmt.Errorf("%w: current amount cannot be negative", model.ErrInvalidAmount)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE goals
		SET current_amount = ?
		WHERE username = ? AND year = ?`,
		currentAmount, username, year)
	if err != nil {
		return fmt.Errorf("failed to update goal progress: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: goal %s/%d", common.ErrNotFound, username, year)
	}

	return nil
}

// ListGoals returns every goal for the user, newest year first.
func (s *SQLiteStorage) ListGoals(ctx context.Context, username string) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(username, "username"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT username, target_amount, current_amount, year, created_at
		FROM goals
		WHERE username = ?
		ORDER BY year DESC`,
		username)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		var goal model.Goal
		if err := rows.Scan(&goal.Username, &goal.TargetAmount, &goal.CurrentAmount, &goal.Year, &goal.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	return goals, nil
}
