package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kabutey/campuscent/internal/model"
)

// SaveInvestment records a treasury bill projection.
func (s *SQLiteStorage) SaveInvestment(ctx context.Context, investment *model.Investment) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if investment == nil {
		return fmt.Errorf("%w: investment", ErrNilParameter)
	}
	if err := validateString(investment.Username, "investment.Username"); err != nil {
		return err
	}
	if investment.Principal <= 0 {
		return fmt.Errorf("%w: principal must be positive", model.ErrInvalidAmount)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO investments (username, principal, date, term_days, rate, projected_return)
		VALUES (?, ?, ?, ?, ?, ?)`,
		investment.Username, investment.Principal,
		investment.Date.Format(entryDateFormat),
		investment.TermDays, investment.Rate, investment.ProjectedReturn)
	if err != nil {
		return fmt.Errorf("failed to insert investment: %w", err)
	}

	slog.Debug("investment recorded",
		"username", investment.Username,
		"principal", investment.Principal,
		"term_days", investment.TermDays)
	return nil
}

// ListInvestments returns every recorded investment for the user, oldest
// first.
func (s *SQLiteStorage) ListInvestments(ctx context.Context, username string) ([]model.Investment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(username, "username"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT username, principal, date, term_days, rate, projected_return
		FROM investments
		WHERE username = ?
		ORDER BY id`,
		username)
	if err != nil {
		return nil, fmt.Errorf("failed to query investments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var investments []model.Investment
	for rows.Next() {
		var (
			inv     model.Investment
			rawDate string
		)
		if err := rows.Scan(&inv.Username, &inv.Principal, &rawDate, &inv.TermDays, &inv.Rate, &inv.ProjectedReturn); err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}

		inv.Date, err = time.Parse(entryDateFormat, rawDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse investment date %q: %w", rawDate, err)
		}
		investments = append(investments, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investments: %w", err)
	}

	return investments, nil
}
