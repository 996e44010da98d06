package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kabutey/campuscent/internal/model"
)

// entryDateFormat is how entry dates are stored; only the calendar day
// matters to the application.
const entryDateFormat = "2006-01-02"

// AppendEntry writes a single financial entry for the user. Entries are
// immutable once written.
func (s *SQLiteStorage) AppendEntry(ctx context.Context, username string, entry model.Entry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(username, "username"); err != nil {
		return err
	}
	if err := validateEntry(&entry); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (username, amount, date, direction, category)
		VALUES (?, ?, ?, ?, ?)`,
		username, entry.Amount, entry.Date.Format(entryDateFormat),
		string(entry.Direction), entry.Category)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	slog.Debug("entry appended",
		"username", username,
		"direction", entry.Direction,
		"category", entry.Category,
		"amount", entry.Amount)
	return nil
}

// ListEntries returns every financial entry for the user. Rows with a
// category that no longer parses are skipped rather than failing the whole
// read.
func (s *SQLiteStorage) ListEntries(ctx context.Context, username string) ([]model.Entry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(username, "username"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT amount, date, direction, category
		FROM entries
		WHERE username = ?
		ORDER BY id`,
		username)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.Entry
	for rows.Next() {
		var (
			entry   model.Entry
			rawDate string
		)
		if err := rows.Scan(&entry.Amount, &rawDate, &entry.Direction, &entry.Category); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}

		entry.Date, err = time.Parse(entryDateFormat, rawDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse entry date %q: %w", rawDate, err)
		}

		if err := entry.Validate(); err != nil {
			slog.Warn("skipping invalid stored entry", "username", username, "error", err)
			continue
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}

	return entries, nil
}
