package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/kabutey/campuscent/internal/common"
	"github.com/kabutey/campuscent/internal/model"
)

// CreateUser inserts a new user. A taken username is reported as
// common.ErrDuplicateEntry.
func (s *SQLiteStorage) CreateUser(ctx context.Context, user *model.User) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user", ErrNilParameter)
	}
	if err := validateString(user.Username, "user.Username"); err != nil {
		return err
	}
	if err := validateString(user.PasswordHash, "user.PasswordHash"); err != nil {
		return err
	}

	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)`,
		user.Username, user.PasswordHash, createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username %q", common.ErrDuplicateEntry, user.Username)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	slog.Debug("user created", "username", user.Username)
	return nil
}

// GetUser returns the user with the given username, or nil when absent.
func (s *SQLiteStorage) GetUser(ctx context.Context, username string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(username, "username"); err != nil {
		return nil, err
	}

	var user model.User
	err := s.db.QueryRowContext(ctx, `
		SELECT username, password_hash, created_at
		FROM users
		WHERE username = ?`,
		username).Scan(&user.Username, &user.PasswordHash, &user.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// isUniqueViolation reports whether the error is a SQLite unique or primary
// key constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
