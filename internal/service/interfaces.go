// Package service defines the contracts between the application core and its
// collaborators.
package service

import (
	"context"
	"time"

	"github.com/kabutey/campuscent/internal/model"
)

// Storage defines the persistence contract for users, financial entries,
// savings goals and investment records. Lookups return (nil, nil) when the
// requested row is absent; errors are reserved for actual failures.
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, username string) (*model.User, error)

	// Financial entry operations
	AppendEntry(ctx context.Context, username string, entry model.Entry) error
	ListEntries(ctx context.Context, username string) ([]model.Entry, error)

	// Goal operations
	CreateGoal(ctx context.Context, goal *model.Goal) error
	GetGoal(ctx context.Context, username string, year int) (*model.Goal, error)
	UpdateGoalProgress(ctx context.Context, username string, year int, currentAmount float64) error
	ListGoals(ctx context.Context, username string) ([]model.Goal, error)

	// Investment operations
	SaveInvestment(ctx context.Context, investment *model.Investment) error
	ListInvestments(ctx context.Context, username string) ([]model.Investment, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations against external
// resources.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
