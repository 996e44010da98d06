// Package testutil provides shared helpers for tests that need a real
// database behind the service.Storage interface.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/kabutey/campuscent/internal/model"
	"github.com/kabutey/campuscent/internal/service"
	"github.com/kabutey/campuscent/internal/storage"
)

// TestDB wraps an in-memory store with the owning test for helper methods.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a migrated in-memory SQLite store. Cleanup is
// registered automatically.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// SeedUser creates a user with a placeholder password hash, failing the test
// on error.
func (db *TestDB) SeedUser(username string) {
	db.t.Helper()

	err := db.Storage.CreateUser(context.Background(), &model.User{
		Username:     username,
		PasswordHash: "$2a$10$test-hash-not-a-real-one",
		CreatedAt:    time.Now(),
	})
	if err != nil {
		db.t.Fatalf("failed to seed user %q: %v", username, err)
	}
}

// SeedGoal creates a goal for the user, failing the test on error.
func (db *TestDB) SeedGoal(username string, year int, target, current float64) {
	db.t.Helper()

	err := db.Storage.CreateGoal(context.Background(), &model.Goal{
		Username:      username,
		TargetAmount:  target,
		CurrentAmount: current,
		Year:          year,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		db.t.Fatalf("failed to seed goal %s/%d: %v", username, year, err)
	}
}
