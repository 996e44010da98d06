package main

import (
	"context"
	"fmt"
	"time"

	"github.com/kabutey/campuscent/internal/common"
	"github.com/kabutey/campuscent/internal/config"
	"github.com/kabutey/campuscent/internal/model"
	"github.com/kabutey/campuscent/internal/service"
	"github.com/kabutey/campuscent/internal/storage"
)

// initStorage opens the configured database and brings the schema up to date.
func initStorage(ctx context.Context) (service.Storage, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// persistRetryOptions tunes the retry loop around entry writes. SQLite under
// WAL rarely needs more than a couple of attempts.
var persistRetryOptions = service.RetryOptions{
	MaxAttempts:  3,
	InitialDelay: 100 * time.Millisecond,
	MaxDelay:     time.Second,
	Multiplier:   2.0,
}

// appendEntryWithRetry persists an entry, retrying transient store failures.
func appendEntryWithRetry(ctx context.Context, store service.Storage, username string, entry model.Entry) error {
	return common.WithRetry(ctx, func() error {
		return store.AppendEntry(ctx, username, entry)
	}, persistRetryOptions)
}
