package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kabutey/campuscent/internal/config"
	"github.com/kabutey/campuscent/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

This command ensures your local database has all the required
tables and indexes for the application to function properly.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")
	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if status {
		version, verErr := store.SchemaVersion(ctx)
		if verErr != nil {
			return verErr
		}
		slog.Info("📊 Database migration status",
			"database", cfg.Database.Path,
			"current_version", version,
			"latest_version", storage.ExpectedSchemaVersion)
		return nil
	}

	slog.Info("🗄️  Running database migrations...", "database", cfg.Database.Path)

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("✅ Database migrations completed successfully!")
	return nil
}
