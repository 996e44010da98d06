package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/kabutey/campuscent/internal/common"
)

// Config holds the resolved application configuration.
type Config struct {
	Database DatabaseConfig
	Logging  LoggingConfig
	Budget   BudgetConfig
}

// DatabaseConfig holds database settings.
type DatabaseConfig struct {
	Path string
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string
	Format string
}

// BudgetConfig holds budgeting policy settings.
type BudgetConfig struct {
	// Currency is the display currency code.
	Currency string
}

// Load reads the application configuration from viper, applying defaults for
// anything unset.
func Load() (*Config, error) {
	viper.SetDefault("database.path", "$HOME/.local/share/campuscent/campuscent.db")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("budget.currency", "GHC")

	cfg := &Config{
		Database: DatabaseConfig{
			Path: ExpandPath(viper.GetString("database.path")),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString("logging.level"),
			Format: viper.GetString("logging.format"),
		},
		Budget: BudgetConfig{
			Currency: viper.GetString("budget.currency"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path cannot be empty", common.ErrInvalidConfig)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: invalid log level %q", common.ErrInvalidConfig, c.Logging.Level)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: invalid log format %q", common.ErrInvalidConfig, c.Logging.Format)
	}

	if c.Budget.Currency == "" {
		return fmt.Errorf("%w: budget.currency cannot be empty", common.ErrInvalidConfig)
	}

	return nil
}
