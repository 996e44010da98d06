package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabutey/campuscent/internal/common"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "GHC", cfg.Budget.Currency)
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("database.path", "/tmp/test.db")
	viper.Set("logging.level", "debug")
	viper.Set("logging.format", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadRejectsBadLevel(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("logging.level", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("CAMPUSCENT_TEST_DIR", "/var/data")

	assert.Equal(t, "/var/data/app.db", ExpandPath("$CAMPUSCENT_TEST_DIR/app.db"))
	assert.Equal(t, "", ExpandPath(""))
}
