package config

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/netbox-reconciler/internal/errors"
	"github.com/olusolaa/netbox-reconciler/internal/log"
)

func TestLoadMergesFileOverDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(`
settings:
  log_level: debug
  concurrency: 4
  strict_conflicts: true
  reporter:
    text:
      no_color: true
inventory:
  url: https://netbox.example.org
  token: abc
  timeout: 5s
  rate_limit_rps: 50
`)))

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, log.LevelDebug, cfg.Settings.LogLevel)
	assert.Equal(t, log.FormatText, cfg.Settings.LogFormat)
	assert.Equal(t, OutputJSON, cfg.Settings.Output)
	assert.Equal(t, 4, cfg.Settings.Concurrency)
	assert.True(t, cfg.Settings.StrictConflicts)
	assert.False(t, cfg.Settings.ReportChangedOnRead)
	assert.True(t, cfg.Settings.Reporter.Text.NoColor)
	assert.Equal(t, "https://netbox.example.org", cfg.Inventory.URL)
	assert.Equal(t, 5*time.Second, cfg.Inventory.Timeout)
	assert.Equal(t, 50, cfg.Inventory.RateLimitRPS)

	require.NoError(t, Validate(context.Background(), cfg))
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.Concurrency = 0
	cfg.Settings.Output = "xml"
	cfg.Inventory.URL = "not a url"
	cfg.Inventory.Token = ""

	err := Validate(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))

	msg, suggestion, ok := errors.GetUserFacingMessage(err)
	require.True(t, ok)
	assert.Contains(t, msg, "Concurrency")
	assert.Contains(t, msg, "Output")
	assert.Contains(t, msg, "URL")
	assert.Contains(t, msg, "Token")
	assert.NotEmpty(t, suggestion)
}

func TestValidateRateLimitRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Inventory.URL = "https://netbox.example.org"
	cfg.Inventory.Token = "s3cret"
	cfg.Inventory.RateLimitRPS = 1000

	err := Validate(context.Background(), cfg)
	require.Error(t, err)
	msg, _, _ := errors.GetUserFacingMessage(err)
	assert.Contains(t, msg, "RateLimitRPS")
	assert.NotContains(t, msg, "s3cret")
}

func TestValidateSettingsIgnoresInventory(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, ValidateSettings(context.Background(), cfg))

	cfg.Settings.LogLevel = "trace"
	err := ValidateSettings(context.Background(), cfg)
	assert.True(t, errors.IsConfiguration(err))
}
