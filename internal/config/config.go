package config

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/olusolaa/netbox-reconciler/internal/adapters/inventory/netbox"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
	"github.com/olusolaa/netbox-reconciler/internal/log"
	jsonreporter "github.com/olusolaa/netbox-reconciler/internal/reporting/json"
	"github.com/olusolaa/netbox-reconciler/internal/reporting/text"
)

const (
	OutputJSON = "json"
	OutputText = "text"
)

type Config struct {
	Settings  SettingsConfig `mapstructure:"settings"`
	Inventory netbox.Config  `mapstructure:"inventory"`
}

type SettingsConfig struct {
	LogLevel    log.Level  `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat   log.Format `mapstructure:"log_format" validate:"oneof=text json"`
	Output      string     `mapstructure:"output" validate:"oneof=json text"`
	Concurrency int        `mapstructure:"concurrency" validate:"min=1,max=64"`

	// StrictConflicts reports uniqueness conflicts as failures.
	StrictConflicts bool `mapstructure:"strict_conflicts"`
	// ReportChangedOnRead makes read-only lookups report changed=true.
	ReportChangedOnRead bool `mapstructure:"report_changed_on_read"`

	MetricsTextfile string          `mapstructure:"metrics_textfile"`
	Reporter        ReporterConfigs `mapstructure:"reporter"`
}

type ReporterConfigs struct {
	JSON jsonreporter.Config `mapstructure:"json"`
	Text text.Config         `mapstructure:"text"`
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:    log.LevelInfo,
			LogFormat:   log.FormatText,
			Output:      OutputJSON,
			Concurrency: 10,
			Reporter: ReporterConfigs{
				Text: text.Config{NoColor: false},
			},
		},
		Inventory: netbox.Config{
			Timeout: 30 * time.Second,
		},
	}
}

// Load decodes the settings held by v on top of the defaults.
func Load(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}
	return cfg, nil
}

func (c *Config) LogConfig() log.Config {
	return log.Config{Level: c.Settings.LogLevel, Format: c.Settings.LogFormat}
}

// Validate checks the whole configuration, including the inventory
// connection.
func Validate(ctx context.Context, cfg *Config) error {
	return validateStruct(ctx, cfg, "Configuration validation failed:",
		"Please check your configuration file, NETBOX_* environment variables or flags.")
}

// ValidateSettings checks everything but the inventory connection, which
// invocation parameters may still supply.
func ValidateSettings(ctx context.Context, cfg *Config) error {
	return validateStruct(ctx, &cfg.Settings, "Configuration validation failed:",
		"Please check your configuration file, NETBOX_* environment variables or flags.")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateStruct(ctx context.Context, s any, header, suggestion string) error {
	err := validate.StructCtx(ctx, s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrs.As(err, &validationErrors) {
		return errors.Wrap(err, errors.CodeInternal, "validation could not run")
	}

	var details strings.Builder
	details.WriteString(header)
	for _, fe := range validationErrors {
		details.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), redact(fe)))
	}
	return errors.NewUserFacing(errors.CodeConfigValidation, details.String(), suggestion)
}

func redact(fe validator.FieldError) any {
	if strings.EqualFold(fe.Field(), "token") {
		return "<redacted>"
	}
	return fe.Value()
}
