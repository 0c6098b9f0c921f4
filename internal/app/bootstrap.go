package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/olusolaa/netbox-reconciler/internal/adapters/desired"
	"github.com/olusolaa/netbox-reconciler/internal/adapters/desired/hclfile"
	"github.com/olusolaa/netbox-reconciler/internal/config"
	"github.com/olusolaa/netbox-reconciler/internal/core/ports"
	"github.com/olusolaa/netbox-reconciler/internal/core/service"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
	"github.com/olusolaa/netbox-reconciler/internal/log"
	"github.com/olusolaa/netbox-reconciler/internal/metrics"
	jsonreporter "github.com/olusolaa/netbox-reconciler/internal/reporting/json"
	"github.com/olusolaa/netbox-reconciler/internal/reporting/text"
)

type buildOptions struct {
	out       io.Writer
	logOut    io.Writer
	newClient clientFactory
}

type BuildOption func(*buildOptions)

// WithOutput redirects reports, which go to stdout by default.
func WithOutput(w io.Writer) BuildOption {
	return func(o *buildOptions) { o.out = w }
}

// WithLogOutput redirects logs, which go to stderr by default.
func WithLogOutput(w io.Writer) BuildOption {
	return func(o *buildOptions) { o.logOut = w }
}

func BuildApplicationFromViper(ctx context.Context, v *viper.Viper, opts ...BuildOption) (*Application, error) {
	options := buildOptions{out: os.Stdout, logOut: os.Stderr, newClient: defaultClientFactory}
	for _, opt := range opts {
		opt(&options)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	logger, err := log.NewLoggerWithWriter(cfg.LogConfig(), options.logOut)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Debugf(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	} else {
		logger.Debugf(ctx, "No configuration file found, using defaults/env/flags.")
	}

	if err := config.ValidateSettings(ctx, cfg); err != nil {
		logger.Errorf(ctx, err, "Configuration validation failed")
		return nil, err
	}

	loaders, err := buildLoaders(logger)
	if err != nil {
		return nil, err
	}
	logger.Debugf(ctx, "Desired state loaders registered: %v", loaders.Kinds())

	reporter, err := buildReporter(cfg, logger, options.out)
	if err != nil {
		return nil, err
	}
	logger.Debugf(ctx, "Using %s reporter", cfg.Settings.Output)

	return &Application{
		Config:    cfg,
		Logger:    logger,
		Reporter:  reporter,
		Metrics:   metrics.NewRecorder(),
		loaders:   loaders,
		newClient: options.newClient,
		clients:   make(map[config.Connection]ports.InventoryClient),
	}, nil
}

func buildLoaders(logger ports.Logger) (*service.LoaderRegistry, error) {
	registry := service.NewLoaderRegistry()
	loaderLog := logger.WithFields(map[string]any{"component": "loader"})
	for _, loader := range []ports.DesiredStateLoader{
		desired.NewDataLoader(),
		desired.NewTemplateLoader(loaderLog),
		desired.NewJSONFileLoader(),
		desired.NewYAMLFileLoader(),
		hclfile.NewLoader(loaderLog),
	} {
		if err := registry.Register(loader); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func buildReporter(cfg *config.Config, logger ports.Logger, out io.Writer) (ports.Reporter, error) {
	reportLog := logger.WithFields(map[string]any{"component": "reporter", "type": cfg.Settings.Output})
	switch cfg.Settings.Output {
	case config.OutputJSON:
		r, err := jsonreporter.NewReporter(cfg.Settings.Reporter.JSON, reportLog, jsonreporter.WithWriter(out))
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize JSON reporter")
		}
		return r, nil
	case config.OutputText:
		r, err := text.NewReporter(cfg.Settings.Reporter.Text, reportLog, text.WithWriter(out))
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize Text reporter")
		}
		return r, nil
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported output: %s", cfg.Settings.Output), "Supported: json, text")
	}
}
