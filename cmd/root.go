package main

import (
	"context"
	stderrs "errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olusolaa/netbox-reconciler/internal/app"
	apperrors "github.com/olusolaa/netbox-reconciler/internal/errors"
)

var (
	cfgFile         string
	logLevel        string
	logFormat       string
	inventoryURL    string
	inventoryToken  string
	output          string
	metricsTextfile string
)

// errInvocationFailed marks a run whose result was already reported but
// must still exit non-zero.
var errInvocationFailed = stderrs.New("invocation failed")

var rootCmd = &cobra.Command{
	Use:   "netboxctl",
	Short: "Declaratively reconciles objects in a NetBox inventory.",
	Long: `netboxctl converges NetBox objects on a desired state. Each invocation
reads the current object, performs at most one create, update or delete,
and reports whether anything changed in a JSON document automation hosts
understand.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		if !stderrs.Is(err, errInvocationFailed) {
			printError(err)
		}
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is .netboxctl.yaml in . or $HOME)")
	flags.StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "Override log format (text, json)")
	flags.StringVar(&inventoryURL, "url", "", "NetBox instance URL (env NETBOX_URL)")
	flags.StringVar(&inventoryToken, "token", "", "NetBox API token (env NETBOX_TOKEN)")
	flags.StringVarP(&output, "output", "o", "", "Result format (json, text)")
	flags.StringVar(&metricsTextfile, "metrics-textfile", "", "Write run metrics to this file in Prometheus text format")

	_ = viper.BindPFlag("settings.log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("settings.log_format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("inventory.url", flags.Lookup("url"))
	_ = viper.BindPFlag("inventory.token", flags.Lookup("token"))
	_ = viper.BindPFlag("settings.output", flags.Lookup("output"))
	_ = viper.BindPFlag("settings.metrics_textfile", flags.Lookup("metrics-textfile"))

	viper.SetEnvPrefix("NETBOX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("inventory.url", "NETBOX_URL", "NETBOX_INVENTORY_URL")
	_ = viper.BindEnv("inventory.token", "NETBOX_TOKEN", "NETBOX_INVENTORY_TOKEN")

	rootCmd.AddCommand(reconcileCmd, factsCmd, applyCmd, versionCmd)
}

func initializeConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".netboxctl")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrs.As(err, &notFound) {
			return apperrors.WrapUserFacing(err, apperrors.CodeConfigReadError,
				"failed to read config file", "Check the --config path and YAML syntax.")
		}
	}
	return nil
}

// bootstrap builds the application from the global viper instance.
func bootstrap(cmd *cobra.Command) (*app.Application, error) {
	application, err := app.BuildApplicationFromViper(cmd.Context(), viper.GetViper())
	if err != nil {
		return nil, err
	}
	return application, nil
}

// finish reports a run error through the configured reporter, flushes
// metrics, and maps failed results onto a non-zero exit.
func finish(cmd *cobra.Command, application *app.Application, failed bool, runErr error) error {
	ctx := cmd.Context()
	if err := application.Flush(ctx); err != nil {
		application.Logger.Errorf(ctx, err, "Failed to write metrics")
	}
	if runErr != nil {
		application.Logger.Errorf(ctx, runErr, "Invocation failed")
		if err := application.Reporter.ReportError(ctx, runErr); err != nil {
			return err
		}
		return errInvocationFailed
	}
	if failed {
		return errInvocationFailed
	}
	return nil
}

func printError(err error) {
	userMsg, suggestion, ok := apperrors.GetUserFacingMessage(err)
	if !ok {
		userMsg = err.Error()
	}
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", userMsg)
	if suggestion != "" && ok {
		fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
	}
}
