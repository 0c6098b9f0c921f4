package main

import (
	"github.com/spf13/cobra"

	"github.com/olusolaa/netbox-reconciler/internal/config"
	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
)

var applyCmd = &cobra.Command{
	Use:   "apply MANIFEST",
	Short: "Reconcile every object listed in a manifest.",
	Long: `apply runs the objects of a manifest as independent reconciliations,
at most settings.concurrency at a time. One failing object does not stop
the others; the command exits non-zero if any failed.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().Bool("check", false, "Plan every object without changing anything")
	applyCmd.Flags().Bool("diff", false, "Report differences for every object")
}

func runApply(cmd *cobra.Command, args []string) error {
	application, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	params, err := config.LoadManifest(ctx, args[0])
	if err != nil {
		return finish(cmd, application, false, err)
	}
	check, _ := cmd.Flags().GetBool("check")
	diff, _ := cmd.Flags().GetBool("diff")
	for i := range params {
		params[i].Check = params[i].Check || check
		params[i].Diff = params[i].Diff || diff
	}

	results, err := application.Apply(ctx, params)
	if err != nil && results == nil {
		return finish(cmd, application, false, err)
	}
	if err != nil {
		application.Logger.Errorf(ctx, err, "Batch apply interrupted")
	}
	if repErr := application.Reporter.ReportBatch(ctx, results); repErr != nil {
		return repErr
	}
	return finish(cmd, application, err != nil || !domain.Summarize(results).OK(), nil)
}
