package main

import (
	"github.com/spf13/cobra"

	"github.com/olusolaa/netbox-reconciler/internal/config"
)

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Read one object, or list a whole category, without changing anything.",
	Example: `  netboxctl facts --model dcim --obj sites --name site-a
  netboxctl facts --model ipam --obj vlans`,
	RunE: runFacts,
}

func init() {
	addTargetFlags(factsCmd)
	factsCmd.Flags().String("args-file", "", "Read parameters from a JSON or YAML file")
}

func runFacts(cmd *cobra.Command, _ []string) error {
	application, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	argsFile, _ := cmd.Flags().GetString("args-file")
	args, err := collectArgs(cmd, argsFile, targetFlagNames)
	if err != nil {
		return finish(cmd, application, false, err)
	}
	params, err := config.DecodeFactsParams(ctx, args)
	if err != nil {
		return finish(cmd, application, false, err)
	}

	facts, err := application.Facts(ctx, params)
	if err != nil {
		return finish(cmd, application, false, err)
	}
	if err := application.Reporter.ReportFacts(ctx, facts); err != nil {
		return err
	}
	return finish(cmd, application, false, nil)
}
