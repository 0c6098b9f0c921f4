package main

import (
	"maps"

	"github.com/spf13/cobra"

	"github.com/olusolaa/netbox-reconciler/internal/app"
	"github.com/olusolaa/netbox-reconciler/internal/config"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Converge one object on its desired state.",
	Example: `  netboxctl reconcile --model dcim --obj sites --name site-a --data '{name: site-a, slug: site-a}'
  netboxctl reconcile --model dcim --obj sites --name site-a --template site.yaml.tmpl --vars 'suffix=a'
  netboxctl reconcile --model dcim --obj sites --ident 4 --state absent --check
  netboxctl reconcile --args-file /tmp/args.json`,
	RunE: runReconcile,
}

var reconcileFlagNames = map[string]string{
	"state":    "state",
	"data":     "data",
	"template": "template",
	"check":    "check",
	"diff":     "diff",
}

func init() {
	addTargetFlags(reconcileCmd)
	f := reconcileCmd.Flags()
	f.String("state", "present", "Desired lifecycle (present, absent)")
	f.String("data", "", "Inline desired state as YAML or JSON")
	f.String("template", "", "Desired state file (.tmpl, .json, .yaml, .yml or .hcl)")
	f.String("vars", "", "Template variables as 'key=value;key2=value2'")
	f.Bool("check", false, "Plan without changing anything")
	f.Bool("diff", false, "Report the difference between desired and current state")
	f.String("args-file", "", "Read parameters from a JSON or YAML file")
	reconcileCmd.MarkFlagsMutuallyExclusive("data", "template")
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	application, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	names := maps.Clone(targetFlagNames)
	maps.Copy(names, reconcileFlagNames)
	argsFile, _ := cmd.Flags().GetString("args-file")
	args, err := collectArgs(cmd, argsFile, names)
	if err != nil {
		return finish(cmd, application, false, err)
	}
	if raw, _ := cmd.Flags().GetString("vars"); raw != "" {
		base, _ := args["vars"].(map[string]any)
		args["vars"] = app.MergeVars(base, app.ParseVarsOverride(raw))
	}

	params, err := config.DecodeReconcileParams(ctx, args)
	if err != nil {
		return finish(cmd, application, false, err)
	}

	outcome, err := application.Reconcile(ctx, params)
	if err != nil {
		return finish(cmd, application, false, err)
	}
	if err := application.Reporter.ReportOutcome(ctx, outcome); err != nil {
		return err
	}
	return finish(cmd, application, outcome.Failed, nil)
}
