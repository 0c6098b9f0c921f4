package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/olusolaa/netbox-reconciler/internal/config"
)

// collectArgs merges the args file, if any, with the flags set on the
// command line. Flags win.
func collectArgs(cmd *cobra.Command, argsFile string, names map[string]string) (map[string]any, error) {
	args := map[string]any{}
	if argsFile != "" {
		fromFile, err := config.ReadArgsFile(argsFile)
		if err != nil {
			return nil, err
		}
		args = fromFile
	}

	var firstErr error
	cmd.Flags().Visit(func(f *pflag.Flag) {
		key, ok := names[f.Name]
		if !ok || firstErr != nil {
			return
		}
		val, err := flagValue(cmd, f)
		if err != nil {
			firstErr = err
			return
		}
		args[key] = val
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return args, nil
}

func flagValue(cmd *cobra.Command, f *pflag.Flag) (any, error) {
	switch f.Value.Type() {
	case "bool":
		return cmd.Flags().GetBool(f.Name)
	case "int64":
		return cmd.Flags().GetInt64(f.Name)
	default:
		return f.Value.String(), nil
	}
}

func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("model", "", "API model, e.g. dcim")
	cmd.Flags().String("obj", "", "Object kind within the model, e.g. sites")
	cmd.Flags().String("name", "", "Select the object by name")
	cmd.Flags().Int64("ident", 0, "Select the object by numeric id")
	cmd.MarkFlagsMutuallyExclusive("name", "ident")
}

var targetFlagNames = map[string]string{
	"model": "model",
	"obj":   "obj",
	"name":  "name",
	"ident": "ident",
}
