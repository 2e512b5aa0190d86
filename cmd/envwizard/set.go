package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/payram/envwizard/internal/envfile"
	"github.com/payram/envwizard/internal/envupdate"
	"github.com/payram/envwizard/internal/wizard"
)

func newSetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY=VALUE...",
		Short: "Write one or more values without prompting",
		Long:  "set writes each KEY=VALUE into the env file. Existing keys are replaced in place, new keys are appended in sorted order. A key given twice keeps its last value.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseAssignments(args)
			if err != nil {
				return err
			}

			s, err := a.open(a.targetFile(""), false)
			if err != nil {
				return err
			}
			changes := make(map[string]string, len(assignments))
			for _, kv := range assignments {
				changes[kv[0]] = kv[1]
			}
			s.updater.AppendChanges(changes)
			return a.commit(s)
		},
	}
}

// parseAssignments splits KEY=VALUE arguments in argument order.
func parseAssignments(args []string) ([][2]string, error) {
	out := make([][2]string, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q: expected KEY=VALUE", arg)
		}
		key = strings.TrimSpace(key)
		if !wizard.ValidKey(key) {
			return nil, fmt.Errorf("invalid key %q", key)
		}
		out = append(out, [2]string{key, value})
	}
	return out, nil
}

func newShowCommand(a *app) *cobra.Command {
	var keysOnly bool
	cmd := &cobra.Command{
		Use:   "show [KEY...]",
		Short: "Print the values in the env file, normalized",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.targetFile("")
			values, err := envfile.Load(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			keys := args
			if len(keys) == 0 {
				for k := range values {
					keys = append(keys, k)
				}
				sort.Strings(keys)
			}

			out := cmd.OutOrStdout()
			for _, k := range keys {
				v, ok := values[k]
				if !ok {
					return fmt.Errorf("%s is not set in %s", k, path)
				}
				if keysOnly {
					fmt.Fprintln(out, k)
					continue
				}
				fmt.Fprintln(out, envupdate.Line(k, v))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&keysOnly, "keys", false, "print key names only")
	return cmd
}

func newQuoteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "quote VALUE",
		Short: "Print VALUE as it would be written to the env file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), envupdate.FormatValue(args[0]))
			return nil
		},
	}
}
