package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/payram/envwizard/internal/envfile"
	"github.com/payram/envwizard/internal/logger"
	"github.com/payram/envwizard/internal/prompt"
	"github.com/payram/envwizard/internal/wizard"
)

func newRunCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <wizard.yaml>",
		Short: "Ask the questions of a wizard script and write the answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWizard(args[0])
		},
	}
}

func (a *app) runWizard(script string) error {
	def, err := wizard.Load(script)
	if err != nil {
		return err
	}
	if err := wizard.CheckVersion(def.Requires, a.version); err != nil {
		return err
	}

	path := a.targetFile(def.File)
	current, err := envfile.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	s, err := a.open(path, true)
	if err != nil {
		return err
	}

	if def.Name != "" {
		fmt.Fprintf(a.session.Stdout, "%s\n%s\n", def.Name, strings.Repeat("=", len(def.Name)))
	}
	logger.Infof("envwizard", "run", "running %s against %s", script, path)

	if err := wizard.Run(def, s.updater, current); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			return errors.New("wizard aborted, nothing written")
		}
		return err
	}

	return a.commit(s)
}
