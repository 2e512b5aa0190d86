package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/payram/envwizard/internal/config"
	"github.com/payram/envwizard/internal/console"
	"github.com/payram/envwizard/internal/logger"
)

// version is injected at build time with -ldflags "-X main.version=...".
var version = "dev"

// exitError carries a specific process exit code up to main.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// globalOptions are the flags shared by every command.
type globalOptions struct {
	file     string
	yes      bool
	dryRun   bool
	plain    bool
	noBackup bool
}

// app wires configuration, the console session and flag values together.
type app struct {
	session    *console.Session
	loadConfig func() (*config.Config, error)
	cfg        *config.Config
	opts       globalOptions
	version    string
}

func newApp(session *console.Session) *app {
	return &app{
		session:    session,
		loadConfig: config.Load,
		version:    version,
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "envwizard",
		Short:         "Interactively edit KEY=VALUE environment files",
		Long:          "envwizard asks for configuration values and writes them into an env file, replacing existing keys and appending new ones.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cmd.Flags().Changed("plain") {
				cfg.Plain = a.opts.plain
			}
			if a.opts.noBackup {
				cfg.Backup.Enabled = false
			}
			a.cfg = cfg
			return nil
		},
	}
	root.SetIn(a.session.Stdin)
	root.SetOut(a.session.Stdout)
	root.SetErr(a.session.Stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.opts.file, "file", "f", "", "env file to edit (default from ENVWIZARD_FILE or .env)")
	flags.BoolVarP(&a.opts.yes, "yes", "y", false, "write without asking for confirmation")
	flags.BoolVar(&a.opts.dryRun, "dry-run", false, "show the changes without writing them")
	flags.BoolVar(&a.opts.plain, "plain", false, "use line-based prompts instead of menus")
	flags.BoolVar(&a.opts.noBackup, "no-backup", false, "skip the backup taken before writing")

	root.AddCommand(
		newRunCommand(a),
		newSetCommand(a),
		newShowCommand(a),
		newQuoteCommand(a),
		newBackupCommand(a),
		newVersionCommand(a),
	)
	return root
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "envwizard %s %s/%s\n", a.version, runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}

func main() {
	logger.Init()

	a := newApp(console.NewSession())
	if err := newRootCommand(a).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}
